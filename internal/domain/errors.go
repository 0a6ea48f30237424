package domain

import "errors"

var (
	ErrInvalidPurchase     = errors.New("invalid purchase")
	ErrPaymentNotCompleted = errors.New("payment was not completed")
)
