package mocks

import (
	"context"

	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTicketPaymentService struct {
	mock.Mock
	domain.TicketPaymentService
}

func (m *MockTicketPaymentService) MakePayment(ctx context.Context, accountID int64, totalAmountToPay int) error {
	args := m.Called(ctx, accountID, totalAmountToPay)
	return args.Error(0)
}
