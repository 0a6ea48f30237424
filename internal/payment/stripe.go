package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

var minorUnitsPerMajor = decimal.NewFromInt(100)

type createPaymentIntentFunc func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)

// StripePaymentService charges accounts through Stripe PaymentIntents. Ticket
// amounts are whole units of the configured currency.
type StripePaymentService struct {
	currency      stripe.Currency
	paymentMethod string
	logger        *slog.Logger

	createPaymentIntent createPaymentIntentFunc
}

func NewStripePaymentService(currency, paymentMethod string, logger *slog.Logger) *StripePaymentService {
	return &StripePaymentService{
		currency:            stripe.Currency(currency),
		paymentMethod:       paymentMethod,
		logger:              logger,
		createPaymentIntent: paymentintent.New,
	}
}

func (s *StripePaymentService) MakePayment(ctx context.Context, accountID int64, totalAmountToPay int) error {
	amountMinor := decimal.NewFromInt(int64(totalAmountToPay)).Mul(minorUnitsPerMajor).IntPart()
	accountIDStr := strconv.FormatInt(accountID, 10)

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(string(s.currency)),
		PaymentMethod:      stripe.String(s.paymentMethod),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Confirm:            stripe.Bool(true),
		Description:        stripe.String(fmt.Sprintf("Cinema tickets for account %s", accountIDStr)),
	}
	params.Context = ctx
	params.AddMetadata("account_id", accountIDStr)
	params.SetIdempotencyKey(uuid.New().String())

	intent, err := s.createPaymentIntent(params)
	if err != nil {
		return fmt.Errorf("failed to create payment intent for account %s: %w", accountIDStr, err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("%w: payment intent %s is %s", domain.ErrPaymentNotCompleted, intent.ID, intent.Status)
	}

	s.logger.DebugContext(ctx, "payment intent succeeded", "account_id", accountID, "payment_intent_id", intent.ID, "amount_minor", amountMinor)

	return nil
}
