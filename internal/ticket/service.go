// Package ticket validates and prices cinema ticket purchases and hands the
// resulting totals to the payment and seat reservation services.
package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-tickets/internal/domain"
	appvalidator "github.com/metinatakli/cinema-tickets/internal/validator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/metinatakli/cinema-tickets/internal/ticket"

const (
	outcomeCompleted         = "completed"
	outcomeRejected          = "rejected"
	outcomePaymentFailed     = "payment_failed"
	outcomeReservationFailed = "reservation_failed"
)

type Service struct {
	payments  domain.TicketPaymentService
	seats     domain.SeatReservationService
	validator *validator.Validate
	logger    *slog.Logger

	tracer    trace.Tracer
	purchases metric.Int64Counter
}

func NewService(
	payments domain.TicketPaymentService,
	seats domain.SeatReservationService,
	validate *validator.Validate,
	logger *slog.Logger) *Service {

	meter := otel.Meter(instrumentationName)

	purchases, err := meter.Int64Counter(
		"ticket.purchases",
		metric.WithDescription("Number of ticket purchase attempts by outcome"),
	)
	if err != nil {
		logger.Error("failed to create purchase counter", "error", err)
	}

	return &Service{
		payments:  payments,
		seats:     seats,
		validator: validate,
		logger:    logger,
		tracer:    otel.Tracer(instrumentationName),
		purchases: purchases,
	}
}

// Quote validates the request and computes what it would cost without calling
// any external service. Every failure wraps domain.ErrInvalidPurchase.
func (s *Service) Quote(accountID int64, requests ...domain.TicketTypeRequest) (domain.Purchase, error) {
	req := domain.PurchaseRequest{
		AccountID: accountID,
		Tickets:   requests,
	}

	err := s.validator.Struct(req)
	if err != nil {
		return domain.Purchase{}, invalidPurchase(err)
	}

	return domain.NewPurchase(accountID, domain.NewCategoryTotals(requests)), nil
}

// PurchaseTickets charges the account for the requested tickets and then reserves
// their seats. Errors returned by the payment or reservation service are passed
// back untouched; a failed payment means no reservation is attempted.
func (s *Service) PurchaseTickets(ctx context.Context, accountID int64, requests ...domain.TicketTypeRequest) error {
	ctx, span := s.tracer.Start(ctx, "ticket.PurchaseTickets",
		trace.WithAttributes(attribute.Int64("account.id", accountID)))
	defer span.End()

	purchase, err := s.Quote(accountID, requests...)
	if err != nil {
		s.logger.Warn("ticket purchase rejected", "account_id", accountID, "reason", err.Error())
		s.finish(ctx, span, outcomeRejected, err)
		return err
	}

	span.SetAttributes(
		attribute.Int("purchase.amount", purchase.TotalAmount),
		attribute.Int("purchase.seats", purchase.TotalSeats),
	)

	err = s.payments.MakePayment(ctx, purchase.AccountID, purchase.TotalAmount)
	if err != nil {
		s.logger.Error("ticket payment failed", "account_id", accountID, "amount", purchase.TotalAmount, "error", err)
		s.finish(ctx, span, outcomePaymentFailed, err)
		return err
	}

	err = s.seats.ReserveSeat(ctx, purchase.AccountID, purchase.TotalSeats)
	if err != nil {
		s.logger.Error("seat reservation failed after payment",
			"account_id", accountID,
			"amount", purchase.TotalAmount,
			"seats", purchase.TotalSeats,
			"error", err)
		s.finish(ctx, span, outcomeReservationFailed, err)
		return err
	}

	s.logger.Info("ticket purchase completed",
		"account_id", accountID,
		"amount", purchase.TotalAmount,
		"seats", purchase.TotalSeats)
	s.finish(ctx, span, outcomeCompleted, nil)

	return nil
}

func (s *Service) finish(ctx context.Context, span trace.Span, outcome string, err error) {
	if s.purchases != nil {
		s.purchases.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
}

func invalidPurchase(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPurchase, err)
	}

	reasons := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		reasons = append(reasons, fmt.Sprintf("%s %s", fe.Namespace(), appvalidator.ValidationMessage(fe)))
	}

	return fmt.Errorf("%w: %s", domain.ErrInvalidPurchase, strings.Join(reasons, "; "))
}
