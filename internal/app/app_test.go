package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/metinatakli/cinema-tickets/internal/mocks"
	"github.com/metinatakli/cinema-tickets/internal/payment"
	"github.com/metinatakli/cinema-tickets/internal/reservation"
	"github.com/metinatakli/cinema-tickets/internal/ticket"
	"github.com/metinatakli/cinema-tickets/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestApplication(cfg Config, payments domain.TicketPaymentService, seats domain.SeatReservationService) *Application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &Application{
		config:  cfg,
		logger:  logger,
		tickets: ticket.NewService(payments, seats, validator.NewValidator(), logger),
	}
}

func TestPurchase(t *testing.T) {
	t.Run("should purchase parsed tickets", func(t *testing.T) {
		payments := new(mocks.MockTicketPaymentService)
		seats := new(mocks.MockSeatReservationService)
		defer payments.AssertExpectations(t)
		defer seats.AssertExpectations(t)

		payments.On("MakePayment", mock.Anything, int64(2), 80).Return(nil).Once()
		seats.On("ReserveSeat", mock.Anything, int64(2), 4).Return(nil).Once()

		app := newTestApplication(Config{AccountID: 2, Tickets: "ADULT=2,CHILD=2,INFANT=2"}, payments, seats)

		require.NoError(t, app.purchase(context.Background()))
	})

	t.Run("should reject an invalid purchase", func(t *testing.T) {
		payments := new(mocks.MockTicketPaymentService)
		seats := new(mocks.MockSeatReservationService)

		app := newTestApplication(Config{AccountID: 0, Tickets: "ADULT=1"}, payments, seats)

		err := app.purchase(context.Background())
		assert.ErrorIs(t, err, domain.ErrInvalidPurchase)
		payments.AssertNotCalled(t, "MakePayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should fail on malformed tickets", func(t *testing.T) {
		payments := new(mocks.MockTicketPaymentService)
		seats := new(mocks.MockSeatReservationService)

		app := newTestApplication(Config{AccountID: 1, Tickets: "ADULT"}, payments, seats)

		err := app.purchase(context.Background())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidPurchase)
	})

	t.Run("should return payment errors", func(t *testing.T) {
		payments := new(mocks.MockTicketPaymentService)
		seats := new(mocks.MockSeatReservationService)
		paymentErr := errors.New("gateway unavailable")

		payments.On("MakePayment", mock.Anything, int64(1), 25).Return(paymentErr).Once()

		app := newTestApplication(Config{AccountID: 1, Tickets: "ADULT=1"}, payments, seats)

		assert.Same(t, paymentErr, app.purchase(context.Background()))
	})
}

func TestCollaboratorSelection(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.IsType(t, &payment.NoopPaymentService{}, newPaymentService(Config{}, logger))
	assert.IsType(t, &reservation.NoopSeatReservationService{}, newSeatReservationService(nil, Config{}, logger))

	client := new(mocks.MockRedisClient)
	assert.IsType(t, &reservation.RedisSeatReservationService{}, newSeatReservationService(client, Config{}, logger))
}

func TestMultiHandler(t *testing.T) {
	var first, second bytes.Buffer

	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(&first, nil),
		slog.NewTextHandler(&second, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)).With("account_id", 1)

	logger.Info("ticket purchase completed")
	logger.Warn("ticket purchase rejected")

	assert.Contains(t, first.String(), "ticket purchase completed")
	assert.Contains(t, first.String(), "ticket purchase rejected")
	assert.Contains(t, first.String(), "account_id=1")
	assert.NotContains(t, second.String(), "ticket purchase completed")
	assert.Contains(t, second.String(), "ticket purchase rejected")
}
