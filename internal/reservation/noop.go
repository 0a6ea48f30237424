package reservation

import (
	"context"
	"log/slog"
)

// NoopSeatReservationService accepts every reservation without contacting the seat booking system.
type NoopSeatReservationService struct {
	logger *slog.Logger
}

func NewNoopSeatReservationService(logger *slog.Logger) *NoopSeatReservationService {
	return &NoopSeatReservationService{
		logger: logger,
	}
}

func (n *NoopSeatReservationService) ReserveSeat(ctx context.Context, accountID int64, totalSeatsToAllocate int) error {
	n.logger.InfoContext(ctx, "seat reservation skipped, no reservation system configured",
		"account_id", accountID,
		"seats", totalSeatsToAllocate)
	return nil
}
