package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultStream = "seat-reservations"

	// streamMaxLen caps the stream so that unconsumed requests cannot grow it forever.
	streamMaxLen = 100_000
)

// RedisSeatReservationService hands seat reservation requests to the seat
// booking system by appending them to a Redis stream.
type RedisSeatReservationService struct {
	redis  redis.UniversalClient
	stream string
	logger *slog.Logger
	now    func() time.Time
}

func NewRedisSeatReservationService(client redis.UniversalClient, stream string, logger *slog.Logger) *RedisSeatReservationService {
	if stream == "" {
		stream = DefaultStream
	}

	return &RedisSeatReservationService{
		redis:  client,
		stream: stream,
		logger: logger,
		now:    time.Now,
	}
}

func (r *RedisSeatReservationService) ReserveSeat(ctx context.Context, accountID int64, totalSeatsToAllocate int) error {
	requestID := uuid.New().String()

	id, err := r.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]any{
			"request_id":   requestID,
			"account_id":   accountID,
			"seats":        totalSeatsToAllocate,
			"requested_at": r.now().UTC().Format(time.RFC3339),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish seat reservation for account %d: %w", accountID, err)
	}

	r.logger.DebugContext(ctx, "seat reservation requested",
		"account_id", accountID,
		"seats", totalSeatsToAllocate,
		"request_id", requestID,
		"stream_id", id)

	return nil
}
