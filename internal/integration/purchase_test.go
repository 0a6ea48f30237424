package integration_test

import (
	"context"
	"errors"
	"testing"

	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/metinatakli/cinema-tickets/internal/payment"
	"github.com/metinatakli/cinema-tickets/internal/reservation"
	"github.com/metinatakli/cinema-tickets/internal/ticket"
	"github.com/metinatakli/cinema-tickets/internal/validator"
	"github.com/stretchr/testify/suite"
)

type PurchaseSuite struct {
	BaseSuite
	service *ticket.Service
}

func TestPurchaseSuite(t *testing.T) {
	suite.Run(t, new(PurchaseSuite))
}

func (s *PurchaseSuite) SetupTest() {
	s.BaseSuite.SetupTest()

	s.service = ticket.NewService(
		payment.NewNoopPaymentService(s.logger),
		reservation.NewRedisSeatReservationService(s.redis, testStream, s.logger),
		validator.NewValidator(),
		s.logger,
	)
}

func (s *PurchaseSuite) TestPurchasePublishesSeatReservation() {
	ctx := context.Background()

	err := s.service.PurchaseTickets(ctx, 2,
		domain.NewTicketTypeRequest(domain.TicketTypeAdult, 2),
		domain.NewTicketTypeRequest(domain.TicketTypeChild, 2),
		domain.NewTicketTypeRequest(domain.TicketTypeInfant, 2),
	)
	s.Require().NoError(err)

	messages, err := s.redis.XRange(ctx, testStream, "-", "+").Result()
	s.Require().NoError(err)
	s.Require().Len(messages, 1)

	values := messages[0].Values
	s.Equal("2", values["account_id"])
	s.Equal("4", values["seats"])
	s.NotEmpty(values["request_id"])
	s.NotEmpty(values["requested_at"])
}

func (s *PurchaseSuite) TestInvalidPurchasePublishesNothing() {
	ctx := context.Background()

	err := s.service.PurchaseTickets(ctx, 1,
		domain.NewTicketTypeRequest(domain.TicketTypeInfant, 6),
		domain.NewTicketTypeRequest(domain.TicketTypeAdult, 5),
	)
	s.True(errors.Is(err, domain.ErrInvalidPurchase))

	length, err := s.redis.XLen(ctx, testStream).Result()
	s.Require().NoError(err)
	s.Zero(length)
}

func (s *PurchaseSuite) TestEveryPurchaseIsPublished() {
	ctx := context.Background()

	for range 2 {
		s.Require().NoError(s.service.PurchaseTickets(ctx, 9, domain.NewTicketTypeRequest(domain.TicketTypeAdult, 1)))
	}

	length, err := s.redis.XLen(ctx, testStream).Result()
	s.Require().NoError(err)
	s.Equal(int64(2), length)
}
