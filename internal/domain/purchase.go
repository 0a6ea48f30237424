package domain

import "context"

type PurchaseRequest struct {
	AccountID int64               `validate:"required"`
	Tickets   []TicketTypeRequest `validate:"required,min=1,dive"`
}

// CategoryTotals holds the summed ticket count of every known ticket type.
type CategoryTotals [ticketTypeCount]int

// NewCategoryTotals sums the requested counts per ticket type. Requests with an
// unknown ticket type are dropped.
func NewCategoryTotals(requests []TicketTypeRequest) CategoryTotals {
	var totals CategoryTotals

	for _, r := range requests {
		if !r.Type.Valid() {
			continue
		}

		totals[r.Type] += r.NoOfTickets
	}

	return totals
}

func (c CategoryTotals) Count(t TicketType) int {
	if !t.Valid() {
		return 0
	}

	return c[t]
}

func (c CategoryTotals) Total() int {
	total := 0
	for t := TicketTypeAdult; t < ticketTypeCount; t++ {
		total += c[t]
	}

	return total
}

func (c CategoryTotals) Amount() int {
	amount := 0
	for t := TicketTypeAdult; t < ticketTypeCount; t++ {
		amount += c[t] * t.Price()
	}

	return amount
}

func (c CategoryTotals) Seats() int {
	seats := 0
	for t := TicketTypeAdult; t < ticketTypeCount; t++ {
		if t.Seated() {
			seats += c[t]
		}
	}

	return seats
}

// Purchase is a validated and priced purchase request.
type Purchase struct {
	AccountID   int64
	Totals      CategoryTotals
	TotalAmount int
	TotalSeats  int
}

func NewPurchase(accountID int64, totals CategoryTotals) Purchase {
	return Purchase{
		AccountID:   accountID,
		Totals:      totals,
		TotalAmount: totals.Amount(),
		TotalSeats:  totals.Seats(),
	}
}

type TicketPaymentService interface {
	MakePayment(ctx context.Context, accountID int64, totalAmountToPay int) error
}

type SeatReservationService interface {
	ReserveSeat(ctx context.Context, accountID int64, totalSeatsToAllocate int) error
}
