package domain

import "strings"

// MaxTickets is the most tickets a single purchase may contain.
const MaxTickets = 25

type TicketType int

const (
	TicketTypeUnknown TicketType = iota
	TicketTypeAdult
	TicketTypeChild
	TicketTypeInfant

	ticketTypeCount
)

// Price returns the unit price of the ticket type. Unknown types cost nothing.
func (t TicketType) Price() int {
	switch t {
	case TicketTypeAdult:
		return 25
	case TicketTypeChild:
		return 15
	default:
		return 0
	}
}

// Seated reports whether a ticket of this type occupies a seat. Infants sit on an adult's lap.
func (t TicketType) Seated() bool {
	return t == TicketTypeAdult || t == TicketTypeChild
}

func (t TicketType) Valid() bool {
	return t > TicketTypeUnknown && t < ticketTypeCount
}

func (t TicketType) String() string {
	switch t {
	case TicketTypeAdult:
		return "ADULT"
	case TicketTypeChild:
		return "CHILD"
	case TicketTypeInfant:
		return "INFANT"
	default:
		return "UNKNOWN"
	}
}

// ParseTicketType maps a case-insensitive name to its TicketType. Names outside the
// known set map to TicketTypeUnknown.
func ParseTicketType(name string) TicketType {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ADULT":
		return TicketTypeAdult
	case "CHILD":
		return TicketTypeChild
	case "INFANT":
		return TicketTypeInfant
	default:
		return TicketTypeUnknown
	}
}

type TicketTypeRequest struct {
	Type        TicketType
	NoOfTickets int `validate:"gt=0"`
}

func NewTicketTypeRequest(ticketType TicketType, noOfTickets int) TicketTypeRequest {
	return TicketTypeRequest{
		Type:        ticketType,
		NoOfTickets: noOfTickets,
	}
}
