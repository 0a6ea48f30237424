package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/metinatakli/cinema-tickets/internal/domain"
)

// ParseTickets reads a list such as "ADULT=2,CHILD=1". Unrecognised ticket names are
// kept as domain.TicketTypeUnknown and left for the purchase rules to handle.
func ParseTickets(s string) ([]domain.TicketTypeRequest, error) {
	var requests []domain.TicketTypeRequest

	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		name, count, found := strings.Cut(item, "=")
		if !found {
			return nil, fmt.Errorf("ticket %q must have the form TYPE=COUNT", item)
		}

		noOfTickets, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			return nil, fmt.Errorf("ticket %q has an invalid count: %w", item, err)
		}

		requests = append(requests, domain.NewTicketTypeRequest(domain.ParseTicketType(name), noOfTickets))
	}

	return requests, nil
}
