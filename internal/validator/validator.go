package validator

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-tickets/internal/domain"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterStructValidation(validatePurchaseRequest, domain.PurchaseRequest{})

	return validator
}

// validatePurchaseRequest enforces the rules that only hold across all line items,
// so it runs on the aggregated category totals rather than on single fields.
func validatePurchaseRequest(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(domain.PurchaseRequest)
	if !ok {
		return
	}

	// Counts are only summed once they are known to fit under the limit.
	if exceedsMaxTickets(req.Tickets) {
		sl.ReportError(req.Tickets, "Tickets", "Tickets", "max_tickets", strconv.Itoa(domain.MaxTickets))
		return
	}

	totals := domain.NewCategoryTotals(req.Tickets)
	adults := totals.Count(domain.TicketTypeAdult)

	if adults <= 0 {
		sl.ReportError(req.Tickets, "Tickets", "Tickets", "adult_required", "")
	}

	if adults < totals.Count(domain.TicketTypeInfant) {
		sl.ReportError(req.Tickets, "Tickets", "Tickets", "infant_seating", "")
	}
}

// exceedsMaxTickets keeps a running total of the positive counts of known ticket
// types and stops as soon as the next count would take it past domain.MaxTickets.
// The running total never exceeds domain.MaxTickets, so it cannot overflow.
func exceedsMaxTickets(requests []domain.TicketTypeRequest) bool {
	total := 0

	for _, r := range requests {
		if !r.Type.Valid() || r.NoOfTickets <= 0 {
			continue
		}

		if r.NoOfTickets > domain.MaxTickets-total {
			return true
		}

		total += r.NoOfTickets
	}

	return false
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "adult_required":
		return "must include at least one adult ticket"
	case "infant_seating":
		return "must not include more infant tickets than adult tickets"
	case "max_tickets":
		return fmt.Sprintf("must not include more than %s tickets", err.Param())
	default:
		return "is invalid"
	}
}
