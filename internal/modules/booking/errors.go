package booking

import (
	"fmt"

	"homeservices/internal/domain"
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrValidation}, args...)...)
}

func invalidStatef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidState}, args...)...)
}

func forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrForbidden}, args...)...)
}

// transition moves b to the target status or reports the illegal edge.
func transition(b *domain.ServiceRequest, to domain.BookingStatus) error {
	if !domain.CanTransition(b.Status, to) {
		return invalidStatef("booking %s cannot move from %s to %s", b.ID, b.Status, to)
	}
	b.Status = to
	return nil
}

func requireStatus(b *domain.ServiceRequest, allowed ...domain.BookingStatus) error {
	for _, s := range allowed {
		if b.Status == s {
			return nil
		}
	}
	return invalidStatef("booking %s is %s", b.ID, b.Status)
}
