package booking

import (
	"context"

	"homeservices/internal/domain"
	"homeservices/internal/repository"
)

// Get returns the booking if the actor may see it: its customer, its provider, an admin,
// or any provider while the booking is still open to offers.
func (s *Service) Get(ctx context.Context, bookingID string, actor Actor) (*domain.ServiceRequest, error) {
	b, err := s.store.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canView(b, actor) {
		return nil, forbiddenf("booking %s is not visible to you", b.ID)
	}
	return b, nil
}

func canView(b *domain.ServiceRequest, actor Actor) bool {
	switch {
	case actor.Role == domain.RoleAdmin:
		return true
	case b.IsParty(actor.ID):
		return true
	case actor.Role == domain.RoleProvider:
		return !b.Assigned() && (b.Status == domain.BookingPending || b.Status == domain.BookingOfferMade)
	}
	return false
}

// List filters bookings by role: customers see their own, providers see theirs plus the
// open pool in their category, admins see everything.
func (s *Service) List(ctx context.Context, actor Actor, status domain.BookingStatus) ([]domain.ServiceRequest, error) {
	var (
		out []domain.ServiceRequest
		err error
	)

	switch actor.Role {
	case domain.RoleAdmin:
		out, err = s.store.Bookings.List(ctx, repository.BookingFilter{Status: status})
	case domain.RoleCustomer:
		out, err = s.store.Bookings.List(ctx, repository.BookingFilter{CustomerID: actor.ID, Status: status})
	case domain.RoleProvider:
		var provider *domain.User
		provider, err = s.store.Users.GetByID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		out, err = s.store.Bookings.ListForProvider(ctx, provider.ID, provider.Category, status)
	default:
		return nil, forbiddenf("unknown role %q", actor.Role)
	}
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.ServiceRequest{}
	}
	return out, nil
}
