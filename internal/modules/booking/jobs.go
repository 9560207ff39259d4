package booking

import (
	"context"

	"homeservices/internal/domain"
	"homeservices/internal/repository"
)

// AcceptJob lets a provider claim an open booking, or one requested directly from them.
func (s *Service) AcceptJob(ctx context.Context, bookingID, providerID string) (*domain.ServiceRequest, error) {
	return s.mutate(ctx, bookingID, func(tx *repository.Store, b *domain.ServiceRequest) ([]domain.Event, error) {
		provider, err := actingUser(ctx, tx, providerID, domain.RoleProvider)
		if err != nil {
			return nil, err
		}
		if err := requireStatus(b, domain.BookingPending); err != nil {
			return nil, err
		}
		if b.ProviderID != "" && b.ProviderID != provider.ID {
			return nil, invalidStatef("booking %s is already assigned", b.ID)
		}

		if err := transition(b, domain.BookingAccepted); err != nil {
			return nil, err
		}
		b.ProviderID = provider.ID
		b.ProviderName = provider.Name

		return []domain.Event{{Type: domain.EventJobAccepted, ActorID: provider.ID, Booking: domain.BookingSnapshot(b)}}, nil
	})
}

// ProviderDeclineJob returns an accepted booking to the open pool.
func (s *Service) ProviderDeclineJob(ctx context.Context, bookingID, providerID string) (*domain.ServiceRequest, error) {
	return s.mutate(ctx, bookingID, func(tx *repository.Store, b *domain.ServiceRequest) ([]domain.Event, error) {
		if err := requireStatus(b, domain.BookingAccepted); err != nil {
			return nil, err
		}
		if b.ProviderID != providerID {
			return nil, forbiddenf("booking %s is not assigned to you", b.ID)
		}

		if err := transition(b, domain.BookingPending); err != nil {
			return nil, err
		}
		b.ProviderID = ""
		b.ProviderName = ""
		b.Price = 0

		return []domain.Event{{Type: domain.EventJobDeclined, ActorID: providerID, Booking: domain.BookingSnapshot(b)}}, nil
	})
}

// ProviderCancelJob ends the booking. The provider stays recorded on it.
func (s *Service) ProviderCancelJob(ctx context.Context, bookingID, providerID string) (*domain.ServiceRequest, error) {
	return s.mutate(ctx, bookingID, func(tx *repository.Store, b *domain.ServiceRequest) ([]domain.Event, error) {
		if err := requireStatus(b, domain.BookingAccepted, domain.BookingInProgress); err != nil {
			return nil, err
		}
		if b.ProviderID != providerID {
			return nil, forbiddenf("booking %s is not assigned to you", b.ID)
		}

		if err := transition(b, domain.BookingCancelled); err != nil {
			return nil, err
		}

		return []domain.Event{{Type: domain.EventJobCancelled, ActorID: providerID, Booking: domain.BookingSnapshot(b)}}, nil
	})
}

// UpdateStatus drives ACCEPTED -> IN_PROGRESS and IN_PROGRESS -> COMPLETED. Completion
// sets the final price and counts the job for the provider.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, providerID string, to domain.BookingStatus, finalPrice int64) (*domain.ServiceRequest, error) {
	switch to {
	case domain.BookingInProgress:
	case domain.BookingCompleted:
		if finalPrice <= 0 {
			return nil, validationf("final price is required to complete a job")
		}
	default:
		return nil, validationf("status %q cannot be set directly", to)
	}

	return s.mutate(ctx, bookingID, func(tx *repository.Store, b *domain.ServiceRequest) ([]domain.Event, error) {
		if b.ProviderID != providerID {
			return nil, forbiddenf("booking %s is not assigned to you", b.ID)
		}
		if err := transition(b, to); err != nil {
			return nil, err
		}

		if to == domain.BookingInProgress {
			return []domain.Event{{Type: domain.EventJobStarted, ActorID: providerID, Booking: domain.BookingSnapshot(b)}}, nil
		}

		b.Price = finalPrice

		provider, err := tx.Users.GetForUpdate(ctx, providerID)
		if err != nil {
			return nil, err
		}
		provider.JobsCompleted++
		if err := tx.Users.Save(ctx, provider); err != nil {
			return nil, err
		}

		return []domain.Event{{Type: domain.EventJobCompleted, ActorID: providerID, Booking: domain.BookingSnapshot(b)}}, nil
	})
}

// CancelBooking is the customer's cancellation, allowed before work starts.
func (s *Service) CancelBooking(ctx context.Context, bookingID, customerID string) (*domain.ServiceRequest, error) {
	return s.mutate(ctx, bookingID, func(tx *repository.Store, b *domain.ServiceRequest) ([]domain.Event, error) {
		if b.CustomerID != customerID {
			return nil, forbiddenf("only the customer may cancel this booking")
		}
		if err := requireStatus(b, domain.BookingPending, domain.BookingOfferMade, domain.BookingAccepted); err != nil {
			return nil, err
		}
		if err := transition(b, domain.BookingCancelled); err != nil {
			return nil, err
		}

		snap := domain.BookingSnapshot(b)
		superseded, err := supersedeOffers(ctx, tx, b, "", customerID, snap)
		if err != nil {
			return nil, err
		}
		return append([]domain.Event{{Type: domain.EventBookingCancelled, ActorID: customerID, Booking: snap}}, superseded...), nil
	})
}

// RateService records the customer's single rating of a completed job.
func (s *Service) RateService(ctx context.Context, bookingID, customerID string, rating int, review string) (*domain.ServiceRequest, error) {
	if rating < 1 || rating > 5 {
		return nil, validationf("rating must be between 1 and 5")
	}

	return s.mutate(ctx, bookingID, func(tx *repository.Store, b *domain.ServiceRequest) ([]domain.Event, error) {
		if b.CustomerID != customerID {
			return nil, forbiddenf("only the customer may rate this booking")
		}
		if err := requireStatus(b, domain.BookingCompleted); err != nil {
			return nil, err
		}
		if b.Rating != nil {
			return nil, invalidStatef("booking %s is already rated", b.ID)
		}

		r := rating
		b.Rating = &r
		b.Review = review

		if b.ProviderID != "" {
			provider, err := tx.Users.GetForUpdate(ctx, b.ProviderID)
			if err != nil {
				return nil, err
			}
			provider.AddRating(rating)
			if err := tx.Users.Save(ctx, provider); err != nil {
				return nil, err
			}
		}

		return []domain.Event{{Type: domain.EventBookingRated, ActorID: customerID, Booking: domain.BookingSnapshot(b)}}, nil
	})
}
