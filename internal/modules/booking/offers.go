package booking

import (
	"context"
	"fmt"

	"homeservices/internal/domain"
	"homeservices/internal/repository"
)

func (s *Service) MakeOffer(ctx context.Context, bookingID, providerID string, minPrice, maxPrice int64) (*domain.ServiceRequest, error) {
	if minPrice <= 0 || maxPrice < minPrice {
		return nil, validationf("offer range %d-%d is invalid", minPrice, maxPrice)
	}

	return s.mutate(ctx, bookingID, func(tx *repository.Store, b *domain.ServiceRequest) ([]domain.Event, error) {
		provider, err := actingUser(ctx, tx, providerID, domain.RoleProvider)
		if err != nil {
			return nil, err
		}
		if err := requireStatus(b, domain.BookingPending, domain.BookingOfferMade); err != nil {
			return nil, err
		}
		if b.ProviderID != "" && b.ProviderID != provider.ID {
			return nil, forbiddenf("booking %s was requested from another provider", b.ID)
		}

		offer := &domain.ServiceOffer{
			BookingID:    b.ID,
			ProviderID:   provider.ID,
			ProviderName: provider.Name,
			MinPrice:     minPrice,
			MaxPrice:     maxPrice,
			Status:       domain.OfferPending,
		}
		if err := tx.Offers.Create(ctx, offer); err != nil {
			return nil, err
		}
		if err := transition(b, domain.BookingOfferMade); err != nil {
			return nil, err
		}

		return []domain.Event{{
			Type:    domain.EventOfferMade,
			ActorID: provider.ID,
			Booking: domain.BookingSnapshot(b),
			Offer:   offer,
		}}, nil
	})
}

// AcceptOffer assigns the offer's provider at the offer's minimum price. Other pending
// offers stay on the booking marked SUPERSEDED.
func (s *Service) AcceptOffer(ctx context.Context, bookingID, offerID, customerID string) (*domain.ServiceRequest, error) {
	return s.mutate(ctx, bookingID, func(tx *repository.Store, b *domain.ServiceRequest) ([]domain.Event, error) {
		if b.CustomerID != customerID {
			return nil, forbiddenf("only the customer may accept offers")
		}
		if err := requireStatus(b, domain.BookingPending, domain.BookingOfferMade); err != nil {
			return nil, err
		}

		offer, err := findOffer(b, offerID)
		if err != nil {
			return nil, err
		}
		if offer.Status != domain.OfferPending {
			return nil, invalidStatef("offer %s is %s", offer.ID, offer.Status)
		}

		if err := transition(b, domain.BookingAccepted); err != nil {
			return nil, err
		}
		b.ProviderID = offer.ProviderID
		b.ProviderName = offer.ProviderName
		b.Price = offer.MinPrice

		if err := tx.Offers.SetStatus(ctx, offer.ID, domain.OfferAccepted); err != nil {
			return nil, err
		}
		accepted := *offer
		accepted.Status = domain.OfferAccepted

		snap := domain.BookingSnapshot(b)
		events := []domain.Event{{Type: domain.EventOfferAccepted, ActorID: customerID, Booking: snap, Offer: &accepted}}

		superseded, err := supersedeOffers(ctx, tx, b, offer.ID, customerID, snap)
		if err != nil {
			return nil, err
		}
		return append(events, superseded...), nil
	})
}

// DeclineOffer removes a pending offer. An OFFER_MADE booking left without pending offers reopens as PENDING.
func (s *Service) DeclineOffer(ctx context.Context, bookingID, offerID, customerID string) (*domain.ServiceRequest, error) {
	return s.mutate(ctx, bookingID, func(tx *repository.Store, b *domain.ServiceRequest) ([]domain.Event, error) {
		if b.CustomerID != customerID {
			return nil, forbiddenf("only the customer may decline offers")
		}
		if err := requireStatus(b, domain.BookingPending, domain.BookingOfferMade); err != nil {
			return nil, err
		}

		offer, err := findOffer(b, offerID)
		if err != nil {
			return nil, err
		}
		if offer.Status != domain.OfferPending {
			return nil, invalidStatef("offer %s is %s", offer.ID, offer.Status)
		}
		declined := *offer

		if err := tx.Offers.Delete(ctx, b.ID, offer.ID); err != nil {
			return nil, err
		}

		if b.Status == domain.BookingOfferMade && len(b.PendingOffers()) == 1 {
			if err := transition(b, domain.BookingPending); err != nil {
				return nil, err
			}
		}

		return []domain.Event{{
			Type:    domain.EventOfferDeclined,
			ActorID: customerID,
			Booking: domain.BookingSnapshot(b),
			Offer:   &declined,
		}}, nil
	})
}

func (s *Service) OpenOffers(ctx context.Context, bookingID string, actor Actor) ([]domain.ServiceOffer, error) {
	b, err := s.Get(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}
	return b.PendingOffers(), nil
}

// supersedeOffers marks every pending offer except keepID as SUPERSEDED.
func supersedeOffers(ctx context.Context, tx *repository.Store, b *domain.ServiceRequest, keepID, actorID string, snap *domain.ServiceRequest) ([]domain.Event, error) {
	var events []domain.Event
	for _, o := range b.PendingOffers() {
		if o.ID == keepID {
			continue
		}
		if err := tx.Offers.SetStatus(ctx, o.ID, domain.OfferSuperseded); err != nil {
			return nil, err
		}
		sup := o
		sup.Status = domain.OfferSuperseded
		events = append(events, domain.Event{Type: domain.EventOfferSuperseded, ActorID: actorID, Booking: snap, Offer: &sup})
	}
	return events, nil
}

func findOffer(b *domain.ServiceRequest, offerID string) (*domain.ServiceOffer, error) {
	for i := range b.Offers {
		if b.Offers[i].ID == offerID {
			return &b.Offers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: offer %s", domain.ErrNotFound, offerID)
}
