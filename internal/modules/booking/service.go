package booking

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"homeservices/internal/domain"
	"homeservices/internal/pkg/logger"
	"homeservices/internal/repository"
)

// Service runs booking commands. Each command executes in one transaction and
// hands its events to the dispatcher only after commit.
type Service struct {
	store  *repository.Store
	events EventDispatcher
	log    *zap.Logger
}

func NewService(store *repository.Store, events EventDispatcher, log *zap.Logger) *Service {
	return &Service{store: store, events: events, log: logger.OrNop(log)}
}

type mutation func(tx *repository.Store, b *domain.ServiceRequest) ([]domain.Event, error)

// mutate locks the booking, applies fn, persists it under the version check and
// returns the committed booking with its offers and messages.
func (s *Service) mutate(ctx context.Context, bookingID string, fn mutation) (*domain.ServiceRequest, error) {
	var (
		out    *domain.ServiceRequest
		events []domain.Event
	)

	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		b, err := tx.Bookings.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		evs, err := fn(tx, b)
		if err != nil {
			return err
		}
		if err := tx.Bookings.Save(ctx, b); err != nil {
			return err
		}

		out, err = tx.Bookings.GetByID(ctx, b.ID)
		if err != nil {
			return err
		}
		events = evs
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(ctx, events)
	return out, nil
}

func (s *Service) dispatch(ctx context.Context, events []domain.Event) {
	if s.events == nil || len(events) == 0 {
		return
	}
	s.events.Dispatch(ctx, events...)
}

func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.ServiceRequest, error) {
	category := strings.TrimSpace(req.Category)
	description := strings.TrimSpace(req.Description)
	address := strings.TrimSpace(req.Address)
	if category == "" || description == "" || address == "" {
		return nil, validationf("category, description and address are required")
	}

	var estMin, estMax int64
	if r := req.PriceRange; r != nil {
		if r.Min < 0 || r.Max < r.Min {
			return nil, validationf("price range %d-%d is invalid", r.Min, r.Max)
		}
		estMin, estMax = r.Min, r.Max
	}

	var (
		b      *domain.ServiceRequest
		events []domain.Event
	)

	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		customer, err := resolveUser(ctx, tx, req.CustomerID, domain.RoleCustomer)
		if err != nil {
			return err
		}

		if _, err := tx.Categories.GetActiveByName(ctx, category); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return validationf("category %q is not active", category)
			}
			return err
		}

		b = &domain.ServiceRequest{
			CustomerID:    customer.ID,
			CustomerName:  customer.Name,
			Category:      category,
			Description:   description,
			Address:       address,
			EstimateMin:   estMin,
			EstimateMax:   estMax,
			Status:        domain.BookingPending,
			PaymentStatus: domain.PaymentUnpaid,
		}

		if req.ProviderID != "" {
			provider, err := resolveUser(ctx, tx, req.ProviderID, domain.RoleProvider)
			if err != nil {
				return err
			}
			b.ProviderID = provider.ID
			b.ProviderName = provider.Name
		}

		if err := tx.Bookings.Create(ctx, b); err != nil {
			return err
		}

		snap := domain.BookingSnapshot(b)
		events = append(events, domain.Event{Type: domain.EventBookingCreated, ActorID: customer.ID, Booking: snap})
		if b.ProviderID != "" {
			events = append(events, domain.Event{Type: domain.EventBookingDirectRequest, ActorID: customer.ID, Booking: snap})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("customer_id", b.CustomerID),
		zap.String("category", b.Category),
		zap.Bool("direct", b.ProviderID != ""),
	)

	s.dispatch(ctx, events)
	return b, nil
}

// resolveUser loads a referenced user. An unknown id or the wrong role is a validation failure.
func resolveUser(ctx context.Context, tx *repository.Store, id string, role domain.UserRole) (*domain.User, error) {
	if id == "" {
		return nil, validationf("%s id is required", strings.ToLower(string(role)))
	}
	u, err := tx.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, validationf("unknown %s %s", strings.ToLower(string(role)), id)
		}
		return nil, err
	}
	if u.Role != role {
		return nil, validationf("user %s is not a %s", id, strings.ToLower(string(role)))
	}
	return u, nil
}

// actingUser loads the caller of a command. The wrong role is forbidden.
func actingUser(ctx context.Context, tx *repository.Store, id string, role domain.UserRole) (*domain.User, error) {
	u, err := tx.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != role {
		return nil, forbiddenf("user %s is not a %s", id, strings.ToLower(string(role)))
	}
	return u, nil
}
