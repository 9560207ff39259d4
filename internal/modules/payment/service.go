package payment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"homeservices/internal/domain"
	"homeservices/internal/pkg/logger"
	"homeservices/internal/pkg/validator"
	"homeservices/internal/repository"
)

type Service struct {
	store      *repository.Store
	events     EventDispatcher
	commission int64
	log        *zap.Logger
}

func NewService(store *repository.Store, events EventDispatcher, commission int64, log *zap.Logger) *Service {
	return &Service{store: store, events: events, commission: commission, log: logger.OrNop(log)}
}

// ProcessPayment settles a completed booking. A cash payment raises exactly one commission
// fee for the provider in the same transaction; a card payment keeps the commission at source.
func (s *Service) ProcessPayment(ctx context.Context, bookingID, customerID string, method domain.PaymentMethod) (*Result, error) {
	if err := validator.Check(ProcessPaymentRequest{Method: method}); err != nil {
		return nil, err
	}

	var (
		res    Result
		events []domain.Event
	)

	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		b, err := tx.Bookings.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.CustomerID != customerID {
			return fmt.Errorf("%w: only the customer may pay for booking %s", domain.ErrForbidden, b.ID)
		}
		if b.Status != domain.BookingCompleted || b.PaymentStatus != domain.PaymentUnpaid {
			return fmt.Errorf("%w: booking %s is %s/%s", domain.ErrInvalidState, b.ID, b.Status, b.PaymentStatus)
		}

		b.PaymentStatus = domain.PaymentPaid
		b.PaymentMethod = method
		if err := tx.Bookings.Save(ctx, b); err != nil {
			return err
		}

		snap := domain.BookingSnapshot(b)
		events = append(events,
			domain.Event{Type: domain.EventPaymentSucceeded, ActorID: customerID, Booking: snap},
			domain.Event{Type: domain.EventPaymentReceived, ActorID: customerID, Booking: snap},
		)

		if method == domain.PaymentCash && b.Assigned() {
			fee := &domain.FeeRequest{
				ProviderID:      b.ProviderID,
				BookingID:       b.ID,
				Amount:          s.commission,
				Status:          domain.FeePending,
				BookingCategory: b.Category,
			}
			if err := tx.Fees.Create(ctx, fee); err != nil {
				return err
			}
			res.Fee = fee
			events = append(events, domain.Event{Type: domain.EventFeeCreated, ActorID: customerID, Booking: snap, Fee: fee})
		}

		res.Booking, err = tx.Bookings.GetByID(ctx, b.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking paid",
		zap.String("booking_id", bookingID),
		zap.String("method", string(method)),
		zap.Int64("amount", res.Booking.Price),
		zap.Bool("fee_raised", res.Fee != nil),
	)

	if s.events != nil {
		s.events.Dispatch(ctx, events...)
	}
	return &res, nil
}
