// Package fee reconciles the commission providers owe for cash-settled bookings.
package fee

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"homeservices/internal/domain"
	"homeservices/internal/modules/ledger"
	"homeservices/internal/pkg/logger"
	"homeservices/internal/repository"
)

type Service struct {
	store  *repository.Store
	events EventDispatcher
	log    *zap.Logger
}

func NewService(store *repository.Store, events EventDispatcher, log *zap.Logger) *Service {
	return &Service{store: store, events: events, log: logger.OrNop(log)}
}

// SettleFee is the provider's claim that the commission was paid. The fee waits in
// VERIFYING until an admin approves or rejects it.
func (s *Service) SettleFee(ctx context.Context, feeID, providerID, proof string) (*domain.FeeRequest, error) {
	return s.update(ctx, feeID, providerID, func(f *domain.FeeRequest) (domain.EventType, error) {
		if f.ProviderID != providerID {
			return "", fmt.Errorf("%w: fee %s belongs to another provider", domain.ErrForbidden, f.ID)
		}
		if f.Status != domain.FeePending {
			return "", fmt.Errorf("%w: fee %s is %s", domain.ErrInvalidState, f.ID, f.Status)
		}
		f.Status = domain.FeeVerifying
		f.Proof = strings.TrimSpace(proof)
		return domain.EventFeeSettlementSubmitted, nil
	})
}

// ManageFee applies an admin decision to a provider's fee.
func (s *Service) ManageFee(ctx context.Context, adminID, providerID, feeID string, action domain.FeeAction, newAmount int64) (*domain.FeeRequest, error) {
	switch action {
	case domain.FeeApprove, domain.FeeReject, domain.FeeRemind:
	case domain.FeeUpdate:
		if newAmount <= 0 {
			return nil, fmt.Errorf("%w: new amount must be positive", domain.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown fee action %q", domain.ErrValidation, action)
	}

	return s.update(ctx, feeID, adminID, func(f *domain.FeeRequest) (domain.EventType, error) {
		if f.ProviderID != providerID {
			return "", fmt.Errorf("%w: fee %s for provider %s", domain.ErrNotFound, feeID, providerID)
		}

		switch action {
		case domain.FeeApprove:
			if f.Status != domain.FeeVerifying && f.Status != domain.FeeRejected {
				return "", fmt.Errorf("%w: fee %s is %s", domain.ErrInvalidState, f.ID, f.Status)
			}
			f.Status = domain.FeePaid
			return domain.EventFeeApproved, nil

		case domain.FeeReject:
			if f.Status != domain.FeeVerifying {
				return "", fmt.Errorf("%w: fee %s is %s", domain.ErrInvalidState, f.ID, f.Status)
			}
			// returned to the provider for another settlement attempt
			f.Status = domain.FeePending
			return domain.EventFeeRejected, nil

		case domain.FeeUpdate:
			f.Amount = newAmount
			return domain.EventFeeUpdated, nil
		}

		if f.Status != domain.FeePending && f.Status != domain.FeeRejected {
			return "", fmt.Errorf("%w: fee %s is %s", domain.ErrInvalidState, f.ID, f.Status)
		}
		return domain.EventFeeReminder, nil
	})
}

func (s *Service) update(ctx context.Context, feeID, actorID string, fn func(f *domain.FeeRequest) (domain.EventType, error)) (*domain.FeeRequest, error) {
	var (
		out *domain.FeeRequest
		ev  domain.EventType
	)

	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		f, err := tx.Fees.GetForUpdate(ctx, feeID)
		if err != nil {
			return err
		}
		ev, err = fn(f)
		if err != nil {
			return err
		}
		if err := tx.Fees.Save(ctx, f); err != nil {
			return err
		}
		out = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("fee updated",
		zap.String("fee_id", out.ID),
		zap.String("provider_id", out.ProviderID),
		zap.String("status", string(out.Status)),
		zap.String("event", string(ev)),
	)

	if s.events != nil {
		snap := *out
		s.events.Dispatch(ctx, domain.Event{Type: ev, ActorID: actorID, Fee: &snap})
	}
	return out, nil
}

func (s *Service) ListForProvider(ctx context.Context, providerID string) (*ProviderFees, error) {
	fees, err := s.store.Fees.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if fees == nil {
		fees = []domain.FeeRequest{}
	}
	return &ProviderFees{Fees: fees, Owed: ledger.UnpaidCommission(providerID, fees)}, nil
}

func (s *Service) ListAll(ctx context.Context, status domain.FeeStatus) ([]domain.FeeRequest, error) {
	out, err := s.store.Fees.List(ctx, status)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.FeeRequest{}
	}
	return out, nil
}

// OwedTotal is the provider's outstanding commission across every fee not yet PAID.
func (s *Service) OwedTotal(ctx context.Context, providerID string) (int64, error) {
	fees, err := s.store.Fees.ListByProvider(ctx, providerID)
	if err != nil {
		return 0, err
	}
	return ledger.UnpaidCommission(providerID, fees), nil
}
