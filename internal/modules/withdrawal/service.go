// Package withdrawal handles provider payout requests against the computed card balance.
package withdrawal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"homeservices/internal/domain"
	"homeservices/internal/modules/ledger"
	"homeservices/internal/pkg/logger"
	"homeservices/internal/pkg/validator"
	"homeservices/internal/repository"
)

type Service struct {
	store      *repository.Store
	events     EventDispatcher
	commission int64
	log        *zap.Logger
	now        func() time.Time
}

func NewService(store *repository.Store, events EventDispatcher, commission int64, log *zap.Logger) *Service {
	return &Service{
		store:      store,
		events:     events,
		commission: commission,
		log:        logger.OrNop(log),
		now:        time.Now,
	}
}

// RequestWithdrawal reserves amount from the provider's available balance. The balance is
// recomputed inside the transaction with the provider row locked, so two concurrent
// requests cannot both spend the same money.
func (s *Service) RequestWithdrawal(ctx context.Context, providerID string, req CreateRequest) (*domain.Withdrawal, error) {
	req.Method = strings.TrimSpace(req.Method)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	var w *domain.Withdrawal
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		provider, err := tx.Users.GetForUpdate(ctx, providerID)
		if err != nil {
			return err
		}
		if !provider.IsProvider() {
			return fmt.Errorf("%w: user %s is not a provider", domain.ErrForbidden, providerID)
		}

		available, err := availableBalance(ctx, tx, provider.ID, s.commission)
		if err != nil {
			return err
		}
		if req.Amount > available {
			return fmt.Errorf("%w: amount %d exceeds available balance %d", domain.ErrValidation, req.Amount, available)
		}

		w = &domain.Withdrawal{
			ProviderID:   provider.ID,
			ProviderName: provider.Name,
			Amount:       req.Amount,
			Method:       req.Method,
			Status:       domain.WithdrawalPending,
		}
		return tx.Withdrawals.Create(ctx, w)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("withdrawal requested",
		zap.String("withdrawal_id", w.ID),
		zap.String("provider_id", w.ProviderID),
		zap.Int64("amount", w.Amount),
	)
	s.dispatch(ctx, domain.EventWithdrawalRequested, providerID, w)
	return w, nil
}

// ProcessWithdrawal approves or rejects a pending withdrawal. Approval may pay out less
// than requested; both outcomes are final.
func (s *Service) ProcessWithdrawal(ctx context.Context, adminID, withdrawalID string, req ProcessRequest) (*domain.Withdrawal, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	var (
		w  *domain.Withdrawal
		ev domain.EventType
	)
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		var err error
		w, err = tx.Withdrawals.GetForUpdate(ctx, withdrawalID)
		if err != nil {
			return err
		}
		if w.Status != domain.WithdrawalPending {
			return fmt.Errorf("%w: withdrawal %s is already %s", domain.ErrInvalidState, w.ID, w.Status)
		}

		if req.Action == domain.WithdrawalApprove {
			if req.Amount > w.Amount {
				return fmt.Errorf("%w: approved amount %d exceeds requested %d", domain.ErrValidation, req.Amount, w.Amount)
			}
			if req.Amount > 0 {
				w.Amount = req.Amount
			}
			w.Status = domain.WithdrawalApproved
			ev = domain.EventWithdrawalApproved
		} else {
			w.Status = domain.WithdrawalRejected
			ev = domain.EventWithdrawalRejected
		}

		now := s.now()
		w.ProcessedAt = &now
		w.AdminNote = strings.TrimSpace(req.Note)
		return tx.Withdrawals.Save(ctx, w)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("withdrawal processed",
		zap.String("withdrawal_id", w.ID),
		zap.String("status", string(w.Status)),
		zap.Int64("amount", w.Amount),
		zap.String("admin_id", adminID),
	)
	s.dispatch(ctx, ev, adminID, w)
	return w, nil
}

func (s *Service) dispatch(ctx context.Context, t domain.EventType, actorID string, w *domain.Withdrawal) {
	if s.events == nil {
		return
	}
	snap := *w
	s.events.Dispatch(ctx, domain.Event{Type: t, ActorID: actorID, Withdrawal: &snap})
}

func (s *Service) ListForProvider(ctx context.Context, providerID string) (*ProviderWithdrawals, error) {
	list, err := s.store.Withdrawals.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	available, err := availableBalance(ctx, s.store, providerID, s.commission)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Withdrawal{}
	}
	return &ProviderWithdrawals{Withdrawals: list, Available: available}, nil
}

func (s *Service) ListAll(ctx context.Context, status domain.WithdrawalStatus) ([]domain.Withdrawal, error) {
	out, err := s.store.Withdrawals.List(ctx, status)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Withdrawal{}
	}
	return out, nil
}

func availableBalance(ctx context.Context, st *repository.Store, providerID string, commission int64) (int64, error) {
	bookings, err := st.Bookings.List(ctx, repository.BookingFilter{ProviderID: providerID, Status: domain.BookingCompleted})
	if err != nil {
		return 0, err
	}
	withdrawals, err := st.Withdrawals.ListByProvider(ctx, providerID)
	if err != nil {
		return 0, err
	}
	return ledger.AvailableBalance(providerID, bookings, withdrawals, commission), nil
}
