package ledger

import (
	"context"

	"homeservices/internal/domain"
	"homeservices/internal/repository"
)

type BookingRepository interface {
	List(ctx context.Context, f repository.BookingFilter) ([]domain.ServiceRequest, error)
}

type FeeRepository interface {
	ListByProvider(ctx context.Context, providerID string) ([]domain.FeeRequest, error)
	List(ctx context.Context, status domain.FeeStatus) ([]domain.FeeRequest, error)
}

type WithdrawalRepository interface {
	ListByProvider(ctx context.Context, providerID string) ([]domain.Withdrawal, error)
	List(ctx context.Context, status domain.WithdrawalStatus) ([]domain.Withdrawal, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
