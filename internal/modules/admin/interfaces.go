package admin

import (
	"context"

	"homeservices/internal/domain"
	"homeservices/internal/repository"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Save(ctx context.Context, u *domain.User) error
	Search(ctx context.Context, f repository.UserFilter, page, limit int) ([]domain.User, int64, error)
}

type StatsRepository interface {
	CountBy(ctx context.Context, model any, column string) (map[string]int64, error)
	Count(ctx context.Context, model any, where string, args ...any) (int64, error)
}
