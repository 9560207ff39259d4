package auth

import (
	"context"

	"homeservices/internal/domain"
)

// UserRepository lists only the methods the auth service uses.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Save(ctx context.Context, u *domain.User) error
}

type CategoryChecker interface {
	GetActiveByName(ctx context.Context, name string) (*domain.CategoryItem, error)
}

type TokenIssuer interface {
	GenerateToken(userID, role string) (string, error)
}

// CodeSender delivers a verification code to the user out of band.
type CodeSender interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
