package auth

import (
	"fmt"

	"homeservices/internal/domain"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	ErrEmailAlreadyExists = fmt.Errorf("%w: email already exists", domain.ErrConflict)
	ErrEmailNotVerified   = fmt.Errorf("%w: email not verified", domain.ErrForbidden)
	ErrAccountBlocked     = fmt.Errorf("%w: account is blocked", domain.ErrForbidden)
	ErrInvalidCode        = fmt.Errorf("%w: invalid or expired verification code", domain.ErrValidation)
	ErrTooManyAttempts    = fmt.Errorf("%w: too many verification attempts, request a new code", domain.ErrInvalidState)
	ErrAlreadyVerified    = fmt.Errorf("%w: account is already verified", domain.ErrInvalidState)
)
