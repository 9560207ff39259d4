package domain

import "errors"

// Command rejections. Modules wrap these with context via fmt.Errorf("%w: ...").
var (
	ErrValidation   = errors.New("validation error")
	ErrInvalidState = errors.New("invalid state")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("concurrent update")
	ErrUnauthorized = errors.New("unauthorized")
)
