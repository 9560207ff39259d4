package auth

import "homeservices/internal/domain"

type RegisterRequest struct {
	Name       string          `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Email      string          `json:"email" binding:"required,email" validate:"required,email"`
	Phone      string          `json:"phone" validate:"max=32"`
	Password   string          `json:"password" binding:"required,min=6" validate:"required,min=6"`
	Role       domain.UserRole `json:"role" binding:"required" validate:"required,user_role,ne=ADMIN"`
	Category   string          `json:"category" validate:"required_if=Role PROVIDER"`
	HourlyRate int64           `json:"hourly_rate" validate:"gte=0"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

type ResendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type LoginResult struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}
