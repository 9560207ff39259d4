package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleProvider UserRole = "PROVIDER"
	RoleAdmin    UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	return r == RoleCustomer || r == RoleProvider || r == RoleAdmin
}

type User struct {
	ID           string   `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name         string   `json:"name" gorm:"not null"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null"`
	Phone        string   `json:"phone,omitempty"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role" gorm:"type:varchar(16);index;not null"`
	IsVerified   bool     `json:"is_verified"`
	IsBlocked    bool     `json:"is_blocked" gorm:"not null;default:false"`
	BlockReason  string   `json:"block_reason,omitempty"`

	VerificationCodeHash string     `json:"-"`
	VerificationExpires  *time.Time `json:"-"`
	VerificationAttempts int        `json:"-"`

	// Provider profile
	Category      string  `json:"category,omitempty" gorm:"index"`
	HourlyRate    int64   `json:"hourly_rate,omitempty"`
	Rating        float64 `json:"rating"`
	RatingCount   int     `json:"rating_count"`
	JobsCompleted int     `json:"jobs_completed"`
	AvailableFrom string  `json:"available_from,omitempty"`
	AvailableTo   string  `json:"available_to,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) IsProvider() bool { return u.Role == RoleProvider }
func (u *User) IsCustomer() bool { return u.Role == RoleCustomer }
func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }

// AddRating folds a new 1-5 score into the running average.
func (u *User) AddRating(score int) {
	total := u.Rating*float64(u.RatingCount) + float64(score)
	u.RatingCount++
	u.Rating = total / float64(u.RatingCount)
}
