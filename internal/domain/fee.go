package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeeStatus string

const (
	FeePending   FeeStatus = "PENDING"
	FeeVerifying FeeStatus = "VERIFYING"
	FeePaid      FeeStatus = "PAID"
	FeeRejected  FeeStatus = "REJECTED"
)

type FeeAction string

const (
	FeeApprove FeeAction = "APPROVE"
	FeeReject  FeeAction = "REJECT"
	FeeUpdate  FeeAction = "UPDATE"
	FeeRemind  FeeAction = "REMIND"
)

// FeeRequest is the platform commission owed by a provider for a cash-settled booking.
// BookingID is unique: one fee per cash payment.
type FeeRequest struct {
	ID              string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ProviderID      string    `json:"provider_id" gorm:"type:varchar(36);index;not null"`
	BookingID       string    `json:"booking_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	Amount          int64     `json:"amount" gorm:"not null"`
	Status          FeeStatus `json:"status" gorm:"type:varchar(16);index;not null"`
	BookingCategory string    `json:"booking_category"`
	Proof           string    `json:"proof,omitempty" gorm:"type:text"`
	CreatedAt       time.Time `json:"date"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (FeeRequest) TableName() string { return "fee_requests" }

func (f *FeeRequest) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
