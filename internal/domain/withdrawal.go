package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

type WithdrawalAction string

const (
	WithdrawalApprove WithdrawalAction = "APPROVE"
	WithdrawalReject  WithdrawalAction = "REJECT"
)

type Withdrawal struct {
	ID           string           `json:"id" gorm:"type:varchar(36);primaryKey"`
	ProviderID   string           `json:"provider_id" gorm:"type:varchar(36);index;not null"`
	ProviderName string           `json:"provider_name"`
	Amount       int64            `json:"amount" gorm:"not null"`
	Method       string           `json:"method" gorm:"not null"`
	Status       WithdrawalStatus `json:"status" gorm:"type:varchar(16);index;not null"`
	AdminNote    string           `json:"admin_note,omitempty"`
	ProcessedAt  *time.Time       `json:"processed_at,omitempty"`
	CreatedAt    time.Time        `json:"date"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (Withdrawal) TableName() string { return "withdrawals" }

func (w *Withdrawal) BeforeCreate(_ *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
