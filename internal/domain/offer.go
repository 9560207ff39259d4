package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfferStatus string

const (
	OfferPending    OfferStatus = "PENDING"
	OfferAccepted   OfferStatus = "ACCEPTED"
	OfferSuperseded OfferStatus = "SUPERSEDED"
)

// ServiceOffer is a provider's price range for an unassigned booking.
type ServiceOffer struct {
	ID           string      `json:"id" gorm:"type:varchar(36);primaryKey"`
	BookingID    string      `json:"booking_id" gorm:"type:varchar(36);index;not null"`
	ProviderID   string      `json:"provider_id" gorm:"type:varchar(36);index;not null"`
	ProviderName string      `json:"provider_name"`
	MinPrice     int64       `json:"min_price"`
	MaxPrice     int64       `json:"max_price"`
	Status       OfferStatus `json:"status" gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time   `json:"created_at"`
}

func (ServiceOffer) TableName() string { return "service_offers" }

func (o *ServiceOffer) BeforeCreate(_ *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
