package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingOfferMade  BookingStatus = "OFFER_MADE"
	BookingAccepted   BookingStatus = "ACCEPTED"
	BookingInProgress BookingStatus = "IN_PROGRESS"
	BookingCompleted  BookingStatus = "COMPLETED"
	BookingCancelled  BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "CARD"
	PaymentCash PaymentMethod = "CASH"
)

func (m PaymentMethod) Valid() bool { return m == PaymentCard || m == PaymentCash }

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingOfferMade, BookingAccepted, BookingCancelled},
	BookingOfferMade:  {BookingAccepted, BookingPending, BookingCancelled},
	BookingAccepted:   {BookingInProgress, BookingPending, BookingCancelled},
	BookingInProgress: {BookingCompleted, BookingCancelled},
}

// CanTransition reports whether from -> to is an edge of the booking lifecycle.
// Staying in OFFER_MADE while further offers arrive is allowed.
func CanTransition(from, to BookingStatus) bool {
	if from == BookingOfferMade && to == BookingOfferMade {
		return true
	}
	for _, s := range bookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// ServiceRequest is a customer's booking. ProviderID is empty while the booking is open to offers.
type ServiceRequest struct {
	ID           string        `json:"id" gorm:"type:varchar(36);primaryKey"`
	CustomerID   string        `json:"customer_id" gorm:"type:varchar(36);index;not null"`
	CustomerName string        `json:"customer_name"`
	ProviderID   string        `json:"provider_id,omitempty" gorm:"type:varchar(36);index"`
	ProviderName string        `json:"provider_name,omitempty"`
	Category     string        `json:"category" gorm:"index;not null"`
	Description  string        `json:"description" gorm:"type:text"`
	Address      string        `json:"address"`
	Price        int64         `json:"price"`
	EstimateMin  int64         `json:"estimate_min,omitempty"`
	EstimateMax  int64         `json:"estimate_max,omitempty"`
	Status       BookingStatus `json:"status" gorm:"type:varchar(16);index;not null"`

	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(16);not null"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty" gorm:"type:varchar(8)"`

	Rating *int   `json:"rating,omitempty"`
	Review string `json:"review,omitempty" gorm:"type:text"`

	Version   int64     `json:"version" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []Message      `json:"messages,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	Offers   []ServiceOffer `json:"offers,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
}

func (ServiceRequest) TableName() string { return "service_requests" }

func (b *ServiceRequest) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (b *ServiceRequest) Assigned() bool { return b.ProviderID != "" }

// IsParty reports whether userID is the customer or the assigned provider.
func (b *ServiceRequest) IsParty(userID string) bool {
	return userID != "" && (b.CustomerID == userID || b.ProviderID == userID)
}

// PendingOffers returns offers still open for acceptance, in submission order.
func (b *ServiceRequest) PendingOffers() []ServiceOffer {
	out := make([]ServiceOffer, 0, len(b.Offers))
	for _, o := range b.Offers {
		if o.Status == OfferPending {
			out = append(out, o)
		}
	}
	return out
}
