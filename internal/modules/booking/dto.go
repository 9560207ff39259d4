package booking

import "homeservices/internal/domain"

// Actor is the authenticated caller of a read view.
type Actor struct {
	ID   string
	Role domain.UserRole
}

type PriceRange struct {
	Min int64 `json:"min" binding:"gte=0"`
	Max int64 `json:"max" binding:"gte=0"`
}

type CreateBookingRequest struct {
	Category    string      `json:"category" binding:"required"`
	Description string      `json:"description" binding:"required,max=4000"`
	Address     string      `json:"address" binding:"required,max=500"`
	ProviderID  string      `json:"provider_id"`
	PriceRange  *PriceRange `json:"ai_price_range"`

	CustomerID string `json:"-"`
}

type MakeOfferRequest struct {
	MinPrice int64 `json:"min_price" binding:"required,gt=0"`
	MaxPrice int64 `json:"max_price" binding:"required,gtefield=MinPrice"`
}

type UpdateStatusRequest struct {
	Status     domain.BookingStatus `json:"status" binding:"required"`
	FinalPrice int64                `json:"final_price" binding:"gte=0"`
}

type RateRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Review string `json:"review" binding:"max=2000"`
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}
