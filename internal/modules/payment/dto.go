package payment

import "homeservices/internal/domain"

type ProcessPaymentRequest struct {
	Method domain.PaymentMethod `json:"method" binding:"required" validate:"required,payment_method" example:"CASH"`
}

// Result is the settled booking plus the commission fee raised for a cash payment.
type Result struct {
	Booking *domain.ServiceRequest `json:"booking"`
	Fee     *domain.FeeRequest     `json:"fee,omitempty"`
}
