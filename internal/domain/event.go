package domain

// EventType names a committed state change; the notification dispatcher decides who hears about it.
type EventType string

const (
	EventBookingCreated       EventType = "booking.created"
	EventBookingDirectRequest EventType = "booking.direct_request"
	EventBookingCancelled     EventType = "booking.cancelled"
	EventBookingRated         EventType = "booking.rated"

	EventOfferMade       EventType = "offer.made"
	EventOfferAccepted   EventType = "offer.accepted"
	EventOfferSuperseded EventType = "offer.superseded"
	EventOfferDeclined   EventType = "offer.declined"

	EventJobAccepted  EventType = "job.accepted"
	EventJobDeclined  EventType = "job.declined"
	EventJobCancelled EventType = "job.cancelled"
	EventJobStarted   EventType = "job.started"
	EventJobCompleted EventType = "job.completed"

	EventMessageSent EventType = "message.sent"

	EventPaymentSucceeded EventType = "payment.succeeded"
	EventPaymentReceived  EventType = "payment.received"

	EventFeeCreated             EventType = "fee.created"
	EventFeeSettlementSubmitted EventType = "fee.settlement_submitted"
	EventFeeApproved            EventType = "fee.approved"
	EventFeeRejected            EventType = "fee.rejected"
	EventFeeUpdated             EventType = "fee.updated"
	EventFeeReminder            EventType = "fee.reminder"

	EventWithdrawalRequested EventType = "withdrawal.requested"
	EventWithdrawalApproved  EventType = "withdrawal.approved"
	EventWithdrawalRejected  EventType = "withdrawal.rejected"
)

// Event is emitted by a command after its state change. Entity pointers are snapshots.
type Event struct {
	Type       EventType
	ActorID    string
	Booking    *ServiceRequest
	Offer      *ServiceOffer
	Message    *Message
	Fee        *FeeRequest
	Withdrawal *Withdrawal
}

// BookingSnapshot copies b without its child collections.
func BookingSnapshot(b *ServiceRequest) *ServiceRequest {
	if b == nil {
		return nil
	}
	cp := *b
	cp.Messages = nil
	cp.Offers = nil
	return &cp
}
