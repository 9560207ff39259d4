package notification

import "homeservices/internal/domain"

type Audience string

const (
	AudienceAll       Audience = "ALL"
	AudienceCustomers Audience = "CUSTOMER"
	AudienceProviders Audience = "PROVIDER"
)

type BroadcastRequest struct {
	Audience Audience                `json:"audience" binding:"required,oneof=ALL CUSTOMER PROVIDER"`
	Title    string                  `json:"title" binding:"required,max=120"`
	Message  string                  `json:"message" binding:"required,max=1000"`
	Type     domain.NotificationType `json:"type"`
}

type ListResponse struct {
	Notifications []domain.AppNotification `json:"notifications"`
	UnreadCount   int64                    `json:"unread_count"`
}
