package notification

import (
	"context"

	"homeservices/internal/domain"
)

type NotificationRepository interface {
	CreateBatch(ctx context.Context, items []domain.AppNotification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.AppNotification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type UserDirectory interface {
	AdminIDs(ctx context.Context) ([]string, error)
	IDsByRole(ctx context.Context, role domain.UserRole) ([]string, error)
}

// Publisher pushes a stored notification to a live client, if one is connected.
type Publisher interface {
	Publish(userID string, n domain.AppNotification) bool
}
