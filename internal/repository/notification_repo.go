package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"homeservices/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateBatch(ctx context.Context, items []domain.AppNotification) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// ListByUser returns the user's notifications newest first. limit <= 0 means no limit.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.AppNotification, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []domain.AppNotification
	err := q.Find(&out).Error
	return out, err
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.AppNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.AppNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// MarkRead flags one notification owned by userID. Someone else's notification reads as not found.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	var n domain.AppNotification
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: notification %s", domain.ErrNotFound, id)
		}
		return err
	}
	if n.IsRead {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&domain.AppNotification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
