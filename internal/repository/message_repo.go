package repository

import (
	"context"

	"gorm.io/gorm"

	"homeservices/internal/domain"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// MarkReadFor marks every message in the booking not sent by readerID as read.
func (r *MessageRepository) MarkReadFor(ctx context.Context, bookingID, readerID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("booking_id = ? AND sender_id <> ? AND is_read = ?", bookingID, readerID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// UnreadCountFor counts unread messages addressed to userID across bookings they are party to.
func (r *MessageRepository) UnreadCountFor(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Joins("JOIN service_requests ON service_requests.id = booking_messages.booking_id").
		Where("booking_messages.is_read = ? AND booking_messages.sender_id <> ?", false, userID).
		Where("service_requests.customer_id = ? OR service_requests.provider_id = ?", userID, userID).
		Count(&n).Error
	return n, err
}
