package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID         string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	BookingID  string    `json:"booking_id" gorm:"type:varchar(36);index;not null"`
	SenderID   string    `json:"sender_id" gorm:"type:varchar(36);not null"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Message) TableName() string { return "booking_messages" }

func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

const messagePreviewLen = 30

// MessagePreview trims text to the first 30 runes, adding an ellipsis when cut.
func MessagePreview(text string) string {
	r := []rune(text)
	if len(r) <= messagePreviewLen {
		return text
	}
	return string(r[:messagePreviewLen]) + "..."
}
