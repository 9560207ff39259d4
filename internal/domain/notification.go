package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotifInfo    NotificationType = "INFO"
	NotifSuccess NotificationType = "SUCCESS"
	NotifWarning NotificationType = "WARNING"
	NotifError   NotificationType = "ERROR"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotifInfo, NotifSuccess, NotifWarning, NotifError:
		return true
	}
	return false
}

// AppNotification carries template keys plus parameters; rendering is left to the client.
type AppNotification struct {
	ID         string            `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID     string            `json:"user_id" gorm:"type:varchar(36);index:idx_notifications_user_created;not null"`
	TitleKey   string            `json:"title_key" gorm:"not null"`
	MessageKey string            `json:"message_key" gorm:"not null"`
	Params     map[string]string `json:"params,omitempty" gorm:"serializer:json"`
	Type       NotificationType  `json:"type" gorm:"type:varchar(8);not null"`
	RelatedID  string            `json:"related_id,omitempty" gorm:"type:varchar(36)"`
	IsRead     bool              `json:"is_read"`
	CreatedAt  time.Time         `json:"date" gorm:"index:idx_notifications_user_created"`
}

func (AppNotification) TableName() string { return "notifications" }

func (n *AppNotification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
