package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryItem is a service category; Name is the join key used by bookings and providers.
type CategoryItem struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Icon      string    `json:"icon"`
	BasePrice int64     `json:"base_price"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CategoryItem) TableName() string { return "categories" }

func (c *CategoryItem) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
