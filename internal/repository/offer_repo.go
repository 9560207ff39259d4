package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"homeservices/internal/domain"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) Create(ctx context.Context, o *domain.ServiceOffer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OfferRepository) SetStatus(ctx context.Context, id string, status domain.OfferStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.ServiceOffer{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *OfferRepository) Delete(ctx context.Context, bookingID, offerID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND booking_id = ?", offerID, bookingID).
		Delete(&domain.ServiceOffer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: offer %s", domain.ErrNotFound, offerID)
	}
	return nil
}

func (r *OfferRepository) ListPending(ctx context.Context, bookingID string) ([]domain.ServiceOffer, error) {
	var out []domain.ServiceOffer
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND status = ?", bookingID, domain.OfferPending).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
