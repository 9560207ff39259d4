package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homeservices/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingFilter narrows List. Zero values mean "any".
type BookingFilter struct {
	CustomerID string
	ProviderID string
	Status     domain.BookingStatus
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.ServiceRequest) error {
	if b.Version == 0 {
		b.Version = 1
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate loads the booking with its offers and messages, row-locked for the enclosing transaction.
func (r *BookingRepository) GetForUpdate(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *BookingRepository) get(q *gorm.DB, id string) (*domain.ServiceRequest, error) {
	var b domain.ServiceRequest
	err := q.
		Preload("Offers", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, notFound(err, "booking", id)
	}
	return &b, nil
}

// Save persists the booking's own columns when its version still matches and bumps the version.
// A lost race yields domain.ErrConflict.
func (r *BookingRepository) Save(ctx context.Context, b *domain.ServiceRequest) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.ServiceRequest{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]any{
			"provider_id":    b.ProviderID,
			"provider_name":  b.ProviderName,
			"price":          b.Price,
			"estimate_min":   b.EstimateMin,
			"estimate_max":   b.EstimateMax,
			"status":         b.Status,
			"payment_status": b.PaymentStatus,
			"payment_method": b.PaymentMethod,
			"rating":         b.Rating,
			"review":         b.Review,
			"version":        b.Version + 1,
			"updated_at":     now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: booking %s", domain.ErrConflict, b.ID)
	}

	b.Version++
	b.UpdatedAt = now
	return nil
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.ServiceRequest, error) {
	q := r.db.WithContext(ctx)
	if f.CustomerID != "" {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.ProviderID != "" {
		q = q.Where("provider_id = ?", f.ProviderID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var out []domain.ServiceRequest
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

// ListForProvider returns bookings assigned or addressed to the provider plus the open pool in their category.
func (r *BookingRepository) ListForProvider(ctx context.Context, providerID, category string, status domain.BookingStatus) ([]domain.ServiceRequest, error) {
	open := []domain.BookingStatus{domain.BookingPending, domain.BookingOfferMade}

	q := r.db.WithContext(ctx).
		Where("provider_id = ? OR ((provider_id = '' OR provider_id IS NULL) AND status IN ? AND category = ?)",
			providerID, open, category)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []domain.ServiceRequest
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}
