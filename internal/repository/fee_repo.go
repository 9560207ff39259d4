package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homeservices/internal/domain"
)

type FeeRepository struct {
	db *gorm.DB
}

func NewFeeRepository(db *gorm.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// Create inserts the fee. A second fee for the same booking fails with domain.ErrInvalidState.
func (r *FeeRepository) Create(ctx context.Context, f *domain.FeeRequest) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: fee already raised for booking %s", domain.ErrInvalidState, f.BookingID)
		}
		return err
	}
	return nil
}

func (r *FeeRepository) GetForUpdate(ctx context.Context, id string) (*domain.FeeRequest, error) {
	var f domain.FeeRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&f).Error
	if err != nil {
		return nil, notFound(err, "fee", id)
	}
	return &f, nil
}

func (r *FeeRepository) Save(ctx context.Context, f *domain.FeeRequest) error {
	return r.db.WithContext(ctx).
		Model(&domain.FeeRequest{}).
		Where("id = ?", f.ID).
		Updates(map[string]any{
			"amount": f.Amount,
			"status": f.Status,
			"proof":  f.Proof,
		}).Error
}

func (r *FeeRepository) CountForBooking(ctx context.Context, bookingID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.FeeRequest{}).Where("booking_id = ?", bookingID).Count(&n).Error
	return n, err
}

func (r *FeeRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.FeeRequest, error) {
	var out []domain.FeeRequest
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *FeeRepository) List(ctx context.Context, status domain.FeeStatus) ([]domain.FeeRequest, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []domain.FeeRequest
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}
