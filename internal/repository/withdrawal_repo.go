package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homeservices/internal/domain"
)

type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) Create(ctx context.Context, w *domain.Withdrawal) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WithdrawalRepository) GetForUpdate(ctx context.Context, id string) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&w).Error
	if err != nil {
		return nil, notFound(err, "withdrawal", id)
	}
	return &w, nil
}

func (r *WithdrawalRepository) Save(ctx context.Context, w *domain.Withdrawal) error {
	return r.db.WithContext(ctx).
		Model(&domain.Withdrawal{}).
		Where("id = ?", w.ID).
		Updates(map[string]any{
			"amount":       w.Amount,
			"status":       w.Status,
			"admin_note":   w.AdminNote,
			"processed_at": w.ProcessedAt,
		}).Error
}

func (r *WithdrawalRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Withdrawal, error) {
	var out []domain.Withdrawal
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *WithdrawalRepository) List(ctx context.Context, status domain.WithdrawalStatus) ([]domain.Withdrawal, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []domain.Withdrawal
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}
