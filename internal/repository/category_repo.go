package repository

import (
	"context"

	"gorm.io/gorm"

	"homeservices/internal/domain"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.CategoryItem) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.CategoryItem, error) {
	var c domain.CategoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err, "category", id)
	}
	return &c, nil
}

func (r *CategoryRepository) GetActiveByName(ctx context.Context, name string) (*domain.CategoryItem, error) {
	var c domain.CategoryItem
	err := r.db.WithContext(ctx).
		Where("name = ? AND is_active = ?", name, true).
		First(&c).Error
	if err != nil {
		return nil, notFound(err, "category", name)
	}
	return &c, nil
}

// Save writes every column, including an is_active of false.
func (r *CategoryRepository) Save(ctx context.Context, c *domain.CategoryItem) error {
	return r.db.WithContext(ctx).
		Model(&domain.CategoryItem{}).
		Where("id = ?", c.ID).
		Select("name", "icon", "base_price", "is_active").
		Updates(c).Error
}

func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]domain.CategoryItem, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var out []domain.CategoryItem
	err := q.Order("name ASC").Find(&out).Error
	return out, err
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.CategoryItem{}).Count(&n).Error
	return n, err
}
