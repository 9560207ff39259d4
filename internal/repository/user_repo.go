package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homeservices/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &u, nil
}

func (r *UserRepository) GetForUpdate(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	email = normalizeEmail(email)
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err, "user", email)
	}
	return &u, nil
}

func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	var out []domain.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// ListProviders returns verified providers, optionally narrowed to one category, best rated first.
func (r *UserRepository) ListProviders(ctx context.Context, category string) ([]domain.User, error) {
	q := r.db.WithContext(ctx).
		Where("role = ? AND is_verified = ? AND is_blocked = ?", domain.RoleProvider, true, false)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var out []domain.User
	err := q.Order("rating DESC").Order("jobs_completed DESC").Find(&out).Error
	return out, err
}

func (r *UserRepository) AdminIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("role = ?", domain.RoleAdmin).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// IDsByRole returns every user id, or only those of role when it is non-empty.
func (r *UserRepository) IDsByRole(ctx context.Context, role domain.UserRole) ([]string, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var ids []string
	err := q.Order("created_at ASC").Pluck("id", &ids).Error
	return ids, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserFilter struct {
	Role    domain.UserRole
	Blocked *bool
	Query   string
}

// Search pages through users matching f, newest first. page is 1-based.
func (r *UserRepository) Search(ctx context.Context, f UserFilter, page, limit int) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Blocked != nil {
		q = q.Where("is_blocked = ?", *f.Blocked)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Query)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.User
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}
