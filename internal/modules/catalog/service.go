package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"homeservices/internal/domain"
	"homeservices/internal/pkg/logger"
	"homeservices/internal/repository"
)

type Service struct {
	categories *repository.CategoryRepository
	users      *repository.UserRepository
	log        *zap.Logger
}

func NewService(categories *repository.CategoryRepository, users *repository.UserRepository, log *zap.Logger) *Service {
	return &Service{categories: categories, users: users, log: logger.OrNop(log)}
}

/* ---------- CATEGORIES ---------- */

// EnsureDefaults seeds the configured categories into an empty catalog.
func (s *Service) EnsureDefaults(ctx context.Context, names []string) error {
	n, err := s.categories.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := s.categories.Create(ctx, &domain.CategoryItem{Name: name, IsActive: true}); err != nil {
			if repository.IsUniqueViolation(err) {
				continue
			}
			return err
		}
	}
	s.log.Info("default categories created", zap.Strings("names", names))
	return nil
}

func (s *Service) ListCategories(ctx context.Context, includeInactive bool) ([]domain.CategoryItem, error) {
	out, err := s.categories.List(ctx, !includeInactive)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.CategoryItem{}
	}
	return out, nil
}

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.CategoryItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrValidation)
	}

	c := &domain.CategoryItem{
		Name:      name,
		Icon:      strings.TrimSpace(req.Icon),
		BasePrice: req.BasePrice,
		IsActive:  true,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category %q already exists", domain.ErrConflict, name)
		}
		return nil, err
	}
	return c, nil
}

// UpdateCategory edits or deactivates a category. Bookings keep the name they were created with.
func (s *Service) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*domain.CategoryItem, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category name is required", domain.ErrValidation)
		}
		c.Name = name
	}
	if req.Icon != nil {
		c.Icon = strings.TrimSpace(*req.Icon)
	}
	if req.BasePrice != nil {
		c.BasePrice = *req.BasePrice
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.categories.Save(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category %q already exists", domain.ErrConflict, c.Name)
		}
		return nil, err
	}
	return c, nil
}

/* ---------- PROVIDERS ---------- */

func (s *Service) ListProviders(ctx context.Context, category string) ([]domain.User, error) {
	out, err := s.users.ListProviders(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.User{}
	}
	return out, nil
}

func (s *Service) GetProvider(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsProvider() {
		return nil, fmt.Errorf("%w: provider %s", domain.ErrNotFound, id)
	}
	return u, nil
}

func (s *Service) UpdateProviderProfile(ctx context.Context, providerID string, req UpdateProviderProfileRequest) (*domain.User, error) {
	u, err := s.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		c, err := s.categories.GetActiveByName(ctx, strings.TrimSpace(*req.Category))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: category %q is not active", domain.ErrValidation, *req.Category)
			}
			return nil, err
		}
		u.Category = c.Name
	}
	if req.HourlyRate != nil {
		u.HourlyRate = *req.HourlyRate
	}
	if req.AvailableFrom != nil {
		u.AvailableFrom = *req.AvailableFrom
	}
	if req.AvailableTo != nil {
		u.AvailableTo = *req.AvailableTo
	}
	if u.AvailableFrom != "" && u.AvailableTo != "" && u.AvailableFrom >= u.AvailableTo {
		return nil, fmt.Errorf("%w: availability window %s-%s is empty", domain.ErrValidation, u.AvailableFrom, u.AvailableTo)
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
