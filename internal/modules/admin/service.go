package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"homeservices/internal/domain"
	"homeservices/internal/pkg/logger"
	"homeservices/internal/repository"
)

type Service struct {
	users UserRepository
	stats StatsRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewService(users UserRepository, stats StatsRepository, log *zap.Logger) *Service {
	return &Service{users: users, stats: stats, log: logger.OrNop(log), now: time.Now}
}

// -------------------- Statistics --------------------

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	var (
		out StatisticsResponse
		err error
	)

	if out.UsersByRole, err = s.stats.CountBy(ctx, &domain.User{}, "role"); err != nil {
		return nil, err
	}
	if out.BlockedUsers, err = s.stats.Count(ctx, &domain.User{}, "is_blocked = ?", true); err != nil {
		return nil, err
	}

	if out.BookingsByStatus, err = s.stats.CountBy(ctx, &domain.ServiceRequest{}, "status"); err != nil {
		return nil, err
	}
	if out.FeesByStatus, err = s.stats.CountBy(ctx, &domain.FeeRequest{}, "status"); err != nil {
		return nil, err
	}
	if out.WithdrawalsByStatus, err = s.stats.CountBy(ctx, &domain.Withdrawal{}, "status"); err != nil {
		return nil, err
	}

	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if out.TodayBookings, err = s.stats.Count(ctx, &domain.ServiceRequest{}, "created_at >= ?", start); err != nil {
		return nil, err
	}

	return &out, nil
}

// -------------------- Users moderation --------------------

// ListUsers supports simple filters + pagination
func (s *Service) ListUsers(ctx context.Context, filter UserListFilter, page, limit int) ([]domain.User, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	users, total, err := s.users.Search(ctx, repository.UserFilter{
		Role:    domain.UserRole(strings.TrimSpace(filter.Role)),
		Blocked: filter.Blocked,
		Query:   filter.Query,
	}, page, limit)
	if err != nil {
		return nil, 0, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, int(total), nil
}

// BlockUser stops the account from logging in. Admin accounts cannot be blocked.
func (s *Service) BlockUser(ctx context.Context, adminID, userID, reason string) (*domain.User, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}
	if userID == adminID {
		return nil, fmt.Errorf("%w: cannot block yourself", domain.ErrValidation)
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.IsAdmin() {
		return nil, fmt.Errorf("%w: admin accounts cannot be blocked", domain.ErrForbidden)
	}
	if u.IsBlocked {
		return nil, fmt.Errorf("%w: user is already blocked", domain.ErrInvalidState)
	}

	u.IsBlocked = true
	u.BlockReason = reason
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user blocked",
		zap.String("admin_id", adminID),
		zap.String("user_id", userID),
		zap.String("reason", reason),
	)
	return u, nil
}

func (s *Service) UnblockUser(ctx context.Context, adminID, userID string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsBlocked {
		return nil, fmt.Errorf("%w: user is not blocked", domain.ErrInvalidState)
	}

	u.IsBlocked = false
	u.BlockReason = ""
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user unblocked", zap.String("admin_id", adminID), zap.String("user_id", userID))
	return u, nil
}
