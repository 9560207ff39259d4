package notification

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"homeservices/internal/domain"
	"homeservices/internal/pkg/logger"
)

const (
	broadcastTitleKey   = "notif.broadcast.title"
	broadcastMessageKey = "notif.broadcast.message"
)

type Service struct {
	repo  NotificationRepository
	users UserDirectory
	pub   Publisher
	log   *zap.Logger
}

func NewService(repo NotificationRepository, users UserDirectory, pub Publisher, log *zap.Logger) *Service {
	return &Service{repo: repo, users: users, pub: pub, log: logger.OrNop(log)}
}

// List returns the user's notifications newest first together with the unread count.
func (s *Service) List(ctx context.Context, userID string, limit int) (*ListResponse, error) {
	items, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.AppNotification{}
	}
	return &ListResponse{Notifications: items, UnreadCount: unread}, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

// Broadcast sends an admin-authored notice to every user in the audience except the sender.
// It returns the number of recipients.
func (s *Service) Broadcast(ctx context.Context, adminID string, req BroadcastRequest) (int, error) {
	title := strings.TrimSpace(req.Title)
	message := strings.TrimSpace(req.Message)
	if title == "" || message == "" {
		return 0, fmt.Errorf("%w: title and message are required", domain.ErrValidation)
	}

	kind := req.Type
	if kind == "" {
		kind = domain.NotifInfo
	}
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: unknown notification type %q", domain.ErrValidation, kind)
	}

	var role domain.UserRole
	switch req.Audience {
	case AudienceAll:
	case AudienceCustomers:
		role = domain.RoleCustomer
	case AudienceProviders:
		role = domain.RoleProvider
	default:
		return 0, fmt.Errorf("%w: unknown audience %q", domain.ErrValidation, req.Audience)
	}

	ids, err := s.users.IDsByRole(ctx, role)
	if err != nil {
		return 0, err
	}

	out := make([]domain.AppNotification, 0, len(ids))
	for _, id := range ids {
		if id == adminID {
			continue
		}
		out = append(out, domain.AppNotification{
			UserID:     id,
			TitleKey:   broadcastTitleKey,
			MessageKey: broadcastMessageKey,
			Params:     map[string]string{"title": title, "message": message},
			Type:       kind,
		})
	}

	if err := s.repo.CreateBatch(ctx, out); err != nil {
		return 0, err
	}

	s.log.Info("broadcast sent",
		zap.String("admin_id", adminID),
		zap.String("audience", string(req.Audience)),
		zap.Int("recipients", len(out)),
	)

	if s.pub != nil {
		for _, n := range out {
			s.pub.Publish(n.UserID, n)
		}
	}
	return len(out), nil
}
