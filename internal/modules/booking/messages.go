package booking

import (
	"context"
	"strings"

	"homeservices/internal/domain"
	"homeservices/internal/repository"
)

// SendMessage appends to the booking's chat. Messaging is open in every status.
func (s *Service) SendMessage(ctx context.Context, bookingID, senderID, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validationf("message text is required")
	}

	var (
		msg    *domain.Message
		events []domain.Event
	)

	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		b, err := tx.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		sender, err := tx.Users.GetByID(ctx, senderID)
		if err != nil {
			return err
		}
		if !b.IsParty(sender.ID) && !sender.IsAdmin() {
			return forbiddenf("user %s is not part of booking %s", sender.ID, b.ID)
		}

		msg = &domain.Message{
			BookingID:  b.ID,
			SenderID:   sender.ID,
			SenderName: sender.Name,
			Text:       text,
		}
		if err := tx.Messages.Create(ctx, msg); err != nil {
			return err
		}

		events = []domain.Event{{
			Type:    domain.EventMessageSent,
			ActorID: sender.ID,
			Booking: domain.BookingSnapshot(b),
			Message: msg,
		}}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(ctx, events)
	return msg, nil
}

// MarkMessagesRead marks every message the reader did not send as read and returns how many changed.
func (s *Service) MarkMessagesRead(ctx context.Context, bookingID string, reader Actor) (int64, error) {
	b, err := s.store.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	if !b.IsParty(reader.ID) && reader.Role != domain.RoleAdmin {
		return 0, forbiddenf("user %s is not part of booking %s", reader.ID, b.ID)
	}
	return s.store.Messages.MarkReadFor(ctx, b.ID, reader.ID)
}

func (s *Service) Messages(ctx context.Context, bookingID string, actor Actor) ([]domain.Message, error) {
	b, err := s.Get(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}
	if b.Messages == nil {
		return []domain.Message{}, nil
	}
	return b.Messages, nil
}

func (s *Service) UnreadMessageCount(ctx context.Context, userID string) (int64, error) {
	return s.store.Messages.UnreadCountFor(ctx, userID)
}
