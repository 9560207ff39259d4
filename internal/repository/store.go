package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"homeservices/internal/domain"
)

// Store bundles the repositories over one gorm handle. Inside WithTx every
// repository shares the transaction.
type Store struct {
	db *gorm.DB

	Users         *UserRepository
	Categories    *CategoryRepository
	Bookings      *BookingRepository
	Offers        *OfferRepository
	Messages      *MessageRepository
	Fees          *FeeRepository
	Withdrawals   *WithdrawalRepository
	Notifications *NotificationRepository
	Stats         *StatsRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		Categories:    NewCategoryRepository(db),
		Bookings:      NewBookingRepository(db),
		Offers:        NewOfferRepository(db),
		Messages:      NewMessageRepository(db),
		Fees:          NewFeeRepository(db),
		Withdrawals:   NewWithdrawalRepository(db),
		Notifications: NewNotificationRepository(db),
		Stats:         NewStatsRepository(db),
	}
}

func (s *Store) DB() *gorm.DB { return s.db }

// WithTx runs fn in a single transaction. Any error rolls back every write made through tx.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// IsUniqueViolation detects duplicate-key errors from postgres (23505) and sqlite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}

func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, id)
	}
	return err
}
