package ledger

import (
	"context"
	"fmt"

	"homeservices/internal/domain"
	"homeservices/internal/repository"
)

type Service struct {
	bookings    BookingRepository
	fees        FeeRepository
	withdrawals WithdrawalRepository
	users       UserRepository
	commission  int64
}

func NewService(bookings BookingRepository, fees FeeRepository, withdrawals WithdrawalRepository, users UserRepository, commission int64) *Service {
	return &Service{
		bookings:    bookings,
		fees:        fees,
		withdrawals: withdrawals,
		users:       users,
		commission:  commission,
	}
}

func (s *Service) Commission() int64 { return s.commission }

func (s *Service) ProviderSummary(ctx context.Context, providerID string) (*Summary, error) {
	u, err := s.users.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !u.IsProvider() {
		return nil, fmt.Errorf("%w: user %s is not a provider", domain.ErrForbidden, providerID)
	}

	bookings, err := s.bookings.List(ctx, repository.BookingFilter{ProviderID: providerID})
	if err != nil {
		return nil, err
	}
	fees, err := s.fees.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.withdrawals.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	sum := Summarize(providerID, bookings, fees, withdrawals, s.commission)
	return &sum, nil
}

func (s *Service) PlatformSummary(ctx context.Context) (*PlatformSummary, error) {
	bookings, err := s.bookings.List(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, err
	}
	fees, err := s.fees.List(ctx, "")
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.withdrawals.List(ctx, "")
	if err != nil {
		return nil, err
	}

	sum := SummarizePlatform(bookings, fees, withdrawals, s.commission)
	return &sum, nil
}
