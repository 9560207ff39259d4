// Package ledger derives provider earnings and balances from booking, fee and withdrawal records.
// Nothing here is persisted; every figure is recomputed from source rows on each read.
package ledger

import "homeservices/internal/domain"

// GrossRevenue sums price over every booking assigned to the provider, paid or not.
func GrossRevenue(providerID string, bookings []domain.ServiceRequest) int64 {
	var total int64
	for _, b := range bookings {
		if b.ProviderID == providerID {
			total += b.Price
		}
	}
	return total
}

// UnpaidCommission sums the provider's fee requests that are not yet PAID.
func UnpaidCommission(providerID string, fees []domain.FeeRequest) int64 {
	var total int64
	for _, f := range fees {
		if f.ProviderID == providerID && f.Status != domain.FeePaid {
			total += f.Amount
		}
	}
	return total
}

// NetCardRevenue sums max(0, price-commission) over the provider's paid card bookings.
func NetCardRevenue(providerID string, bookings []domain.ServiceRequest, commission int64) int64 {
	var total int64
	for _, b := range bookings {
		if !isPaidCard(b) || b.ProviderID != providerID {
			continue
		}
		if net := b.Price - commission; net > 0 {
			total += net
		}
	}
	return total
}

// ReservedWithdrawals sums PENDING and APPROVED withdrawals. Approved money is gone,
// pending money is held back so it cannot be requested twice.
func ReservedWithdrawals(providerID string, withdrawals []domain.Withdrawal) int64 {
	var total int64
	for _, w := range withdrawals {
		if w.ProviderID != providerID {
			continue
		}
		if w.Status == domain.WithdrawalPending || w.Status == domain.WithdrawalApproved {
			total += w.Amount
		}
	}
	return total
}

// AvailableBalance is net card revenue minus reserved withdrawals, never negative.
func AvailableBalance(providerID string, bookings []domain.ServiceRequest, withdrawals []domain.Withdrawal, commission int64) int64 {
	return clamp(NetCardRevenue(providerID, bookings, commission) - ReservedWithdrawals(providerID, withdrawals))
}

type Summary struct {
	ProviderID     string `json:"provider_id"`
	Gross          int64  `json:"gross_revenue"`
	NetCard        int64  `json:"net_card_revenue"`
	Reserved       int64  `json:"reserved_withdrawals"`
	Available      int64  `json:"available_balance"`
	OwedCommission int64  `json:"owed_commission"`
	JobsCompleted  int    `json:"jobs_completed"`
}

func Summarize(providerID string, bookings []domain.ServiceRequest, fees []domain.FeeRequest, withdrawals []domain.Withdrawal, commission int64) Summary {
	s := Summary{
		ProviderID:     providerID,
		Gross:          GrossRevenue(providerID, bookings),
		NetCard:        NetCardRevenue(providerID, bookings, commission),
		Reserved:       ReservedWithdrawals(providerID, withdrawals),
		OwedCommission: UnpaidCommission(providerID, fees),
	}
	s.Available = clamp(s.NetCard - s.Reserved)

	for _, b := range bookings {
		if b.ProviderID == providerID && b.Status == domain.BookingCompleted {
			s.JobsCompleted++
		}
	}
	return s
}

// PlatformSummary is the admin view of commission collected and money in flight.
type PlatformSummary struct {
	CardCommission     int64 `json:"card_commission"`
	CashCommissionPaid int64 `json:"cash_commission_paid"`
	OutstandingFees    int64 `json:"outstanding_fees"`
	PendingWithdrawals int64 `json:"pending_withdrawals"`
	PaidOut            int64 `json:"paid_out"`
	CompletedJobs      int   `json:"completed_jobs"`
}

func SummarizePlatform(bookings []domain.ServiceRequest, fees []domain.FeeRequest, withdrawals []domain.Withdrawal, commission int64) PlatformSummary {
	var p PlatformSummary

	for _, b := range bookings {
		if b.Status == domain.BookingCompleted {
			p.CompletedJobs++
		}
		if isPaidCard(b) && b.Assigned() {
			// the platform keeps at most the job price
			p.CardCommission += min(b.Price, commission)
		}
	}

	for _, f := range fees {
		if f.Status == domain.FeePaid {
			p.CashCommissionPaid += f.Amount
		} else {
			p.OutstandingFees += f.Amount
		}
	}

	for _, w := range withdrawals {
		switch w.Status {
		case domain.WithdrawalPending:
			p.PendingWithdrawals += w.Amount
		case domain.WithdrawalApproved:
			p.PaidOut += w.Amount
		}
	}
	return p
}

func isPaidCard(b domain.ServiceRequest) bool {
	return b.PaymentStatus == domain.PaymentPaid && b.PaymentMethod == domain.PaymentCard
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
