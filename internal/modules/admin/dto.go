package admin

import "homeservices/internal/domain"

type BlockUserRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type UserListFilter struct {
	Role    string `form:"role" binding:"omitempty,oneof=CUSTOMER PROVIDER ADMIN"`
	Blocked *bool  `form:"blocked"`
	Query   string `form:"q"` // name/email contains
}

type UserListResponse struct {
	Users []domain.User `json:"users"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type StatisticsResponse struct {
	UsersByRole         map[string]int64 `json:"users_by_role"`
	BookingsByStatus    map[string]int64 `json:"bookings_by_status"`
	TodayBookings       int64            `json:"today_bookings"`
	FeesByStatus        map[string]int64 `json:"fees_by_status"`
	WithdrawalsByStatus map[string]int64 `json:"withdrawals_by_status"`
	BlockedUsers        int64            `json:"blocked_users"`
}
