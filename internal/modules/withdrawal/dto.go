package withdrawal

import "homeservices/internal/domain"

type CreateRequest struct {
	Amount int64  `json:"amount" validate:"gt=0" example:"1200"`
	Method string `json:"method" validate:"required,max=64" example:"Bank Transfer"`
}

type ProcessRequest struct {
	Action domain.WithdrawalAction `json:"action" validate:"required,oneof=APPROVE REJECT"`
	Amount int64                   `json:"amount" validate:"gte=0"`
	Note   string                  `json:"note" validate:"max=500"`
}

type ProviderWithdrawals struct {
	Withdrawals []domain.Withdrawal `json:"withdrawals"`
	Available   int64               `json:"available_balance"`
}
