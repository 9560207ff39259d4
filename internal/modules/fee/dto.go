package fee

import "homeservices/internal/domain"

type SettleRequest struct {
	Proof string `json:"proof" binding:"max=2000"`
}

type ManageRequest struct {
	Action    domain.FeeAction `json:"action" binding:"required"`
	NewAmount int64            `json:"new_amount" binding:"gte=0"`
}

type ProviderFees struct {
	Fees []domain.FeeRequest `json:"fees"`
	Owed int64               `json:"owed"`
}
