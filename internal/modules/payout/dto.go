package payout

import "github.com/shopspring/decimal"

type CreateMethodRequest struct {
	Type    string `json:"type" binding:"required,oneof=crypto bank_transfer"`
	Details string `json:"details" binding:"required"`
}

type CreateRequestRequest struct {
	MethodID int64           `json:"method_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

type BalanceResponse struct {
	Balance       decimal.Decimal `json:"balance"`
	TotalEarned   decimal.Decimal `json:"total_earned"`
	TotalPaidOut  decimal.Decimal `json:"total_paid_out"`
	MinimumPayout decimal.Decimal `json:"minimum_payout"`
}
