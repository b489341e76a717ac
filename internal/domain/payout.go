package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayoutMethodType string

const (
	PayoutMethodCrypto       PayoutMethodType = "crypto"
	PayoutMethodBankTransfer PayoutMethodType = "bank_transfer"
)

// PayoutMethod is a user's proposed payout destination. Only approved
// methods are usable as a payout request target.
type PayoutMethod struct {
	ID              int64            `json:"id" gorm:"primaryKey"`
	UserID          int64            `json:"user_id" gorm:"index;not null"`
	Type            PayoutMethodType `json:"type" gorm:"type:varchar(32);not null"`
	Details         string           `json:"details" gorm:"not null"`
	Status          ReviewStatus     `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func (PayoutMethod) TableName() string { return "payout_methods" }

// PayoutRequest is a withdrawal against the computed balance. Amount is
// immutable after creation; approved requests reduce the derived balance.
type PayoutRequest struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	Reference       string          `json:"reference" gorm:"uniqueIndex;not null"`
	UserID          int64           `json:"user_id" gorm:"index;not null"`
	MethodID        int64           `json:"method_id" gorm:"not null"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Status          ReviewStatus    `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`

	Method *PayoutMethod `json:"method,omitempty" gorm:"foreignKey:MethodID;references:ID"`
}

func (PayoutRequest) TableName() string { return "payout_requests" }

// Earning is an append-only accrual record. Never updated or deleted
// through normal flow; the balance is always recomputed from this ledger.
type Earning struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	UserID      int64           `json:"user_id" gorm:"index;not null"`
	ReleaseID   *int64          `json:"release_id,omitempty"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Earning) TableName() string { return "earnings" }
