package payout

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"soundbridge/internal/domain"
)

type PayoutRepositoryInterface interface {
	CreateMethod(ctx context.Context, m *domain.PayoutMethod) error
	GetMethodByID(ctx context.Context, id int64) (*domain.PayoutMethod, error)
	ListMethodsByUser(ctx context.Context, userID int64) ([]domain.PayoutMethod, error)
	CreateRequest(ctx context.Context, pr *domain.PayoutRequest) error
	ListRequestsByUser(ctx context.Context, userID int64) ([]domain.PayoutRequest, error)
	CreateEarning(ctx context.Context, e *domain.Earning) error
	ListEarningsByUser(ctx context.Context, userID int64) ([]domain.Earning, error)
	SumEarnings(ctx context.Context, userID int64) (decimal.Decimal, error)
	SumApprovedRequests(ctx context.Context, userID int64) (decimal.Decimal, error)
	DB() *gorm.DB
}

// SettingsReader exposes platform configuration to payout validation.
type SettingsReader interface {
	Get(ctx context.Context, key string) (string, error)
}
