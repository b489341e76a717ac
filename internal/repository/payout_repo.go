package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"soundbridge/internal/domain"
)

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

func (r *PayoutRepository) DB() *gorm.DB { return r.db }

// -------------------- Payout methods --------------------

func (r *PayoutRepository) CreateMethod(ctx context.Context, m *domain.PayoutMethod) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PayoutRepository) GetMethodByID(ctx context.Context, id int64) (*domain.PayoutMethod, error) {
	var m domain.PayoutMethod
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PayoutRepository) ListMethodsByUser(ctx context.Context, userID int64) ([]domain.PayoutMethod, error) {
	var methods []domain.PayoutMethod
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *PayoutRepository) ListMethods(ctx context.Context, status domain.ReviewStatus) ([]domain.PayoutMethod, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var methods []domain.PayoutMethod
	if err := q.Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *PayoutRepository) UpdateMethod(ctx context.Context, m *domain.PayoutMethod) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// -------------------- Payout requests --------------------

func (r *PayoutRepository) CreateRequest(ctx context.Context, pr *domain.PayoutRequest) error {
	return r.db.WithContext(ctx).Create(pr).Error
}

func (r *PayoutRepository) GetRequestByID(ctx context.Context, id int64) (*domain.PayoutRequest, error) {
	var pr domain.PayoutRequest
	if err := r.db.WithContext(ctx).Preload("Method").First(&pr, id).Error; err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *PayoutRepository) ListRequestsByUser(ctx context.Context, userID int64) ([]domain.PayoutRequest, error) {
	var requests []domain.PayoutRequest
	if err := r.db.WithContext(ctx).
		Preload("Method").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *PayoutRepository) ListRequests(ctx context.Context, status domain.ReviewStatus) ([]domain.PayoutRequest, error) {
	q := r.db.WithContext(ctx).Preload("Method").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []domain.PayoutRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *PayoutRepository) UpdateRequest(ctx context.Context, pr *domain.PayoutRequest) error {
	return r.db.WithContext(ctx).Omit("Method").Save(pr).Error
}

// -------------------- Earnings ledger --------------------

func (r *PayoutRepository) CreateEarning(ctx context.Context, e *domain.Earning) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *PayoutRepository) ListEarningsByUser(ctx context.Context, userID int64) ([]domain.Earning, error) {
	var earnings []domain.Earning
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&earnings).Error; err != nil {
		return nil, err
	}
	return earnings, nil
}

// SumEarnings totals the user's accrual ledger. Amounts are summed in Go
// with decimal arithmetic rather than SQL SUM so sqlite and postgres agree.
func (r *PayoutRepository) SumEarnings(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&domain.Earning{}).
		Where("user_id = ?", userID).
		Pluck("amount", &amounts).Error; err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}

// SumApprovedRequests totals approved withdrawals for the user.
func (r *PayoutRepository) SumApprovedRequests(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&domain.PayoutRequest{}).
		Where("user_id = ? AND status = ?", userID, domain.StatusApproved).
		Pluck("amount", &amounts).Error; err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}
