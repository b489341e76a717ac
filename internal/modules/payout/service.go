package payout

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"soundbridge/internal/domain"
)

type Service struct {
	payouts  PayoutRepositoryInterface
	settings SettingsReader
}

func NewService(payouts PayoutRepositoryInterface, settings SettingsReader) *Service {
	return &Service{payouts: payouts, settings: settings}
}

// Balance recomputes earnings minus approved payouts from the append-only
// ledgers on every call; it is never stored.
func (s *Service) Balance(ctx context.Context, userID int64) (*BalanceResponse, error) {
	earned, err := s.payouts.SumEarnings(ctx, userID)
	if err != nil {
		return nil, err
	}
	paidOut, err := s.payouts.SumApprovedRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	minimum, err := s.minimumPayout(ctx)
	if err != nil {
		return nil, err
	}

	return &BalanceResponse{
		Balance:       earned.Sub(paidOut),
		TotalEarned:   earned,
		TotalPaidOut:  paidOut,
		MinimumPayout: minimum,
	}, nil
}

func (s *Service) ListEarnings(ctx context.Context, userID int64) ([]domain.Earning, error) {
	return s.payouts.ListEarningsByUser(ctx, userID)
}

// CreateMethod proposes a payout destination. The type must be inside the
// platform's allowed set; the method then waits for admin review.
func (s *Service) CreateMethod(ctx context.Context, userID int64, req CreateMethodRequest) (*domain.PayoutMethod, error) {
	allowed, err := s.allowedMethodTypes(ctx)
	if err != nil {
		return nil, err
	}
	if !allowed[req.Type] {
		return nil, ErrTypeNotAllowed
	}

	m := &domain.PayoutMethod{
		UserID:  userID,
		Type:    domain.PayoutMethodType(req.Type),
		Details: req.Details,
		Status:  domain.StatusPending,
	}
	if err := s.payouts.CreateMethod(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListMethods(ctx context.Context, userID int64) ([]domain.PayoutMethod, error) {
	return s.payouts.ListMethodsByUser(ctx, userID)
}

// CreateRequest validates all withdrawal preconditions before persisting:
// the method must be an approved one owned by the caller, the amount must
// meet the platform minimum and must not exceed the current balance.
func (s *Service) CreateRequest(ctx context.Context, userID int64, req CreateRequestRequest) (*domain.PayoutRequest, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	method, err := s.payouts.GetMethodByID(ctx, req.MethodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMethodNotFound
		}
		return nil, err
	}
	if method.UserID != userID || method.Status != domain.StatusApproved {
		return nil, ErrMethodNotUsable
	}

	minimum, err := s.minimumPayout(ctx)
	if err != nil {
		return nil, err
	}
	if req.Amount.LessThan(minimum) {
		return nil, ErrBelowMinimum
	}

	earned, err := s.payouts.SumEarnings(ctx, userID)
	if err != nil {
		return nil, err
	}
	paidOut, err := s.payouts.SumApprovedRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(earned.Sub(paidOut)) {
		return nil, ErrInsufficientBalance
	}

	pr := &domain.PayoutRequest{
		Reference: uuid.NewString(),
		UserID:    userID,
		MethodID:  method.ID,
		Amount:    req.Amount,
		Status:    domain.StatusPending,
	}
	if err := s.payouts.CreateRequest(ctx, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

func (s *Service) ListRequests(ctx context.Context, userID int64) ([]domain.PayoutRequest, error) {
	return s.payouts.ListRequestsByUser(ctx, userID)
}

func (s *Service) minimumPayout(ctx context.Context) (decimal.Decimal, error) {
	raw, err := s.settings.Get(ctx, domain.SettingMinimumPayout)
	if err != nil {
		return decimal.Zero, err
	}
	if raw == "" {
		return decimal.Zero, nil
	}
	min, err := decimal.NewFromString(raw)
	if err != nil {
		// Malformed setting must not block withdrawals entirely.
		return decimal.Zero, nil
	}
	return min, nil
}

// allowedMethodTypes parses the allowed_payout_methods setting, a JSON
// array encoded as a string. Unset means both built-in types; malformed
// JSON means none.
func (s *Service) allowedMethodTypes(ctx context.Context) (map[string]bool, error) {
	raw, err := s.settings.Get(ctx, domain.SettingAllowedPayoutMethods)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return map[string]bool{
			string(domain.PayoutMethodCrypto):       true,
			string(domain.PayoutMethodBankTransfer): true,
		}, nil
	}

	var types []string
	if err := json.Unmarshal([]byte(raw), &types); err != nil {
		return map[string]bool{}, nil
	}

	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}
	return allowed, nil
}
