package admin

import "github.com/shopspring/decimal"

// ReviewRequest drives every admin review state machine: applications,
// releases, payout methods and payout requests.
type ReviewRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type UpdateUserRequest struct {
	Role             *string `json:"role,omitempty"`
	IsApproved       *bool   `json:"is_approved,omitempty"`
	IsSuspended      *bool   `json:"is_suspended,omitempty"`
	SuspensionReason string  `json:"suspension_reason,omitempty"`
}

type UserListFilter struct {
	Role      string `form:"role"`
	Approved  *bool  `form:"approved"`
	Suspended *bool  `form:"suspended"`
	Query     string `form:"q"` // username/email/full name contains
}

type TicketStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_progress closed"`
}

type DSPRequest struct {
	Name    string `json:"name" binding:"required"`
	Region  string `json:"region"`
	Enabled *bool  `json:"enabled,omitempty"`
}

type SettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type CreateEarningRequest struct {
	UserID      int64           `json:"user_id" binding:"required"`
	ReleaseID   *int64          `json:"release_id,omitempty"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

type NewsRequest struct {
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body" binding:"required"`
	Published *bool  `json:"published,omitempty"`
}

type StatisticsResponse struct {
	TotalUsers            int `json:"total_users"`
	PendingApplications   int `json:"pending_applications"`
	TotalReleases         int `json:"total_releases"`
	PendingReleases       int `json:"pending_releases"`
	OpenTickets           int `json:"open_tickets"`
	PendingPayoutRequests int `json:"pending_payout_requests"`
}
