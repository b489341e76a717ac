package domain

import "time"

// ReviewStatus is the shared status set for everything an admin reviews:
// applications, releases, payout methods and payout requests.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"
)

func ValidReviewTarget(s ReviewStatus) bool {
	return s == StatusApproved || s == StatusRejected
}

// Application is the access request created alongside each registration.
// One per user; approving it flips User.IsApproved.
type Application struct {
	ID              int64        `json:"id" gorm:"primaryKey"`
	UserID          int64        `json:"user_id" gorm:"uniqueIndex;not null"`
	Status          ReviewStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Application) TableName() string { return "applications" }
