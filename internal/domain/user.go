package domain

import "time"

type UserRole string

const (
	RoleArtist       UserRole = "artist"
	RoleAR           UserRole = "ar"
	RoleLabelManager UserRole = "label_manager"
	RoleAdmin        UserRole = "admin"
)

// ValidRole reports whether r is one of the closed role set. Roles arrive
// from admin edits as strings and must never be persisted outside this set.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleArtist, RoleAR, RoleLabelManager, RoleAdmin:
		return true
	}
	return false
}

// CanViewAllReleases reports whether the role sees the full release catalog
// instead of only its own rows.
func (r UserRole) CanViewAllReleases() bool {
	return r == RoleLabelManager || r == RoleAdmin
}

type User struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	Username         string    `json:"username" gorm:"uniqueIndex;not null"`
	Email            string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash     string    `json:"-" gorm:"not null"`
	FullName         string    `json:"full_name"`
	LabelName        string    `json:"label_name,omitempty"`
	Role             UserRole  `json:"role" gorm:"type:varchar(32);not null;default:'artist'"`
	IsApproved       bool      `json:"is_approved" gorm:"not null;default:false"`
	IsSuspended      bool      `json:"is_suspended" gorm:"not null;default:false"`
	SuspensionReason string    `json:"suspension_reason,omitempty"`
	Country          string    `json:"country,omitempty"`
	Timezone         string    `json:"timezone,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
