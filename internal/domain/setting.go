package domain

import "time"

// Setting keys the platform relies on. Values are free-form strings; readers
// must parse defensively.
const (
	SettingMinimumPayout        = "minimum_payout"
	SettingAllowedPayoutMethods = "allowed_payout_methods"
)

type PlatformSetting struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PlatformSetting) TableName() string { return "platform_settings" }
