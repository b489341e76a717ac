package domain

import "time"

// DSP is a distribution platform catalog entry. Releases may only target
// entries that are enabled at submission time.
type DSP struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Region    string    `json:"region"`
	Enabled   bool      `json:"enabled" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
}

func (DSP) TableName() string { return "dsps" }
