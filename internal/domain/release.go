package domain

import "time"

type ReleaseType string

const (
	ReleaseTypeSingle      ReleaseType = "Single"
	ReleaseTypeEP          ReleaseType = "EP"
	ReleaseTypeAlbum       ReleaseType = "Album"
	ReleaseTypeCompilation ReleaseType = "Compilation"
)

func ValidReleaseType(t ReleaseType) bool {
	switch t {
	case ReleaseTypeSingle, ReleaseTypeEP, ReleaseTypeAlbum, ReleaseTypeCompilation:
		return true
	}
	return false
}

// Release is the unit of admin review and distribution.
type Release struct {
	ID              int64        `json:"id" gorm:"primaryKey"`
	UserID          int64        `json:"user_id" gorm:"index;not null"`
	Title           string       `json:"title" gorm:"not null"`
	Version         string       `json:"version,omitempty"`
	PrimaryArtist   string       `json:"primary_artist" gorm:"not null"`
	ReleaseType     ReleaseType  `json:"release_type" gorm:"type:varchar(16);not null"`
	Genre           string       `json:"genre" gorm:"not null"`
	Language        string       `json:"language" gorm:"not null"`
	ReleaseDate     time.Time    `json:"release_date" gorm:"not null"`
	Status          ReviewStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	CoverArtURL     string       `json:"cover_art_url" gorm:"not null"`
	UPC             string       `json:"upc,omitempty"`
	CatalogNumber   string       `json:"catalog_number,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`

	Tracks []Track `json:"tracks,omitempty" gorm:"foreignKey:ReleaseID;constraint:OnDelete:CASCADE"`
	DSPs   []DSP   `json:"dsps,omitempty" gorm:"many2many:release_dsps;"`
}

func (Release) TableName() string { return "releases" }

type Track struct {
	ID            int64  `json:"id" gorm:"primaryKey"`
	ReleaseID     int64  `json:"release_id" gorm:"not null;uniqueIndex:idx_release_track_no,priority:1"`
	Title         string `json:"title" gorm:"not null"`
	TrackNumber   int    `json:"track_number" gorm:"not null;uniqueIndex:idx_release_track_no,priority:2"`
	IsExplicit    bool   `json:"is_explicit" gorm:"not null;default:false"`
	AudioURL      string `json:"audio_url" gorm:"not null"`
	AudioFileName string `json:"audio_file_name"`
	ISRC          string `json:"isrc,omitempty"`
	Duration      int    `json:"duration,omitempty"` // seconds
}

func (Track) TableName() string { return "tracks" }
