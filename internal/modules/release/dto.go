package release

type TrackInput struct {
	Title         string `json:"title"`
	TrackNumber   int    `json:"track_number"`
	IsExplicit    bool   `json:"is_explicit"`
	AudioURL      string `json:"audio_url"`
	AudioFileName string `json:"audio_file_name"`
	ISRC          string `json:"isrc"`
	Duration      int    `json:"duration"`
}

type CreateReleaseRequest struct {
	Title         string       `json:"title" validate:"required"`
	Version       string       `json:"version"`
	PrimaryArtist string       `json:"primary_artist" validate:"required"`
	ReleaseType   string       `json:"release_type" validate:"required"`
	Genre         string       `json:"genre" validate:"required"`
	Language      string       `json:"language" validate:"required"`
	ReleaseDate   string       `json:"release_date" validate:"required"` // YYYY-MM-DD
	CoverArtURL   string       `json:"cover_art_url" validate:"required"`
	UPC           string       `json:"upc"`
	CatalogNumber string       `json:"catalog_number"`
	Tracks        []TrackInput `json:"tracks"`
	DSPIDs        []int64      `json:"dsp_ids"`
}
