package release

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"soundbridge/internal/domain"
	"soundbridge/internal/pkg/validator"
)

type Service struct {
	releases ReleaseRepositoryInterface
	dsps     DSPRepositoryInterface
}

func NewService(releases ReleaseRepositoryInterface, dsps DSPRepositoryInterface) *Service {
	return &Service{releases: releases, dsps: dsps}
}

// Create validates the submission and persists release, tracks and DSP
// associations together. On validation failure it returns a field-keyed
// error map describing every offending field, and nothing is persisted.
func (s *Service) Create(ctx context.Context, userID int64, req CreateReleaseRequest) (*domain.Release, map[string]string, error) {
	fields := validator.Validate(req)
	if fields == nil {
		fields = make(map[string]string)
	}

	if req.ReleaseType != "" && !domain.ValidReleaseType(domain.ReleaseType(req.ReleaseType)) {
		fields["release_type"] = "must be one of: Single, EP, Album, Compilation"
	}

	var releaseDate time.Time
	if req.ReleaseDate != "" {
		var err error
		releaseDate, err = time.Parse("2006-01-02", req.ReleaseDate)
		if err != nil {
			fields["release_date"] = "must be a date in YYYY-MM-DD format"
		} else {
			today := time.Now().UTC().Truncate(24 * time.Hour)
			if releaseDate.Before(today) {
				fields["release_date"] = "must not be in the past"
			}
		}
	}

	validateTracks(req.Tracks, fields)

	var dsps []domain.DSP
	if len(req.DSPIDs) == 0 {
		fields["dsp_ids"] = "select at least one distribution platform"
	} else {
		var err error
		dsps, err = s.dsps.GetEnabledByIDs(ctx, req.DSPIDs)
		if err != nil {
			return nil, nil, err
		}
		if len(dsps) != len(uniqueIDs(req.DSPIDs)) {
			fields["dsp_ids"] = "contains unknown or disabled platforms"
		}
	}

	if len(fields) > 0 {
		return nil, fields, ErrValidation
	}

	rel := &domain.Release{
		UserID:        userID,
		Title:         strings.TrimSpace(req.Title),
		Version:       strings.TrimSpace(req.Version),
		PrimaryArtist: strings.TrimSpace(req.PrimaryArtist),
		ReleaseType:   domain.ReleaseType(req.ReleaseType),
		Genre:         req.Genre,
		Language:      req.Language,
		ReleaseDate:   releaseDate,
		Status:        domain.StatusPending,
		CoverArtURL:   req.CoverArtURL,
		UPC:           req.UPC,
		CatalogNumber: req.CatalogNumber,
		DSPs:          dsps,
	}
	for _, t := range req.Tracks {
		rel.Tracks = append(rel.Tracks, domain.Track{
			Title:         strings.TrimSpace(t.Title),
			TrackNumber:   t.TrackNumber,
			IsExplicit:    t.IsExplicit,
			AudioURL:      t.AudioURL,
			AudioFileName: t.AudioFileName,
			ISRC:          t.ISRC,
			Duration:      t.Duration,
		})
	}

	if err := s.releases.Create(ctx, rel); err != nil {
		return nil, nil, err
	}
	return rel, nil, nil
}

// List is role-scoped: artists and A&Rs see their own releases, label
// managers and admins see everything.
func (s *Service) List(ctx context.Context, user *domain.User) ([]domain.Release, error) {
	if user.Role.CanViewAllReleases() {
		return s.releases.ListAll(ctx, "")
	}
	return s.releases.ListByUser(ctx, user.ID)
}

// Get applies the same visibility rule to a single release. Existence is
// checked before ownership, so unknown ids are a 404 and foreign ids a 403.
func (s *Service) Get(ctx context.Context, user *domain.User, id int64) (*domain.Release, error) {
	rel, err := s.releases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rel.UserID != user.ID && !user.Role.CanViewAllReleases() {
		return nil, ErrForbidden
	}
	return rel, nil
}

// EnabledDSPs returns the catalog offered on the submission form.
func (s *Service) EnabledDSPs(ctx context.Context) ([]domain.DSP, error) {
	return s.dsps.ListEnabled(ctx)
}

func validateTracks(tracks []TrackInput, fields map[string]string) {
	if len(tracks) == 0 {
		fields["tracks"] = "at least one track is required"
		return
	}

	numbers := make([]int, 0, len(tracks))
	for i, t := range tracks {
		if strings.TrimSpace(t.Title) == "" {
			fields[fmt.Sprintf("tracks.%d.title", i)] = "is required"
		}
		if t.AudioURL == "" {
			fields[fmt.Sprintf("tracks.%d.audio_url", i)] = "is required"
		}
		numbers = append(numbers, t.TrackNumber)
	}

	sort.Ints(numbers)
	for i, n := range numbers {
		if n != i+1 {
			fields["tracks"] = "track numbers must be sequential starting at 1"
			break
		}
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
