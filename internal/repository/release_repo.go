package repository

import (
	"context"

	"gorm.io/gorm"

	"soundbridge/internal/domain"
)

type ReleaseRepository struct {
	db *gorm.DB
}

func NewReleaseRepository(db *gorm.DB) *ReleaseRepository {
	return &ReleaseRepository{db: db}
}

func (r *ReleaseRepository) DB() *gorm.DB { return r.db }

// Create persists the release together with its tracks and DSP associations.
// gorm wraps the multi-table insert in a single transaction, so a failed
// track insert never leaves an orphaned release row.
func (r *ReleaseRepository) Create(ctx context.Context, rel *domain.Release) error {
	return r.db.WithContext(ctx).Create(rel).Error
}

func (r *ReleaseRepository) GetByID(ctx context.Context, id int64) (*domain.Release, error) {
	var rel domain.Release
	if err := r.db.WithContext(ctx).
		Preload("Tracks", func(db *gorm.DB) *gorm.DB { return db.Order("track_number ASC") }).
		Preload("DSPs").
		First(&rel, id).Error; err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *ReleaseRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Release, error) {
	var releases []domain.Release
	if err := r.db.WithContext(ctx).
		Preload("Tracks", func(db *gorm.DB) *gorm.DB { return db.Order("track_number ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&releases).Error; err != nil {
		return nil, err
	}
	return releases, nil
}

func (r *ReleaseRepository) ListAll(ctx context.Context, status domain.ReviewStatus) ([]domain.Release, error) {
	q := r.db.WithContext(ctx).
		Preload("Tracks", func(db *gorm.DB) *gorm.DB { return db.Order("track_number ASC") }).
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var releases []domain.Release
	if err := q.Find(&releases).Error; err != nil {
		return nil, err
	}
	return releases, nil
}

func (r *ReleaseRepository) Update(ctx context.Context, rel *domain.Release) error {
	return r.db.WithContext(ctx).Omit("Tracks", "DSPs").Save(rel).Error
}
