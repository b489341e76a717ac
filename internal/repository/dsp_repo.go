package repository

import (
	"context"

	"gorm.io/gorm"

	"soundbridge/internal/domain"
)

type DSPRepository struct {
	db *gorm.DB
}

func NewDSPRepository(db *gorm.DB) *DSPRepository {
	return &DSPRepository{db: db}
}

func (r *DSPRepository) DB() *gorm.DB { return r.db }

func (r *DSPRepository) Create(ctx context.Context, d *domain.DSP) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DSPRepository) GetByID(ctx context.Context, id int64) (*domain.DSP, error) {
	var d domain.DSP
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DSPRepository) Update(ctx context.Context, d *domain.DSP) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DSPRepository) ListAll(ctx context.Context) ([]domain.DSP, error) {
	var dsps []domain.DSP
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&dsps).Error; err != nil {
		return nil, err
	}
	return dsps, nil
}

func (r *DSPRepository) ListEnabled(ctx context.Context) ([]domain.DSP, error) {
	var dsps []domain.DSP
	if err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("name ASC").
		Find(&dsps).Error; err != nil {
		return nil, err
	}
	return dsps, nil
}

// GetEnabledByIDs returns only the enabled DSPs among ids. Callers compare
// lengths to detect disabled or unknown selections.
func (r *DSPRepository) GetEnabledByIDs(ctx context.Context, ids []int64) ([]domain.DSP, error) {
	var dsps []domain.DSP
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND enabled = ?", ids, true).
		Find(&dsps).Error; err != nil {
		return nil, err
	}
	return dsps, nil
}
