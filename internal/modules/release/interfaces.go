package release

import (
	"context"

	"gorm.io/gorm"

	"soundbridge/internal/domain"
)

type ReleaseRepositoryInterface interface {
	Create(ctx context.Context, rel *domain.Release) error
	GetByID(ctx context.Context, id int64) (*domain.Release, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Release, error)
	ListAll(ctx context.Context, status domain.ReviewStatus) ([]domain.Release, error)
	DB() *gorm.DB
}

type DSPRepositoryInterface interface {
	ListEnabled(ctx context.Context) ([]domain.DSP, error)
	GetEnabledByIDs(ctx context.Context, ids []int64) ([]domain.DSP, error)
}
