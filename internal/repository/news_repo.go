package repository

import (
	"context"

	"gorm.io/gorm"

	"soundbridge/internal/domain"
)

type NewsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) DB() *gorm.DB { return r.db }

func (r *NewsRepository) Create(ctx context.Context, n *domain.NewsPost) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NewsRepository) GetByID(ctx context.Context, id int64) (*domain.NewsPost, error) {
	var n domain.NewsPost
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NewsRepository) Update(ctx context.Context, n *domain.NewsPost) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *NewsRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.NewsPost{}, id).Error
}

func (r *NewsRepository) ListPublished(ctx context.Context) ([]domain.NewsPost, error) {
	var posts []domain.NewsPost
	if err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *NewsRepository) ListAll(ctx context.Context) ([]domain.NewsPost, error) {
	var posts []domain.NewsPost
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
