package admin

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"soundbridge/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
	DB() *gorm.DB
}

type ApplicationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	List(ctx context.Context, status domain.ReviewStatus) ([]domain.Application, error)
	DB() *gorm.DB
}

type ReleaseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Release, error)
	ListAll(ctx context.Context, status domain.ReviewStatus) ([]domain.Release, error)
	Update(ctx context.Context, rel *domain.Release) error
	DB() *gorm.DB
}

type PayoutRepository interface {
	GetMethodByID(ctx context.Context, id int64) (*domain.PayoutMethod, error)
	ListMethods(ctx context.Context, status domain.ReviewStatus) ([]domain.PayoutMethod, error)
	UpdateMethod(ctx context.Context, m *domain.PayoutMethod) error
	GetRequestByID(ctx context.Context, id int64) (*domain.PayoutRequest, error)
	ListRequests(ctx context.Context, status domain.ReviewStatus) ([]domain.PayoutRequest, error)
	UpdateRequest(ctx context.Context, pr *domain.PayoutRequest) error
	CreateEarning(ctx context.Context, e *domain.Earning) error
	SumEarnings(ctx context.Context, userID int64) (decimal.Decimal, error)
	SumApprovedRequests(ctx context.Context, userID int64) (decimal.Decimal, error)
	DB() *gorm.DB
}

type TicketRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListAll(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error)
	Update(ctx context.Context, t *domain.Ticket) error
	DB() *gorm.DB
}

type DSPRepository interface {
	Create(ctx context.Context, d *domain.DSP) error
	GetByID(ctx context.Context, id int64) (*domain.DSP, error)
	Update(ctx context.Context, d *domain.DSP) error
	ListAll(ctx context.Context) ([]domain.DSP, error)
	DB() *gorm.DB
}

type SettingRepository interface {
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]domain.PlatformSetting, error)
	DB() *gorm.DB
}

type NewsRepository interface {
	Create(ctx context.Context, n *domain.NewsPost) error
	GetByID(ctx context.Context, id int64) (*domain.NewsPost, error)
	Update(ctx context.Context, n *domain.NewsPost) error
	Delete(ctx context.Context, id int64) error
	ListPublished(ctx context.Context) ([]domain.NewsPost, error)
	ListAll(ctx context.Context) ([]domain.NewsPost, error)
	DB() *gorm.DB
}
