package ticket

import (
	"context"

	"gorm.io/gorm"

	"soundbridge/internal/domain"
)

type TicketRepositoryInterface interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Ticket, error)
	Update(ctx context.Context, t *domain.Ticket) error
	AddMessage(ctx context.Context, m *domain.TicketMessage) error
	DB() *gorm.DB
}
