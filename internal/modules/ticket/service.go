package ticket

import (
	"context"
	"strings"

	"soundbridge/internal/domain"
)

type Service struct {
	tickets TicketRepositoryInterface
	hub     *Hub
}

func NewService(tickets TicketRepositoryInterface, hub *Hub) *Service {
	return &Service{tickets: tickets, hub: hub}
}

func (s *Service) Create(ctx context.Context, user *domain.User, req CreateTicketRequest) (*domain.Ticket, error) {
	priority := domain.PriorityNormal
	if req.Priority != "" {
		priority = domain.TicketPriority(req.Priority)
	}

	t := &domain.Ticket{
		UserID:   user.ID,
		Subject:  strings.TrimSpace(req.Subject),
		Status:   domain.TicketOpen,
		Priority: priority,
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Message) != "" {
		msg := &domain.TicketMessage{
			TicketID: t.ID,
			UserID:   user.ID,
			Body:     strings.TrimSpace(req.Message),
			IsStaff:  user.Role == domain.RoleAdmin,
		}
		if err := s.tickets.AddMessage(ctx, msg); err != nil {
			return nil, err
		}
		t.Messages = append(t.Messages, *msg)
	}

	return t, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

// Get loads a ticket with its conversation. Existence is checked before
// access, so unknown ids yield a 404 and foreign tickets a 403.
func (s *Service) Get(ctx context.Context, user *domain.User, id int64) (*domain.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != user.ID && user.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return t, nil
}

// AddMessage appends to the conversation. Closed tickets reject new
// messages; participants connected over websocket get the message pushed.
func (s *Service) AddMessage(ctx context.Context, user *domain.User, ticketID int64, body string) (*domain.TicketMessage, error) {
	t, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t.UserID != user.ID && user.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if t.Status == domain.TicketClosed {
		return nil, ErrTicketClosed
	}

	msg := &domain.TicketMessage{
		TicketID: t.ID,
		UserID:   user.ID,
		Body:     strings.TrimSpace(body),
		IsStaff:  user.Role == domain.RoleAdmin,
	}
	if err := s.tickets.AddMessage(ctx, msg); err != nil {
		return nil, err
	}

	// Touch the ticket so list ordering reflects activity.
	if err := s.tickets.Update(ctx, t); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToTicket(t.ID, &WSEvent{
			Type:     EventNewMessage,
			TicketID: t.ID,
			Payload:  msg,
		})
	}

	return msg, nil
}

// CanAccess reports whether user may join the ticket's live feed.
func (s *Service) CanAccess(ctx context.Context, user *domain.User, ticketID int64) error {
	_, err := s.Get(ctx, user, ticketID)
	return err
}
