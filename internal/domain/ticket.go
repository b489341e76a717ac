package domain

import "time"

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketClosed     TicketStatus = "closed"
)

func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketClosed:
		return true
	}
	return false
}

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityNormal TicketPriority = "normal"
	PriorityHigh   TicketPriority = "high"
)

type Ticket struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	UserID    int64          `json:"user_id" gorm:"index;not null"`
	Subject   string         `json:"subject" gorm:"not null"`
	Status    TicketStatus   `json:"status" gorm:"type:varchar(16);not null;default:'open'"`
	Priority  TicketPriority `json:"priority" gorm:"type:varchar(16);not null;default:'normal'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Messages []TicketMessage `json:"messages,omitempty" gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}

func (Ticket) TableName() string { return "tickets" }

// TicketMessage rows are append-only and ordered by CreatedAt.
type TicketMessage struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TicketID  int64     `json:"ticket_id" gorm:"index;not null"`
	UserID    int64     `json:"user_id" gorm:"not null"`
	Body      string    `json:"body" gorm:"not null"`
	IsStaff   bool      `json:"is_staff" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (TicketMessage) TableName() string { return "ticket_messages" }
