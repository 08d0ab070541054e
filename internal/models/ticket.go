package models

import (
	"time"

	"github.com/google/uuid"
)

// Ticket — обращение в поддержку от аккаунта.
type Ticket struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AccountID   uuid.UUID `db:"account_id" json:"account_id"`
	Subject     string    `db:"subject" json:"subject"`
	Description string    `db:"description" json:"description"`
	Priority    string    `db:"priority" json:"priority"`
	Status      string    `db:"status" json:"status"`
	Type        string    `db:"type" json:"type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	Responses []TicketResponse `db:"-" json:"responses,omitempty"`
}

// TicketResponse — сообщение в переписке по тикету.
type TicketResponse struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TicketID  uuid.UUID `db:"ticket_id" json:"ticket_id"`
	Message   string    `db:"message" json:"message"`
	IsAdmin   bool      `db:"is_admin" json:"isAdmin"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FAQ — вопрос-ответ для страницы поддержки.
type FAQ struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Question  string    `db:"question" json:"question"`
	Category  string    `db:"category" json:"category"`
	Answer    string    `db:"answer" json:"answer"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
