package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bidbotteam/bidbot-backend/internal/models"
)

// ErrTicketNotFound возвращается, когда обращение в поддержку не найдено.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketRepository отвечает за обращения в поддержку и переписку по ним.
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository создаёт экземпляр репозитория.
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create регистрирует новое обращение.
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (account_id, subject, description, priority, status, type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		ticket.AccountID,
		ticket.Subject,
		ticket.Description,
		ticket.Priority,
		ticket.Status,
		ticket.Type,
	).Scan(&ticket.ID, &ticket.CreatedAt); err != nil {
		return fmt.Errorf("ticket repository: create %w", err)
	}

	return nil
}

// ListByAccountID возвращает обращения аккаунта вместе с перепиской.
func (r *TicketRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]models.Ticket, error) {
	var tickets []models.Ticket
	query := `SELECT * FROM tickets WHERE account_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &tickets, query, accountID); err != nil {
		return nil, fmt.Errorf("ticket repository: list by account %w", err)
	}

	for i := range tickets {
		responses, err := r.listResponses(ctx, tickets[i].ID)
		if err != nil {
			return nil, err
		}
		tickets[i].Responses = responses
	}

	return tickets, nil
}

// GetByID возвращает обращение аккаунта с перепиской.
func (r *TicketRepository) GetByID(ctx context.Context, accountID, ticketID uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	query := `SELECT * FROM tickets WHERE id = $1 AND account_id = $2`
	if err := r.db.GetContext(ctx, &ticket, query, ticketID, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("ticket repository: get by id %w", err)
	}

	responses, err := r.listResponses(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	ticket.Responses = responses

	return &ticket, nil
}

// UpdateStatus меняет статус обращения.
func (r *TicketRepository) UpdateStatus(ctx context.Context, accountID, ticketID uuid.UUID, status string) error {
	query := `UPDATE tickets SET status = $3 WHERE id = $1 AND account_id = $2`
	result, err := r.db.ExecContext(ctx, query, ticketID, accountID, status)
	if err != nil {
		return fmt.Errorf("ticket repository: update status %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ticket repository: update status rows affected %w", err)
	}

	if rowsAffected == 0 {
		return ErrTicketNotFound
	}

	return nil
}

// AddResponse добавляет сообщение в переписку по обращению.
func (r *TicketRepository) AddResponse(ctx context.Context, response *models.TicketResponse) error {
	query := `
		INSERT INTO ticket_responses (ticket_id, message, is_admin)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		response.TicketID,
		response.Message,
		response.IsAdmin,
	).Scan(&response.ID, &response.CreatedAt); err != nil {
		return fmt.Errorf("ticket repository: add response %w", err)
	}

	return nil
}

func (r *TicketRepository) listResponses(ctx context.Context, ticketID uuid.UUID) ([]models.TicketResponse, error) {
	var responses []models.TicketResponse
	query := `SELECT * FROM ticket_responses WHERE ticket_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &responses, query, ticketID); err != nil {
		return nil, fmt.Errorf("ticket repository: list responses %w", err)
	}

	return responses, nil
}
