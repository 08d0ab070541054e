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

// ErrConnectsNotFound возвращается, когда баланс коннектов не найден.
var ErrConnectsNotFound = errors.New("connects not found")

// ConnectsRepository отвечает за баланс коннектов и его историю.
type ConnectsRepository struct {
	db *sqlx.DB
}

// NewConnectsRepository создаёт экземпляр репозитория.
func NewConnectsRepository(db *sqlx.DB) *ConnectsRepository {
	return &ConnectsRepository{db: db}
}

// GetByUpworkAccount возвращает баланс коннектов привязанного аккаунта.
func (r *ConnectsRepository) GetByUpworkAccount(ctx context.Context, upworkAccountID uuid.UUID) (*models.Connects, error) {
	var connects models.Connects
	query := `SELECT * FROM connects WHERE upwork_account_id = $1`
	if err := r.db.GetContext(ctx, &connects, query, upworkAccountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConnectsNotFound
		}
		return nil, fmt.Errorf("connects repository: get by upwork account %w", err)
	}

	return &connects, nil
}

// ListHistory возвращает историю изменений баланса, свежие первыми.
func (r *ConnectsRepository) ListHistory(ctx context.Context, connectsID uuid.UUID) ([]models.ConnectsHistory, error) {
	var history []models.ConnectsHistory
	query := `SELECT * FROM connects_history WHERE connects_id = $1 ORDER BY date DESC`
	if err := r.db.SelectContext(ctx, &history, query, connectsID); err != nil {
		return nil, fmt.Errorf("connects repository: list history %w", err)
	}

	return history, nil
}

// AdjustBalance меняет баланс и дописывает запись истории одной транзакцией.
func (r *ConnectsRepository) AdjustBalance(ctx context.Context, upworkAccountID uuid.UUID, action string, change int) (*models.Connects, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("connects repository: begin tx %w", err)
	}
	defer tx.Rollback()

	var connects models.Connects
	upsertQuery := `
		INSERT INTO connects (upwork_account_id, connects)
		VALUES ($1, $2)
		ON CONFLICT (upwork_account_id)
		DO UPDATE SET connects = connects.connects + $2
		RETURNING *
	`
	if err := tx.GetContext(ctx, &connects, upsertQuery, upworkAccountID, change); err != nil {
		return nil, fmt.Errorf("connects repository: adjust balance %w", err)
	}

	historyQuery := `
		INSERT INTO connects_history (connects_id, action, connects_change)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, historyQuery, connects.ID, action, change); err != nil {
		return nil, fmt.Errorf("connects repository: insert history %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("connects repository: commit %w", err)
	}

	return &connects, nil
}
