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

// ErrTemplateNotFound возвращается, когда шаблон предложения не найден.
var ErrTemplateNotFound = errors.New("proposal template not found")

// TemplateRepository отвечает за шаблоны предложений.
type TemplateRepository struct {
	db *sqlx.DB
}

// NewTemplateRepository создаёт экземпляр репозитория.
func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create сохраняет новый шаблон.
func (r *TemplateRepository) Create(ctx context.Context, template *models.ProposalTemplate) error {
	query := `
		INSERT INTO proposal_templates (name, template_items, created_by, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		template.Name,
		template.TemplateItems,
		template.CreatedBy,
		template.Type,
	).Scan(&template.ID); err != nil {
		return fmt.Errorf("template repository: create %w", err)
	}

	return nil
}

// ListForUser возвращает общие шаблоны и личные шаблоны пользователя.
func (r *TemplateRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.ProposalTemplate, error) {
	var templates []models.ProposalTemplate
	query := `
		SELECT * FROM proposal_templates
		WHERE type = $1 OR created_by = $2
		ORDER BY name
	`
	if err := r.db.SelectContext(ctx, &templates, query, models.TemplateTypeGeneral, userID); err != nil {
		return nil, fmt.Errorf("template repository: list for user %w", err)
	}

	return templates, nil
}

// GetByID возвращает шаблон по идентификатору.
func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProposalTemplate, error) {
	var template models.ProposalTemplate
	if err := r.db.GetContext(ctx, &template, `SELECT * FROM proposal_templates WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("template repository: get by id %w", err)
	}

	return &template, nil
}

// Update обновляет личный шаблон пользователя. Общие шаблоны не трогаем.
func (r *TemplateRepository) Update(ctx context.Context, template *models.ProposalTemplate) error {
	query := `
		UPDATE proposal_templates
		SET name = $1, template_items = $2
		WHERE id = $3 AND created_by = $4 AND type = $5
	`
	result, err := r.db.ExecContext(
		ctx,
		query,
		template.Name,
		template.TemplateItems,
		template.ID,
		template.CreatedBy,
		models.TemplateTypeCustomized,
	)
	if err != nil {
		return fmt.Errorf("template repository: update %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("template repository: update rows affected %w", err)
	}

	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// Delete удаляет личный шаблон пользователя.
func (r *TemplateRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM proposal_templates WHERE id = $1 AND created_by = $2 AND type = $3`
	result, err := r.db.ExecContext(ctx, query, id, userID, models.TemplateTypeCustomized)
	if err != nil {
		return fmt.Errorf("template repository: delete %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("template repository: delete rows affected %w", err)
	}

	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}
