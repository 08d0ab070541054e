package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bidbotteam/bidbot-backend/internal/models"
)

// FAQRepository отвечает за справочник вопросов-ответов.
type FAQRepository struct {
	db *sqlx.DB
}

// NewFAQRepository создаёт экземпляр репозитория.
func NewFAQRepository(db *sqlx.DB) *FAQRepository {
	return &FAQRepository{db: db}
}

// List возвращает все вопросы-ответы по категориям.
func (r *FAQRepository) List(ctx context.Context) ([]models.FAQ, error) {
	var faqs []models.FAQ
	query := `SELECT * FROM faqs ORDER BY category, created_at`
	if err := r.db.SelectContext(ctx, &faqs, query); err != nil {
		return nil, fmt.Errorf("faq repository: list %w", err)
	}

	return faqs, nil
}
