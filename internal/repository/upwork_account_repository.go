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

// ErrUpworkAccountNotFound возвращается, когда привязанный аккаунт не найден.
var ErrUpworkAccountNotFound = errors.New("upwork account not found")

// UpworkAccountRepository отвечает за привязанные аккаунты биржи и их настройки.
type UpworkAccountRepository struct {
	db *sqlx.DB
}

// NewUpworkAccountRepository создаёт экземпляр репозитория.
func NewUpworkAccountRepository(db *sqlx.DB) *UpworkAccountRepository {
	return &UpworkAccountRepository{db: db}
}

// GetByID возвращает привязанный аккаунт со всеми настройками.
func (r *UpworkAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UpworkAccount, error) {
	var account models.UpworkAccount
	if err := r.db.GetContext(ctx, &account, `SELECT * FROM upwork_accounts WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUpworkAccountNotFound
		}
		return nil, fmt.Errorf("upwork account repository: get by id %w", err)
	}

	return &account, nil
}

// ListByAccountID возвращает все привязанные аккаунты пользовательского аккаунта.
func (r *UpworkAccountRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]models.UpworkAccount, error) {
	var accounts []models.UpworkAccount
	query := `SELECT * FROM upwork_accounts WHERE account_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &accounts, query, accountID); err != nil {
		return nil, fmt.Errorf("upwork account repository: list by account %w", err)
	}

	return accounts, nil
}

// BelongsToAccount проверяет, что привязанный аккаунт принадлежит аккаунту пользователя.
func (r *UpworkAccountRepository) BelongsToAccount(ctx context.Context, id, accountID uuid.UUID) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM upwork_accounts WHERE id = $1 AND account_id = $2`
	if err := r.db.GetContext(ctx, &count, query, id, accountID); err != nil {
		return false, fmt.Errorf("upwork account repository: belongs to account %w", err)
	}

	return count > 0, nil
}

// UpdateConfiguration сохраняет настройки фильтров и оценки одним апдейтом.
func (r *UpworkAccountRepository) UpdateConfiguration(ctx context.Context, id uuid.UUID, cfg models.Configuration) error {
	query := `
		UPDATE upwork_accounts SET
			minimum_fixed_price = $2,
			minimum_hourly_price = $3,
			filter_job_type = $4,
			max_proposals_submitted = $5,
			excluded_countries = $6,
			minimum_client_rating = $7,
			client_minimum_spent_usd = $8,
			only_payment_verified = $9,
			cost_estimation_strategy = $10,
			time_estimation_strategy = $11,
			custom_cost_percentage = $12,
			custom_time_percent = $13,
			use_previous_data = $14
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		id,
		cfg.Job.MinimumFixedPrice,
		cfg.Job.MinimumHourlyPrice,
		cfg.Job.JobType,
		cfg.Job.MaxProposalsSubmitted,
		cfg.Job.ExcludedCountries,
		cfg.Job.MinimumClientRating,
		cfg.Job.ClientMinimumSpentUSD,
		cfg.Job.OnlyPaymentVerified,
		cfg.CostAndTime.CostEstimationStrategy,
		cfg.CostAndTime.TimeEstimationStrategy,
		cfg.CostAndTime.CustomCostPercentage,
		cfg.CostAndTime.CustomTimePercent,
		cfg.CostAndTime.UsePreviousData,
	)
	if err != nil {
		return fmt.Errorf("upwork account repository: update configuration %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("upwork account repository: update configuration rows affected %w", err)
	}

	if rowsAffected == 0 {
		return ErrUpworkAccountNotFound
	}

	return nil
}
