package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bidbotteam/bidbot-backend/internal/models"
)

// ErrJobNotFound возвращается, когда работа не найдена.
var ErrJobNotFound = errors.New("job not found")

// JobRepository отвечает за работу с объявлениями о работе.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository создаёт экземпляр репозитория.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create создаёт новое объявление.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (
			upwork_id, title, description, country, budget, min_hourly_price, max_hourly_price,
			items, payment_status, posted_on, proposals, rating, spendings, type, url, job_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at
	`

	if job.JobStatus == "" {
		job.JobStatus = models.JobStatusOpened
	}

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		job.UpworkID,
		job.Title,
		job.Description,
		job.Country,
		job.Budget,
		job.MinHourlyPrice,
		job.MaxHourlyPrice,
		job.Items,
		job.PaymentStatus,
		job.PostedOn,
		job.Proposals,
		job.Rating,
		job.Spendings,
		job.Type,
		job.URL,
		job.JobStatus,
	).Scan(&job.ID, &job.CreatedAt); err != nil {
		return fmt.Errorf("job repository: create %w", err)
	}

	return nil
}

// GetByID возвращает работу по внутреннему идентификатору.
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.GetContext(ctx, &job, `SELECT * FROM jobs WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("job repository: get by id %w", err)
	}

	return &job, nil
}

// GetByUpworkID возвращает работу по внешнему идентификатору биржи.
// Используется для дедупликации при приёме пачки работ.
func (r *JobRepository) GetByUpworkID(ctx context.Context, upworkID string) (*models.Job, error) {
	var job models.Job
	if err := r.db.GetContext(ctx, &job, `SELECT * FROM jobs WHERE upwork_id = $1`, upworkID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("job repository: get by upwork id %w", err)
	}

	return &job, nil
}

// CloseOlderThan закрывает открытые работы, созданные раньше отсечки.
func (r *JobRepository) CloseOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE jobs SET job_status = $1 WHERE job_status = $2 AND created_at < $3`,
		models.JobStatusClosed,
		models.JobStatusOpened,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("job repository: close older than %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("job repository: close older than rows affected %w", err)
	}

	return rowsAffected, nil
}
