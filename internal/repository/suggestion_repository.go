package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bidbotteam/bidbot-backend/internal/models"
)

// ErrSuggestedJobNotFound возвращается, когда работа не найдена среди предложенных.
var ErrSuggestedJobNotFound = errors.New("suggested job not found")

// SuggestionRepository отвечает за предложенные и поданные работы аккаунтов.
type SuggestionRepository struct {
	db *sqlx.DB
}

// NewSuggestionRepository создаёт экземпляр репозитория.
func NewSuggestionRepository(db *sqlx.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// AppendSuggestion добавляет предложенную работу вместе с уведомлением.
// Обе записи коммитятся одной транзакцией: предложение без уведомления
// (или наоборот) снаружи наблюдаться не должно.
func (r *SuggestionRepository) AppendSuggestion(ctx context.Context, suggestion *models.SuggestedJob, notification *models.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("suggestion repository: begin tx %w", err)
	}
	defer tx.Rollback()

	suggestionQuery := `
		INSERT INTO suggested_jobs (
			upwork_account_id, job_id, proposal_generated, proposal_status,
			job_application_status, bid_price, hourly_price, job_type, job_duration
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	if err := tx.QueryRowxContext(
		ctx,
		suggestionQuery,
		suggestion.UpworkAccountID,
		suggestion.JobID,
		suggestion.ProposalGenerated,
		suggestion.ProposalStatus,
		suggestion.JobApplicationStatus,
		suggestion.BidPrice,
		suggestion.HourlyPrice,
		suggestion.JobType,
		suggestion.JobDuration,
	).Scan(&suggestion.ID, &suggestion.CreatedAt); err != nil {
		return fmt.Errorf("suggestion repository: insert suggestion %w", err)
	}

	notificationQuery := `
		INSERT INTO notifications (upwork_account_id, title, icon, image_url, redirect_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, posted_on, is_read
	`

	if err := tx.QueryRowxContext(
		ctx,
		notificationQuery,
		notification.UpworkAccountID,
		notification.Title,
		notification.Icon,
		notification.ImageURL,
		notification.RedirectURL,
	).Scan(&notification.ID, &notification.PostedOn, &notification.IsRead); err != nil {
		return fmt.Errorf("suggestion repository: insert notification %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("suggestion repository: commit %w", err)
	}

	return nil
}

// ListSuggested возвращает предложенные работы для набора привязанных аккаунтов.
func (r *SuggestionRepository) ListSuggested(ctx context.Context, upworkAccountIDs []uuid.UUID) ([]models.SuggestedJob, error) {
	var suggestions []models.SuggestedJob
	query := `
		SELECT * FROM suggested_jobs
		WHERE upwork_account_id = ANY($1)
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &suggestions, query, pq.Array(upworkAccountIDs)); err != nil {
		return nil, fmt.Errorf("suggestion repository: list suggested %w", err)
	}

	if err := r.attachJobsToSuggested(ctx, suggestions); err != nil {
		return nil, err
	}

	return suggestions, nil
}

// ListApplied возвращает поданные работы для набора привязанных аккаунтов.
func (r *SuggestionRepository) ListApplied(ctx context.Context, upworkAccountIDs []uuid.UUID) ([]models.AppliedJob, error) {
	var applied []models.AppliedJob
	query := `
		SELECT * FROM applied_jobs
		WHERE upwork_account_id = ANY($1)
		ORDER BY applied_on DESC
	`
	if err := r.db.SelectContext(ctx, &applied, query, pq.Array(upworkAccountIDs)); err != nil {
		return nil, fmt.Errorf("suggestion repository: list applied %w", err)
	}

	jobIDs := make([]uuid.UUID, 0, len(applied))
	for _, a := range applied {
		jobIDs = append(jobIDs, a.JobID)
	}

	jobs, err := r.jobsByIDs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}

	for i := range applied {
		if job, ok := jobs[applied[i].JobID]; ok {
			applied[i].Job = job
		}
	}

	return applied, nil
}

// GetSuggestedByJob ищет предложение по работе среди привязанных аккаунтов.
func (r *SuggestionRepository) GetSuggestedByJob(ctx context.Context, upworkAccountIDs []uuid.UUID, jobID uuid.UUID) (*models.SuggestedJob, error) {
	var suggestion models.SuggestedJob
	query := `
		SELECT * FROM suggested_jobs
		WHERE upwork_account_id = ANY($1) AND job_id = $2
	`
	if err := r.db.GetContext(ctx, &suggestion, query, pq.Array(upworkAccountIDs), jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSuggestedJobNotFound
		}
		return nil, fmt.Errorf("suggestion repository: get suggested by job %w", err)
	}

	return &suggestion, nil
}

// GetAppliedByJob ищет заявку по работе среди привязанных аккаунтов.
func (r *SuggestionRepository) GetAppliedByJob(ctx context.Context, upworkAccountIDs []uuid.UUID, jobID uuid.UUID) (*models.AppliedJob, error) {
	var applied models.AppliedJob
	query := `
		SELECT * FROM applied_jobs
		WHERE upwork_account_id = ANY($1) AND job_id = $2
	`
	if err := r.db.GetContext(ctx, &applied, query, pq.Array(upworkAccountIDs), jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("suggestion repository: get applied by job %w", err)
	}

	return &applied, nil
}

// ApplySuggested переносит предложение в поданные заявки одной транзакцией.
func (r *SuggestionRepository) ApplySuggested(ctx context.Context, suggestionID uuid.UUID, applied *models.AppliedJob) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("suggestion repository: begin tx %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM suggested_jobs WHERE id = $1`, suggestionID)
	if err != nil {
		return fmt.Errorf("suggestion repository: delete suggested %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("suggestion repository: delete suggested rows affected %w", err)
	}
	if rowsAffected == 0 {
		return ErrSuggestedJobNotFound
	}

	appliedQuery := `
		INSERT INTO applied_jobs (
			upwork_account_id, job_id, proposal_generated, job_application_status,
			bid_price, hourly_price, job_type, job_duration, job_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, applied_on
	`

	if err := tx.QueryRowxContext(
		ctx,
		appliedQuery,
		applied.UpworkAccountID,
		applied.JobID,
		applied.ProposalGenerated,
		applied.JobApplicationStatus,
		applied.BidPrice,
		applied.HourlyPrice,
		applied.JobType,
		applied.JobDuration,
		applied.JobStatus,
	).Scan(&applied.ID, &applied.AppliedOn); err != nil {
		return fmt.Errorf("suggestion repository: insert applied %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("suggestion repository: commit %w", err)
	}

	return nil
}

// RemoveSuggested удаляет предложение по работе (игнорирование).
func (r *SuggestionRepository) RemoveSuggested(ctx context.Context, upworkAccountIDs []uuid.UUID, jobID uuid.UUID) error {
	query := `DELETE FROM suggested_jobs WHERE upwork_account_id = ANY($1) AND job_id = $2`
	result, err := r.db.ExecContext(ctx, query, pq.Array(upworkAccountIDs), jobID)
	if err != nil {
		return fmt.Errorf("suggestion repository: remove suggested %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("suggestion repository: remove suggested rows affected %w", err)
	}

	if rowsAffected == 0 {
		return ErrSuggestedJobNotFound
	}

	return nil
}

// MarkSpam удаляет предложение и запоминает работу как спам для аккаунта.
func (r *SuggestionRepository) MarkSpam(ctx context.Context, upworkAccountIDs []uuid.UUID, jobID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("suggestion repository: begin tx %w", err)
	}
	defer tx.Rollback()

	var accountID uuid.UUID
	query := `
		DELETE FROM suggested_jobs
		WHERE upwork_account_id = ANY($1) AND job_id = $2
		RETURNING upwork_account_id
	`
	if err := tx.GetContext(ctx, &accountID, query, pq.Array(upworkAccountIDs), jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSuggestedJobNotFound
		}
		return fmt.Errorf("suggestion repository: mark spam delete %w", err)
	}

	spamQuery := `
		INSERT INTO spam_jobs (upwork_account_id, job_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, spamQuery, accountID, jobID); err != nil {
		return fmt.Errorf("suggestion repository: mark spam insert %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("suggestion repository: commit %w", err)
	}

	return nil
}

// IsSpam проверяет, помечена ли работа спамом для привязанного аккаунта.
func (r *SuggestionRepository) IsSpam(ctx context.Context, upworkAccountID, jobID uuid.UUID) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM spam_jobs WHERE upwork_account_id = $1 AND job_id = $2`
	if err := r.db.GetContext(ctx, &count, query, upworkAccountID, jobID); err != nil {
		return false, fmt.Errorf("suggestion repository: is spam %w", err)
	}

	return count > 0, nil
}

// attachJobsToSuggested подгружает объявления для списка предложений.
func (r *SuggestionRepository) attachJobsToSuggested(ctx context.Context, suggestions []models.SuggestedJob) error {
	jobIDs := make([]uuid.UUID, 0, len(suggestions))
	for _, s := range suggestions {
		jobIDs = append(jobIDs, s.JobID)
	}

	jobs, err := r.jobsByIDs(ctx, jobIDs)
	if err != nil {
		return err
	}

	for i := range suggestions {
		if job, ok := jobs[suggestions[i].JobID]; ok {
			suggestions[i].Job = job
		}
	}

	return nil
}

// jobsByIDs возвращает объявления по списку идентификаторов.
func (r *SuggestionRepository) jobsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Job, error) {
	result := make(map[uuid.UUID]*models.Job, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, `SELECT * FROM jobs WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("suggestion repository: jobs by ids %w", err)
	}

	for i := range jobs {
		result[jobs[i].ID] = &jobs[i]
	}

	return result, nil
}
