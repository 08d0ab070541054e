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

// ErrTaskNotFound возвращается, когда задача не найдена.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository отвечает за задачи канбан-доски.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository создаёт экземпляр репозитория.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

type taskRow struct {
	models.Task
	AssigneeID   uuid.UUID `db:"assignee_id"`
	AssigneeName string    `db:"assignee_name"`
}

// ListByAccountID возвращает задачи аккаунта вместе с карточками исполнителей.
func (r *TaskRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]models.Task, error) {
	var rows []taskRow
	query := `
		SELECT t.*, u.id AS assignee_id, u.name AS assignee_name
		FROM tasks t
		JOIN users u ON u.id = t.assigned_to
		WHERE t.account_id = $1
		ORDER BY t.created_at
	`
	if err := r.db.SelectContext(ctx, &rows, query, accountID); err != nil {
		return nil, fmt.Errorf("task repository: list by account %w", err)
	}

	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		task := row.Task
		task.Assignee = &models.TaskAssignee{ID: row.AssigneeID, Name: row.AssigneeName}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// GetByID возвращает задачу аккаунта по идентификатору.
func (r *TaskRepository) GetByID(ctx context.Context, accountID, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	query := `SELECT * FROM tasks WHERE id = $1 AND account_id = $2`
	if err := r.db.GetContext(ctx, &task, query, taskID, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("task repository: get by id %w", err)
	}

	return &task, nil
}

// Create создаёт задачу на доске.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (account_id, job_id, assigned_to, title, description, status, priority, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		task.AccountID,
		task.JobID,
		task.AssignedTo,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return fmt.Errorf("task repository: create %w", err)
	}

	return nil
}

// Update сохраняет изменённые поля задачи.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			assigned_to = $3,
			title = $4,
			description = $5,
			status = $6,
			priority = $7,
			due_date = $8,
			updated_at = NOW()
		WHERE id = $1 AND account_id = $2
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.AccountID,
		task.AssignedTo,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
	)
	if err != nil {
		return fmt.Errorf("task repository: update %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("task repository: update rows affected %w", err)
	}

	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// Delete удаляет задачу аккаунта.
func (r *TaskRepository) Delete(ctx context.Context, accountID, taskID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND account_id = $2`, taskID, accountID)
	if err != nil {
		return fmt.Errorf("task repository: delete %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("task repository: delete rows affected %w", err)
	}

	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}
