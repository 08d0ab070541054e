package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/bidbotteam/bidbot-backend/internal/models"
	"github.com/bidbotteam/bidbot-backend/internal/pkg/apperror"
	"github.com/bidbotteam/bidbot-backend/internal/repository"
)

// TaskRepo описывает взаимодействие сервиса с хранилищем задач.
type TaskRepo interface {
	ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]models.Task, error)
	GetByID(ctx context.Context, accountID, taskID uuid.UUID) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, accountID, taskID uuid.UUID) error
}

// TaskUserRepo описывает доступ к пользователям для проверки исполнителя.
type TaskUserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// BoardColumn — колонка канбан-доски с задачами.
type BoardColumn struct {
	ID    string        `json:"id"`
	Tasks []models.Task `json:"tasks"`
}

// TaskInput — данные задачи от клиента.
type TaskInput struct {
	JobID       uuid.UUID `json:"job" binding:"required"`
	AssignedTo  uuid.UUID `json:"assignee" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Status      string    `json:"columnId" binding:"required"`
	Priority    string    `json:"priority" binding:"required"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
}

// TaskService обслуживает канбан-доску аккаунта.
type TaskService struct {
	tasks TaskRepo
	users AccountResolver
	team  TaskUserRepo
}

// NewTaskService создаёт сервис задач.
func NewTaskService(tasks TaskRepo, users AccountResolver, team TaskUserRepo) *TaskService {
	return &TaskService{
		tasks: tasks,
		users: users,
		team:  team,
	}
}

// Board возвращает доску аккаунта: все колонки в фиксированном порядке,
// пустые включительно.
func (s *TaskService) Board(ctx context.Context, userID uuid.UUID) ([]BoardColumn, error) {
	account, err := s.resolveAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("task service: список задач %w", err)
	}

	byStatus := lo.GroupBy(tasks, func(t models.Task) string {
		return t.Status
	})

	columns := make([]BoardColumn, 0, len(models.TaskStatusOrder))
	for _, status := range models.TaskStatusOrder {
		column := BoardColumn{ID: status, Tasks: byStatus[status]}
		if column.Tasks == nil {
			column.Tasks = []models.Task{}
		}
		columns = append(columns, column)
	}

	return columns, nil
}

// Create добавляет задачу на доску аккаунта.
func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, input TaskInput) (*models.Task, error) {
	account, err := s.resolveAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := validateTaskInput(input); err != nil {
		return nil, err
	}

	assignee, err := s.team.GetByID(ctx, input.AssignedTo)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.New(apperror.ErrCodeValidation, "исполнитель не найден")
		}
		return nil, fmt.Errorf("task service: проверка исполнителя %w", err)
	}

	// Исполнитель должен состоять в том же аккаунте.
	if assignee.AccountID == nil || *assignee.AccountID != account.ID {
		return nil, apperror.ErrForbidden
	}

	task := models.Task{
		AccountID:   account.ID,
		JobID:       input.JobID,
		AssignedTo:  input.AssignedTo,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, fmt.Errorf("task service: создание задачи %w", err)
	}

	task.Assignee = &models.TaskAssignee{ID: assignee.ID, Name: assignee.Name}

	return &task, nil
}

// Update сохраняет изменения задачи, включая перенос между колонками.
func (s *TaskService) Update(ctx context.Context, userID, taskID uuid.UUID, input TaskInput) (*models.Task, error) {
	account, err := s.resolveAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := validateTaskInput(input); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, account.ID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperror.ErrTaskNotFound
		}
		return nil, fmt.Errorf("task service: получение задачи %w", err)
	}

	task.AssignedTo = input.AssignedTo
	task.Title = input.Title
	task.Description = input.Description
	task.Status = input.Status
	task.Priority = input.Priority
	task.DueDate = input.DueDate

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperror.ErrTaskNotFound
		}
		return nil, fmt.Errorf("task service: сохранение задачи %w", err)
	}

	return task, nil
}

// Move переносит задачу в другую колонку доски.
func (s *TaskService) Move(ctx context.Context, userID, taskID uuid.UUID, status string) (*models.Task, error) {
	if _, ok := models.ValidTaskStatuses[status]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "недопустимая колонка доски")
	}

	account, err := s.resolveAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, account.ID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperror.ErrTaskNotFound
		}
		return nil, fmt.Errorf("task service: получение задачи %w", err)
	}

	task.Status = status

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("task service: перенос задачи %w", err)
	}

	return task, nil
}

// Delete удаляет задачу с доски.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	account, err := s.resolveAccount(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, account.ID, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return apperror.ErrTaskNotFound
		}
		return fmt.Errorf("task service: удаление задачи %w", err)
	}

	return nil
}

func (s *TaskService) resolveAccount(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	account, err := s.users.GetAccountByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, fmt.Errorf("task service: получение аккаунта пользователя %w", err)
	}

	return account, nil
}

func validateTaskInput(input TaskInput) error {
	if _, ok := models.ValidTaskStatuses[input.Status]; !ok {
		return apperror.New(apperror.ErrCodeValidation, "недопустимая колонка доски")
	}
	if _, ok := models.ValidTaskPriorities[input.Priority]; !ok {
		return apperror.New(apperror.ErrCodeValidation, "недопустимый приоритет задачи")
	}

	return nil
}
