package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bidbotteam/bidbot-backend/internal/models"
	"github.com/bidbotteam/bidbot-backend/internal/pkg/apperror"
	"github.com/bidbotteam/bidbot-backend/internal/repository"
)

// mockTaskRepo реализует TaskRepo для тестов.
type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]models.Task, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, accountID, taskID uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, accountID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *mockTaskRepo) Create(ctx context.Context, task *models.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *mockTaskRepo) Update(ctx context.Context, task *models.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *mockTaskRepo) Delete(ctx context.Context, accountID, taskID uuid.UUID) error {
	args := m.Called(ctx, accountID, taskID)
	return args.Error(0)
}

// mockTaskUsers реализует TaskUserRepo для тестов.
type mockTaskUsers struct {
	mock.Mock
}

func (m *mockTaskUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type taskServiceFixture struct {
	service  *TaskService
	tasks    *mockTaskRepo
	team     *mockTaskUsers
	account  *models.Account
	assignee *models.User
	userID   uuid.UUID
}

func newTestTaskService() *taskServiceFixture {
	account := &models.Account{ID: uuid.New()}
	assignee := &models.User{ID: uuid.New(), Name: "Алексей", AccountID: &account.ID}

	tasks := new(mockTaskRepo)
	team := new(mockTaskUsers)

	users := new(mockAccountResolver)
	users.On("GetAccountByUserID", mock.Anything, mock.Anything).Return(account, nil)

	return &taskServiceFixture{
		service:  NewTaskService(tasks, users, team),
		tasks:    tasks,
		team:     team,
		account:  account,
		assignee: assignee,
		userID:   uuid.New(),
	}
}

func validTaskInput(assigneeID uuid.UUID) TaskInput {
	return TaskInput{
		JobID:       uuid.New(),
		AssignedTo:  assigneeID,
		Title:       "Подготовить макет",
		Description: "Главная страница",
		Status:      models.TaskStatusPlanning,
		Priority:    models.TaskPriorityMedium,
		DueDate:     time.Now().AddDate(0, 0, 7),
	}
}

func TestTaskService_CreateAndBoard(t *testing.T) {
	f := newTestTaskService()
	ctx := context.Background()

	f.team.On("GetByID", ctx, f.assignee.ID).Return(f.assignee, nil)
	f.tasks.On("Create", ctx, mock.AnythingOfType("*models.Task")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Task).ID = uuid.New() }).
		Return(nil)

	task, err := f.service.Create(ctx, f.userID, validTaskInput(f.assignee.ID))

	require.NoError(t, err)
	require.NotNil(t, task.Assignee, "задача должна нести карточку исполнителя")
	assert.Equal(t, "Алексей", task.Assignee.Name)

	f.tasks.On("ListByAccountID", ctx, f.account.ID).Return([]models.Task{*task}, nil)

	board, err := f.service.Board(ctx, f.userID)

	require.NoError(t, err)

	// Доска всегда отдаёт все колонки в фиксированном порядке.
	require.Len(t, board, len(models.TaskStatusOrder))
	for i, status := range models.TaskStatusOrder {
		assert.Equal(t, status, board[i].ID)
	}

	assert.Len(t, board[0].Tasks, 1, "задача должна попасть в колонку planning")
	require.NotNil(t, board[1].Tasks, "пустые колонки должны отдаваться пустым списком")
	assert.Empty(t, board[1].Tasks)
}

func TestTaskService_CreateRejectsInvalidInput(t *testing.T) {
	f := newTestTaskService()
	ctx := context.Background()

	input := validTaskInput(f.assignee.ID)
	input.Status = "done"
	_, err := f.service.Create(ctx, f.userID, input)
	assert.True(t, apperror.IsValidation(err), "недопустимая колонка должна отклоняться, получено %v", err)

	input = validTaskInput(f.assignee.ID)
	input.Priority = "urgent"
	_, err = f.service.Create(ctx, f.userID, input)
	assert.True(t, apperror.IsValidation(err), "недопустимый приоритет должен отклоняться, получено %v", err)

	f.tasks.AssertNumberOfCalls(t, "Create", 0)
}

func TestTaskService_CreateRejectsForeignAssignee(t *testing.T) {
	f := newTestTaskService()
	ctx := context.Background()

	// Исполнитель из другого аккаунта.
	otherAccountID := uuid.New()
	f.assignee.AccountID = &otherAccountID
	f.team.On("GetByID", ctx, f.assignee.ID).Return(f.assignee, nil)

	_, err := f.service.Create(ctx, f.userID, validTaskInput(f.assignee.ID))

	assert.True(t, apperror.IsForbidden(err), "чужой исполнитель должен отклоняться, получено %v", err)
	f.tasks.AssertNumberOfCalls(t, "Create", 0)
}

func TestTaskService_Move(t *testing.T) {
	f := newTestTaskService()
	ctx := context.Background()

	task := &models.Task{ID: uuid.New(), AccountID: f.account.ID, Status: models.TaskStatusPlanning}
	f.tasks.On("GetByID", ctx, f.account.ID, task.ID).Return(task, nil)
	f.tasks.On("Update", ctx, mock.AnythingOfType("*models.Task")).Return(nil)

	moved, err := f.service.Move(ctx, f.userID, task.ID, models.TaskStatusDevelopment)

	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDevelopment, moved.Status)

	_, err = f.service.Move(ctx, f.userID, task.ID, "archive")
	assert.True(t, apperror.IsValidation(err), "недопустимая колонка должна отклоняться, получено %v", err)

	missing := uuid.New()
	f.tasks.On("GetByID", ctx, f.account.ID, missing).Return(nil, repository.ErrTaskNotFound)

	_, err = f.service.Move(ctx, f.userID, missing, models.TaskStatusTesting)
	assert.True(t, apperror.IsNotFound(err), "перенос чужой задачи должен отдавать not found, получено %v", err)
}

func TestTaskService_Delete(t *testing.T) {
	f := newTestTaskService()
	ctx := context.Background()

	taskID := uuid.New()
	f.tasks.On("Delete", ctx, f.account.ID, taskID).Return(nil).Once()
	f.tasks.On("Delete", ctx, f.account.ID, taskID).Return(repository.ErrTaskNotFound)

	require.NoError(t, f.service.Delete(ctx, f.userID, taskID))

	// Повторное удаление уже удалённой задачи.
	err := f.service.Delete(ctx, f.userID, taskID)
	assert.True(t, apperror.IsNotFound(err), "повторное удаление должно отдавать not found, получено %v", err)
}
