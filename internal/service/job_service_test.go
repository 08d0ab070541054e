package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bidbotteam/bidbot-backend/internal/models"
	"github.com/bidbotteam/bidbot-backend/internal/pkg/apperror"
	"github.com/bidbotteam/bidbot-backend/internal/repository"
)

// mockJobStore реализует JobStore для тестов.
type mockJobStore struct {
	mock.Mock
}

func (m *mockJobStore) Create(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *mockJobStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *mockJobStore) GetByUpworkID(ctx context.Context, upworkID string) (*models.Job, error) {
	args := m.Called(ctx, upworkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

// mockSuggestionRepo реализует SuggestionRepo для тестов.
type mockSuggestionRepo struct {
	mock.Mock
}

func (m *mockSuggestionRepo) ListSuggested(ctx context.Context, upworkAccountIDs []uuid.UUID) ([]models.SuggestedJob, error) {
	args := m.Called(ctx, upworkAccountIDs)
	return args.Get(0).([]models.SuggestedJob), args.Error(1)
}

func (m *mockSuggestionRepo) ListApplied(ctx context.Context, upworkAccountIDs []uuid.UUID) ([]models.AppliedJob, error) {
	args := m.Called(ctx, upworkAccountIDs)
	return args.Get(0).([]models.AppliedJob), args.Error(1)
}

func (m *mockSuggestionRepo) GetSuggestedByJob(ctx context.Context, upworkAccountIDs []uuid.UUID, jobID uuid.UUID) (*models.SuggestedJob, error) {
	args := m.Called(ctx, upworkAccountIDs, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SuggestedJob), args.Error(1)
}

func (m *mockSuggestionRepo) GetAppliedByJob(ctx context.Context, upworkAccountIDs []uuid.UUID, jobID uuid.UUID) (*models.AppliedJob, error) {
	args := m.Called(ctx, upworkAccountIDs, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppliedJob), args.Error(1)
}

func (m *mockSuggestionRepo) ApplySuggested(ctx context.Context, suggestionID uuid.UUID, applied *models.AppliedJob) error {
	args := m.Called(ctx, suggestionID, applied)
	return args.Error(0)
}

func (m *mockSuggestionRepo) RemoveSuggested(ctx context.Context, upworkAccountIDs []uuid.UUID, jobID uuid.UUID) error {
	args := m.Called(ctx, upworkAccountIDs, jobID)
	return args.Error(0)
}

func (m *mockSuggestionRepo) MarkSpam(ctx context.Context, upworkAccountIDs []uuid.UUID, jobID uuid.UUID) error {
	args := m.Called(ctx, upworkAccountIDs, jobID)
	return args.Error(0)
}

// mockAccountResolver реализует AccountResolver для тестов.
type mockAccountResolver struct {
	mock.Mock
}

func (m *mockAccountResolver) GetAccountByUserID(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

// mockUpworkAccounts реализует UpworkAccountProvider для тестов.
type mockUpworkAccounts struct {
	mock.Mock
}

func (m *mockUpworkAccounts) GetByID(ctx context.Context, id uuid.UUID) (*models.UpworkAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UpworkAccount), args.Error(1)
}

func (m *mockUpworkAccounts) ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]models.UpworkAccount, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]models.UpworkAccount), args.Error(1)
}

type jobServiceFixture struct {
	service         *JobService
	jobs            *mockJobStore
	suggestions     *mockSuggestionRepo
	accounts        *mockUpworkAccounts
	userID          uuid.UUID
	upworkAccountID uuid.UUID
}

func newTestJobService() *jobServiceFixture {
	account := &models.Account{ID: uuid.New()}
	upworkAccount := models.UpworkAccount{ID: uuid.New(), AccountID: account.ID}

	jobs := new(mockJobStore)
	suggestions := new(mockSuggestionRepo)

	users := new(mockAccountResolver)
	users.On("GetAccountByUserID", mock.Anything, mock.Anything).Return(account, nil)

	accounts := new(mockUpworkAccounts)
	accounts.On("GetByID", mock.Anything, upworkAccount.ID).Return(&upworkAccount, nil)
	accounts.On("ListByAccountID", mock.Anything, account.ID).Return([]models.UpworkAccount{upworkAccount}, nil)

	return &jobServiceFixture{
		service:         NewJobService(jobs, suggestions, users, accounts),
		jobs:            jobs,
		suggestions:     suggestions,
		accounts:        accounts,
		userID:          uuid.New(),
		upworkAccountID: upworkAccount.ID,
	}
}

func (f *jobServiceFixture) accountIDs() []uuid.UUID {
	return []uuid.UUID{f.upworkAccountID}
}

func jobInput(url string) JobInput {
	return JobInput{
		Title:         "Build a web app",
		Description:   "Need a full-stack developer",
		Country:       "US",
		Budget:        floatPtr(500),
		PaymentStatus: "Payment verified",
		Type:          models.JobTypeFixed,
		URL:           url,
	}
}

func TestExtractUpworkID(t *testing.T) {
	id, err := ExtractUpworkID("https://www.upwork.com/jobs/Build-app_~021890123456789/?referrer_url_path=find_work_home")

	require.NoError(t, err)
	assert.Equal(t, "021890123456789", id)

	_, err = ExtractUpworkID("https://www.upwork.com/jobs/no-id-here")
	assert.Error(t, err, "битая ссылка должна возвращать ошибку")
}

func TestIngestJobs_CreatesNewJobs(t *testing.T) {
	f := newTestJobService()
	ctx := context.Background()

	f.jobs.On("GetByUpworkID", ctx, "01aaa").Return(nil, repository.ErrJobNotFound)
	f.jobs.On("GetByUpworkID", ctx, "01bbb").Return(nil, repository.ErrJobNotFound)
	f.jobs.On("Create", ctx, mock.AnythingOfType("*models.Job")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Job).ID = uuid.New() }).
		Return(nil)

	inputs := []JobInput{
		jobInput("https://www.upwork.com/jobs/~01aaa/?ref=1"),
		jobInput("https://www.upwork.com/jobs/~01bbb/?ref=1"),
	}

	ids, err := f.service.IngestJobs(ctx, f.upworkAccountID, inputs)

	require.NoError(t, err)
	assert.Len(t, ids, 2)
	f.jobs.AssertNumberOfCalls(t, "Create", 2)
}

func TestIngestJobs_MalformedURLRejectsWholeBatch(t *testing.T) {
	f := newTestJobService()
	ctx := context.Background()

	inputs := []JobInput{
		jobInput("https://www.upwork.com/jobs/~01aaa/?ref=1"),
		jobInput("https://www.upwork.com/jobs/broken-url"),
	}

	_, err := f.service.IngestJobs(ctx, f.upworkAccountID, inputs)

	assert.Error(t, err, "пачка с битой ссылкой должна отклоняться целиком")

	// Валидация идёт до вставок: даже корректные объявления не сохраняются.
	f.jobs.AssertNumberOfCalls(t, "Create", 0)
	f.jobs.AssertNumberOfCalls(t, "GetByUpworkID", 0)
}

func TestIngestJobs_DeduplicatesByUpworkID(t *testing.T) {
	f := newTestJobService()
	ctx := context.Background()

	// Первое объявление уже в базе, второе новое.
	f.jobs.On("GetByUpworkID", ctx, "01aaa").Return(&models.Job{ID: uuid.New(), UpworkID: "01aaa"}, nil)
	f.jobs.On("GetByUpworkID", ctx, "01ccc").Return(nil, repository.ErrJobNotFound)
	f.jobs.On("Create", ctx, mock.AnythingOfType("*models.Job")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Job).ID = uuid.New() }).
		Return(nil)

	inputs := []JobInput{
		jobInput("https://www.upwork.com/jobs/~01aaa/?ref=2"),
		jobInput("https://www.upwork.com/jobs/~01ccc/?ref=1"),
	}

	ids, err := f.service.IngestJobs(ctx, f.upworkAccountID, inputs)

	require.NoError(t, err)
	assert.Len(t, ids, 1, "дубликат не должен обрабатываться повторно")
	f.jobs.AssertNumberOfCalls(t, "Create", 1)
}

func TestIngestJobs_UnknownAccount(t *testing.T) {
	f := newTestJobService()
	ctx := context.Background()

	unknown := uuid.New()
	f.accounts.On("GetByID", ctx, unknown).Return(nil, repository.ErrUpworkAccountNotFound)

	_, err := f.service.IngestJobs(ctx, unknown, nil)

	assert.ErrorIs(t, err, apperror.ErrAccountNotFound)
}

func TestApplyJob_MovesSuggestionToApplied(t *testing.T) {
	f := newTestJobService()
	ctx := context.Background()

	jobID := uuid.New()
	suggested := &models.SuggestedJob{
		ID:              uuid.New(),
		UpworkAccountID: f.upworkAccountID,
		JobID:           jobID,
		JobType:         models.JobTypeFixed,
	}

	f.suggestions.On("GetSuggestedByJob", ctx, f.accountIDs(), jobID).Return(suggested, nil)
	f.suggestions.On("ApplySuggested", ctx, suggested.ID, mock.AnythingOfType("*models.AppliedJob")).Return(nil)

	applied, err := f.service.ApplyJob(ctx, f.userID, jobID, "Моё предложение", floatPtr(450), nil, "1to3Months")

	require.NoError(t, err)
	assert.Equal(t, models.AppliedJobStatusNotStarted, applied.JobStatus)
	assert.Equal(t, models.ApplicationStatusApplied, applied.JobApplicationStatus)
	assert.Equal(t, jobID, applied.JobID)
	assert.Equal(t, "Моё предложение", applied.ProposalGenerated)
	f.suggestions.AssertExpectations(t)
}

func TestApplyJob_RequiresProposalAndPrice(t *testing.T) {
	f := newTestJobService()
	ctx := context.Background()

	_, err := f.service.ApplyJob(ctx, f.userID, uuid.New(), "", floatPtr(100), nil, "")
	assert.True(t, apperror.IsValidation(err), "пустое предложение должно отклоняться валидацией, получено %v", err)

	_, err = f.service.ApplyJob(ctx, f.userID, uuid.New(), "текст", nil, nil, "")
	assert.True(t, apperror.IsValidation(err), "заявка без цены должна отклоняться валидацией, получено %v", err)

	_, err = f.service.ApplyJob(ctx, f.userID, uuid.New(), "текст", floatPtr(100), floatPtr(10), "")
	assert.True(t, apperror.IsValidation(err), "заявка с двумя ценами должна отклоняться валидацией, получено %v", err)

	f.suggestions.AssertNumberOfCalls(t, "ApplySuggested", 0)
}

func TestIgnoreJob_RemovesSuggestion(t *testing.T) {
	f := newTestJobService()
	ctx := context.Background()

	jobID := uuid.New()
	f.suggestions.On("RemoveSuggested", ctx, f.accountIDs(), jobID).Return(nil).Once()
	f.suggestions.On("RemoveSuggested", ctx, f.accountIDs(), jobID).Return(repository.ErrSuggestedJobNotFound)

	require.NoError(t, f.service.IgnoreJob(ctx, f.userID, jobID))

	// Повторное игнорирование уже удалённого предложения.
	err := f.service.IgnoreJob(ctx, f.userID, jobID)
	assert.True(t, apperror.IsNotFound(err), "повторное игнорирование должно отдавать not found, получено %v", err)
}

func TestMarkJobSpam_RemembersJob(t *testing.T) {
	f := newTestJobService()
	ctx := context.Background()

	jobID := uuid.New()
	f.suggestions.On("MarkSpam", ctx, f.accountIDs(), jobID).Return(nil)

	require.NoError(t, f.service.MarkJobSpam(ctx, f.userID, jobID))

	f.suggestions.AssertCalled(t, "MarkSpam", ctx, f.accountIDs(), jobID)
}

func TestGetJobDetails_ReportsParticipation(t *testing.T) {
	f := newTestJobService()
	ctx := context.Background()

	job := &models.Job{ID: uuid.New(), UpworkID: "01aaa", Type: models.JobTypeFixed}
	suggested := &models.SuggestedJob{
		ID:              uuid.New(),
		UpworkAccountID: f.upworkAccountID,
		JobID:           job.ID,
	}

	f.jobs.On("GetByID", ctx, job.ID).Return(job, nil)
	f.suggestions.On("GetSuggestedByJob", ctx, f.accountIDs(), job.ID).Return(suggested, nil)
	f.suggestions.On("GetAppliedByJob", ctx, f.accountIDs(), job.ID).Return(nil, nil)

	details, err := f.service.GetJobDetails(ctx, f.userID, job.ID)

	require.NoError(t, err)
	assert.True(t, details.Suggested)
	assert.False(t, details.Applied)
	require.NotNil(t, details.SuggestedJob)
	assert.Equal(t, suggested.ID, details.SuggestedJob.ID)
}
