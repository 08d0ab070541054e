package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bidbotteam/bidbot-backend/internal/events"
	"github.com/bidbotteam/bidbot-backend/internal/models"
)

// mockPipelineJobs реализует PipelineJobRepository для тестов.
type mockPipelineJobs struct {
	mock.Mock
}

func (m *mockPipelineJobs) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

// mockPipelineAccounts реализует PipelineAccountRepository для тестов.
type mockPipelineAccounts struct {
	mock.Mock
}

func (m *mockPipelineAccounts) GetByID(ctx context.Context, id uuid.UUID) (*models.UpworkAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UpworkAccount), args.Error(1)
}

// mockSuggestionStore реализует SuggestionStore для тестов.
type mockSuggestionStore struct {
	mock.Mock
}

func (m *mockSuggestionStore) AppendSuggestion(ctx context.Context, suggestion *models.SuggestedJob, notification *models.Notification) error {
	args := m.Called(ctx, suggestion, notification)
	return args.Error(0)
}

func (m *mockSuggestionStore) IsSpam(ctx context.Context, upworkAccountID, jobID uuid.UUID) (bool, error) {
	args := m.Called(ctx, upworkAccountID, jobID)
	return args.Bool(0), args.Error(1)
}

// mockGenerator реализует ProposalGenerator для тестов.
type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateProposal(ctx context.Context, jobDescription string, jobTags []string, jobType string) (string, error) {
	args := m.Called(ctx, jobDescription, jobTags, jobType)
	return args.String(0), args.Error(1)
}

func passingAccount() *models.UpworkAccount {
	return &models.UpworkAccount{
		ID:                uuid.New(),
		JobFilters:        models.DefaultJobFilters(),
		CostAndTimeConfig: models.DefaultCostAndTimeConfig(),
	}
}

func pipelineJob(budget float64) *models.Job {
	return &models.Job{
		ID:            uuid.New(),
		UpworkID:      fmt.Sprintf("01%s", uuid.NewString()[:8]),
		Budget:        floatPtr(budget),
		Type:          models.JobTypeFixed,
		Country:       "US",
		Rating:        5.0,
		Spendings:     10000,
		Proposals:     3,
		PaymentStatus: "Payment verified",
		Description:   "Build a web app",
	}
}

type pipelineFixture struct {
	jobs     *mockPipelineJobs
	accounts *mockPipelineAccounts
	store    *mockSuggestionStore
	gen      *mockGenerator
	account  *models.UpworkAccount
}

func newPipelineFixture(account *models.UpworkAccount, jobList ...*models.Job) *pipelineFixture {
	jobs := new(mockPipelineJobs)
	for _, job := range jobList {
		jobs.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	}

	accounts := new(mockPipelineAccounts)
	accounts.On("GetByID", mock.Anything, account.ID).Return(account, nil)

	return &pipelineFixture{
		jobs:     jobs,
		accounts: accounts,
		store:    new(mockSuggestionStore),
		gen:      new(mockGenerator),
		account:  account,
	}
}

func (f *pipelineFixture) pipeline(bus EventBus.Bus) *JobPipeline {
	return NewJobPipeline(f.jobs, f.accounts, f.store, f.gen, testEstimator(), bus)
}

// captureSuggestion ставит ожидание на сохранение предложения и
// возвращает указатели на сохранённую пару предложение+уведомление.
func (f *pipelineFixture) captureSuggestion() (*models.SuggestedJob, *models.Notification) {
	suggestion := &models.SuggestedJob{}
	notification := &models.Notification{}
	f.store.On("AppendSuggestion", mock.Anything, mock.AnythingOfType("*models.SuggestedJob"), mock.AnythingOfType("*models.Notification")).
		Run(func(args mock.Arguments) {
			*suggestion = *args.Get(1).(*models.SuggestedJob)
			*notification = *args.Get(2).(*models.Notification)
		}).
		Return(nil)
	return suggestion, notification
}

func TestPipeline_PublishesSuggestionWithNotification(t *testing.T) {
	account := passingAccount()
	job := pipelineJob(500)
	f := newPipelineFixture(account, job)

	f.store.On("IsSpam", mock.Anything, account.ID, job.ID).Return(false, nil)
	f.gen.On("GenerateProposal", mock.Anything, job.Description, mock.Anything, job.Type).Return("Готов помочь с проектом", nil)
	suggestion, notification := f.captureSuggestion()

	err := f.pipeline(nil).ProcessJobs(context.Background(), account.ID, []uuid.UUID{job.ID})

	require.NoError(t, err)
	f.store.AssertNumberOfCalls(t, "AppendSuggestion", 1)

	assert.Equal(t, "Готов помочь с проектом", suggestion.ProposalGenerated)
	assert.Equal(t, models.ProposalStatusPending, suggestion.ProposalStatus)
	assert.Equal(t, models.ApplicationStatusSuggested, suggestion.JobApplicationStatus)
	require.NotNil(t, suggestion.BidPrice)
	assert.Equal(t, 500.0, *suggestion.BidPrice)
	assert.Nil(t, suggestion.HourlyPrice, "для fixed работы почасовая цена должна быть пустой")

	assert.Equal(t, "New Job Matched Your Profile! Check it Out", notification.Title)
	require.NotNil(t, notification.Icon)
	assert.Equal(t, "work", *notification.Icon)
	require.NotNil(t, notification.RedirectURL)
	assert.Equal(t, fmt.Sprintf("/jobs/%s/details", job.UpworkID), *notification.RedirectURL)
}

func TestPipeline_HourlyJobGetsHourlyPrice(t *testing.T) {
	account := passingAccount()
	job := pipelineJob(0)
	job.Budget = nil
	job.Type = models.JobTypeHourly
	job.MinHourlyPrice = floatPtr(20)
	job.MaxHourlyPrice = floatPtr(40)

	f := newPipelineFixture(account, job)
	f.store.On("IsSpam", mock.Anything, account.ID, job.ID).Return(false, nil)
	f.gen.On("GenerateProposal", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	suggestion, _ := f.captureSuggestion()

	err := f.pipeline(nil).ProcessJobs(context.Background(), account.ID, []uuid.UUID{job.ID})

	require.NoError(t, err)
	require.NotNil(t, suggestion.HourlyPrice)
	assert.Equal(t, 4800.0, *suggestion.HourlyPrice, "ожидалась почасовая оценка 40*120")
	assert.Nil(t, suggestion.BidPrice, "для hourly работы фиксированная цена должна быть пустой")
}

func TestPipeline_ContinuesAfterStoreFailure(t *testing.T) {
	account := passingAccount()
	job1 := pipelineJob(300)
	job2 := pipelineJob(400)
	job3 := pipelineJob(500)

	f := newPipelineFixture(account, job1, job2, job3)
	f.store.On("IsSpam", mock.Anything, account.ID, mock.Anything).Return(false, nil)
	f.gen.On("GenerateProposal", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", nil)

	// Сохранение второй работы падает, остальные проходят.
	var stored []models.SuggestedJob
	f.store.On("AppendSuggestion", mock.Anything, mock.MatchedBy(func(s *models.SuggestedJob) bool {
		return s.JobID == job2.ID
	}), mock.Anything).Return(errors.New("db down"))
	f.store.On("AppendSuggestion", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = append(stored, *args.Get(1).(*models.SuggestedJob))
		}).
		Return(nil)

	err := f.pipeline(nil).ProcessJobs(context.Background(), account.ID, []uuid.UUID{job1.ID, job2.ID, job3.ID})

	require.NoError(t, err, "сбой на одной работе не должен останавливать пачку")
	require.Len(t, stored, 2)
	assert.Equal(t, job1.ID, stored[0].JobID)
	assert.Equal(t, job3.ID, stored[1].JobID)
}

func TestPipeline_GenerationFailureIsNotFatal(t *testing.T) {
	account := passingAccount()
	job := pipelineJob(500)

	f := newPipelineFixture(account, job)
	f.store.On("IsSpam", mock.Anything, account.ID, job.ID).Return(false, nil)
	f.gen.On("GenerateProposal", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("generation service unavailable"))
	suggestion, _ := f.captureSuggestion()

	err := f.pipeline(nil).ProcessJobs(context.Background(), account.ID, []uuid.UUID{job.ID})

	require.NoError(t, err, "сбой генерации не должен останавливать пайплайн")
	f.store.AssertNumberOfCalls(t, "AppendSuggestion", 1)
	assert.Empty(t, suggestion.ProposalGenerated, "предложение должно публиковаться и без текста")
}

func TestPipeline_FilteredJobIsNotStored(t *testing.T) {
	account := passingAccount()
	account.JobFilters.MinimumClientRating = 4.9

	job := pipelineJob(500)
	job.Rating = 4.0

	f := newPipelineFixture(account, job)
	f.store.On("IsSpam", mock.Anything, account.ID, job.ID).Return(false, nil)

	err := f.pipeline(nil).ProcessJobs(context.Background(), account.ID, []uuid.UUID{job.ID})

	require.NoError(t, err)
	f.gen.AssertNumberOfCalls(t, "GenerateProposal", 0)
	f.store.AssertNumberOfCalls(t, "AppendSuggestion", 0)
}

func TestPipeline_SpamJobIsSkipped(t *testing.T) {
	account := passingAccount()
	job := pipelineJob(500)

	f := newPipelineFixture(account, job)
	f.store.On("IsSpam", mock.Anything, account.ID, job.ID).Return(true, nil)

	err := f.pipeline(nil).ProcessJobs(context.Background(), account.ID, []uuid.UUID{job.ID})

	require.NoError(t, err)
	f.store.AssertNumberOfCalls(t, "AppendSuggestion", 0)
}

func TestPipeline_PublishesEventOnBus(t *testing.T) {
	account := passingAccount()
	job := pipelineJob(500)

	f := newPipelineFixture(account, job)
	f.store.On("IsSpam", mock.Anything, account.ID, job.ID).Return(false, nil)
	f.gen.On("GenerateProposal", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	f.store.On("AppendSuggestion", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	bus := EventBus.New()

	var published []events.SuggestionPublished
	require.NoError(t, bus.Subscribe(events.SuggestionPublishedTopic, func(event events.SuggestionPublished) {
		published = append(published, event)
	}))

	err := f.pipeline(bus).ProcessJobs(context.Background(), account.ID, []uuid.UUID{job.ID})

	require.NoError(t, err)

	// Подписка синхронная: событие доставляется до возврата Publish.
	require.Len(t, published, 1)
	assert.Equal(t, account.ID, published[0].UpworkAccountID)
}

func TestPipeline_StopsBetweenJobsOnCancel(t *testing.T) {
	account := passingAccount()
	job := pipelineJob(500)

	f := newPipelineFixture(account, job)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.pipeline(nil).ProcessJobs(ctx, account.ID, []uuid.UUID{job.ID})

	assert.Error(t, err, "отменённый контекст должен прерывать обработку")
	f.jobs.AssertNumberOfCalls(t, "GetByID", 0)
	f.store.AssertNumberOfCalls(t, "AppendSuggestion", 0)
}
