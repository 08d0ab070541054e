package service

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bidbotteam/bidbot-backend/internal/events"
	"github.com/bidbotteam/bidbot-backend/internal/logger"
	"github.com/bidbotteam/bidbot-backend/internal/metrics"
	"github.com/bidbotteam/bidbot-backend/internal/models"
)

// Заголовок и оформление уведомления о подобранной работе.
const (
	suggestionNotificationTitle = "New Job Matched Your Profile! Check it Out"
	suggestionNotificationIcon  = "work"
)

// PipelineJobRepository описывает доступ пайплайна к объявлениям.
type PipelineJobRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

// PipelineAccountRepository описывает доступ пайплайна к привязанным аккаунтам.
type PipelineAccountRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UpworkAccount, error)
}

// SuggestionStore описывает запись результатов пайплайна.
type SuggestionStore interface {
	AppendSuggestion(ctx context.Context, suggestion *models.SuggestedJob, notification *models.Notification) error
	IsSpam(ctx context.Context, upworkAccountID, jobID uuid.UUID) (bool, error)
}

// ProposalGenerator описывает контракт с сервисом генерации предложений.
type ProposalGenerator interface {
	GenerateProposal(ctx context.Context, jobDescription string, jobTags []string, jobType string) (string, error)
}

// JobPipeline прогоняет работы через фильтры аккаунта, оценивает
// стоимость и срок, запрашивает текст предложения и публикует
// результат. Запускается в фоне после подтверждения приёма пачки.
type JobPipeline struct {
	jobs        PipelineJobRepository
	accounts    PipelineAccountRepository
	suggestions SuggestionStore
	generator   ProposalGenerator
	estimator   *Estimator
	bus         EventBus.Bus
	accountLock *keyedMutex
}

// NewJobPipeline создаёт пайплайн обработки работ.
func NewJobPipeline(
	jobs PipelineJobRepository,
	accounts PipelineAccountRepository,
	suggestions SuggestionStore,
	generator ProposalGenerator,
	estimator *Estimator,
	bus EventBus.Bus,
) *JobPipeline {
	return &JobPipeline{
		jobs:        jobs,
		accounts:    accounts,
		suggestions: suggestions,
		generator:   generator,
		estimator:   estimator,
		bus:         bus,
		accountLock: newKeyedMutex(),
	}
}

// ProcessJobs обрабатывает пачку работ для одного привязанного аккаунта.
// Сбой на отдельной работе не останавливает обработку остальных:
// пайплайн логирует ошибку и продолжает. Пачки одного аккаунта
// сериализуются мьютексом по ключу.
func (p *JobPipeline) ProcessJobs(ctx context.Context, upworkAccountID uuid.UUID, jobIDs []uuid.UUID) error {
	unlock := p.accountLock.Lock(upworkAccountID)
	defer unlock()

	start := time.Now()
	defer func() {
		metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	}()

	account, err := p.accounts.GetByID(ctx, upworkAccountID)
	if err != nil {
		return fmt.Errorf("pipeline: получение аккаунта %w", err)
	}

	log := logger.Log.WithField("upwork_account_id", upworkAccountID)
	log.Infof("pipeline: начало обработки %d работ", len(jobIDs))

	for _, jobID := range jobIDs {
		// Останов сервера прекращает обработку между работами,
		// не бросая начатую работу на полпути.
		if err := ctx.Err(); err != nil {
			log.Warnf("pipeline: обработка прервана: %v", err)
			return err
		}

		p.processJob(ctx, log.WithField("job_id", jobID), account, jobID)
	}

	log.Info("pipeline: обработка пачки завершена")

	return nil
}

func (p *JobPipeline) processJob(ctx context.Context, log *logrus.Entry, account *models.UpworkAccount, jobID uuid.UUID) {
	job, err := p.jobs.GetByID(ctx, jobID)
	if err != nil {
		log.Errorf("pipeline: работа не загружена: %v", err)
		return
	}

	metrics.JobsIngested.Inc()

	if spam, err := p.suggestions.IsSpam(ctx, account.ID, job.ID); err != nil {
		log.Errorf("pipeline: проверка спама: %v", err)
		return
	} else if spam {
		log.Debug("pipeline: работа помечена спамом, пропускаем")
		return
	}

	passed, reason := EvaluateJob(job, account.JobFilters)
	if !passed {
		metrics.JobsFiltered.WithLabelValues(reason).Inc()
		log.Debugf("pipeline: работа отклонена фильтром %s", reason)
		return
	}

	// Сбой генерации не фатален: предложение публикуется с пустым
	// текстом, пользователь допишет его сам.
	proposal, err := p.generator.GenerateProposal(ctx, job.Description, job.Items, job.Type)
	if err != nil {
		metrics.ProposalGenerationFailures.Inc()
		log.Warnf("pipeline: генерация предложения не удалась: %v", err)
		proposal = ""
	}

	estimate := p.estimator.Estimate(job, account.CostAndTimeConfig)

	suggestion := models.SuggestedJob{
		UpworkAccountID:      account.ID,
		JobID:                job.ID,
		ProposalGenerated:    proposal,
		ProposalStatus:       models.ProposalStatusPending,
		JobApplicationStatus: models.ApplicationStatusSuggested,
		BidPrice:             estimate.BidPrice,
		HourlyPrice:          estimate.HourlyPrice,
		JobType:              job.Type,
		JobDuration:          estimate.Duration,
	}

	icon := suggestionNotificationIcon
	redirectURL := fmt.Sprintf("/jobs/%s/details", job.UpworkID)
	notification := models.Notification{
		UpworkAccountID: account.ID,
		Title:           suggestionNotificationTitle,
		Icon:            &icon,
		RedirectURL:     &redirectURL,
	}

	if err := p.suggestions.AppendSuggestion(ctx, &suggestion, &notification); err != nil {
		log.Errorf("pipeline: сохранение предложения: %v", err)
		return
	}

	metrics.SuggestionsCreated.Inc()
	log.Info("pipeline: предложение опубликовано")

	if p.bus != nil {
		p.bus.Publish(events.SuggestionPublishedTopic, events.SuggestionPublished{
			UpworkAccountID: account.ID,
			Suggestion:      suggestion,
			Notification:    notification,
		})
	}
}
