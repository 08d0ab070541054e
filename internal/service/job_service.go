package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/bidbotteam/bidbot-backend/internal/models"
	"github.com/bidbotteam/bidbot-backend/internal/pkg/apperror"
	"github.com/bidbotteam/bidbot-backend/internal/repository"
)

// upworkIDPattern вытаскивает внешний идентификатор работы из ссылки.
// Идентификатор стоит между "~" и "/?" в конце URL объявления.
var upworkIDPattern = regexp.MustCompile(`~(.*?)/\?`)

// JobInput — объявление о работе в том виде, в котором его присылает бот.
type JobInput struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	Country        string   `json:"country"`
	Budget         *float64 `json:"budget"`
	MinHourlyPrice *float64 `json:"minHourlyPrice"`
	MaxHourlyPrice *float64 `json:"maxHourlyPrice"`
	Items          []string `json:"items"`
	PaymentStatus  string   `json:"payment_status"`
	PostedOn       *string  `json:"postedOn"`
	Proposals      int      `json:"proposals"`
	Rating         float64  `json:"rating"`
	Spendings      float64  `json:"spendingsFloat"`
	Type           string   `json:"type" binding:"required"`
	URL            string   `json:"url" binding:"required"`
}

// JobDetails — карточка работы со статусом участия пользователя.
type JobDetails struct {
	Job          *models.Job          `json:"job"`
	Suggested    bool                 `json:"suggested"`
	Applied      bool                 `json:"applied"`
	SuggestedJob *models.SuggestedJob `json:"suggestedJob"`
	AppliedJob   *models.AppliedJob   `json:"appliedJob"`
}

// JobStore описывает взаимодействие сервиса с хранилищем объявлений.
type JobStore interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	GetByUpworkID(ctx context.Context, upworkID string) (*models.Job, error)
}

// SuggestionRepo описывает взаимодействие сервиса с предложениями и заявками.
type SuggestionRepo interface {
	ListSuggested(ctx context.Context, upworkAccountIDs []uuid.UUID) ([]models.SuggestedJob, error)
	ListApplied(ctx context.Context, upworkAccountIDs []uuid.UUID) ([]models.AppliedJob, error)
	GetSuggestedByJob(ctx context.Context, upworkAccountIDs []uuid.UUID, jobID uuid.UUID) (*models.SuggestedJob, error)
	GetAppliedByJob(ctx context.Context, upworkAccountIDs []uuid.UUID, jobID uuid.UUID) (*models.AppliedJob, error)
	ApplySuggested(ctx context.Context, suggestionID uuid.UUID, applied *models.AppliedJob) error
	RemoveSuggested(ctx context.Context, upworkAccountIDs []uuid.UUID, jobID uuid.UUID) error
	MarkSpam(ctx context.Context, upworkAccountIDs []uuid.UUID, jobID uuid.UUID) error
}

// AccountResolver отдаёт аккаунт пользователя и его привязанные аккаунты биржи.
type AccountResolver interface {
	GetAccountByUserID(ctx context.Context, userID uuid.UUID) (*models.Account, error)
}

// UpworkAccountProvider описывает доступ к привязанным аккаунтам.
type UpworkAccountProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UpworkAccount, error)
	ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]models.UpworkAccount, error)
}

// JobService обслуживает приём работ от бота и действия пользователя
// над предложенными работами.
type JobService struct {
	jobs        JobStore
	suggestions SuggestionRepo
	users       AccountResolver
	accounts    UpworkAccountProvider
}

// NewJobService создаёт сервис работ.
func NewJobService(jobs JobStore, suggestions SuggestionRepo, users AccountResolver, accounts UpworkAccountProvider) *JobService {
	return &JobService{
		jobs:        jobs,
		suggestions: suggestions,
		users:       users,
		accounts:    accounts,
	}
}

// ExtractUpworkID возвращает внешний идентификатор работы из URL объявления.
func ExtractUpworkID(url string) (string, error) {
	match := upworkIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", apperror.ErrInvalidJobURL
	}
	return match[1], nil
}

// IngestJobs принимает пачку объявлений, валидирует её целиком и
// сохраняет новые объявления. Возвращает идентификаторы только что
// созданных работ — уже известные объявления повторно не обрабатываются.
// Любая битая ссылка отклоняет пачку до первой записи в базу.
func (s *JobService) IngestJobs(ctx context.Context, upworkAccountID uuid.UUID, inputs []JobInput) ([]uuid.UUID, error) {
	if _, err := s.accounts.GetByID(ctx, upworkAccountID); err != nil {
		if errors.Is(err, repository.ErrUpworkAccountNotFound) {
			return nil, apperror.ErrAccountNotFound
		}
		return nil, fmt.Errorf("job service: проверка аккаунта %w", err)
	}

	// Сначала валидируем все ссылки: пачка либо принимается целиком,
	// либо отклоняется без частичных вставок.
	upworkIDs := make([]string, 0, len(inputs))
	for _, input := range inputs {
		upworkID, err := ExtractUpworkID(input.URL)
		if err != nil {
			return nil, fmt.Errorf("job service: ссылка %q: %w", input.URL, err)
		}
		upworkIDs = append(upworkIDs, upworkID)
	}

	var newJobIDs []uuid.UUID
	for i, input := range inputs {
		_, err := s.jobs.GetByUpworkID(ctx, upworkIDs[i])
		if err == nil {
			// Дубликат: объявление уже в базе, пайплайн его не трогает.
			continue
		}
		if !errors.Is(err, repository.ErrJobNotFound) {
			return newJobIDs, fmt.Errorf("job service: поиск дубликата %w", err)
		}

		job := models.Job{
			UpworkID:       upworkIDs[i],
			Title:          input.Title,
			Description:    input.Description,
			Country:        input.Country,
			Budget:         input.Budget,
			MinHourlyPrice: input.MinHourlyPrice,
			MaxHourlyPrice: input.MaxHourlyPrice,
			Items:          pq.StringArray(input.Items),
			PaymentStatus:  input.PaymentStatus,
			PostedOn:       input.PostedOn,
			Proposals:      input.Proposals,
			Rating:         input.Rating,
			Spendings:      input.Spendings,
			Type:           input.Type,
			URL:            input.URL,
			JobStatus:      models.JobStatusOpened,
		}

		if err := s.jobs.Create(ctx, &job); err != nil {
			return newJobIDs, fmt.Errorf("job service: создание объявления %w", err)
		}

		newJobIDs = append(newJobIDs, job.ID)
	}

	return newJobIDs, nil
}

// ListSuggested возвращает предложенные работы по всем привязанным аккаунтам пользователя.
func (s *JobService) ListSuggested(ctx context.Context, userID uuid.UUID) ([]models.SuggestedJob, error) {
	accountIDs, err := s.userUpworkAccountIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.suggestions.ListSuggested(ctx, accountIDs)
}

// ListApplied возвращает поданные заявки по всем привязанным аккаунтам пользователя.
func (s *JobService) ListApplied(ctx context.Context, userID uuid.UUID) ([]models.AppliedJob, error) {
	accountIDs, err := s.userUpworkAccountIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.suggestions.ListApplied(ctx, accountIDs)
}

// GetJobDetails возвращает карточку работы со статусом участия пользователя.
func (s *JobService) GetJobDetails(ctx context.Context, userID, jobID uuid.UUID) (*JobDetails, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.ErrJobNotFound
		}
		return nil, fmt.Errorf("job service: получение работы %w", err)
	}

	accountIDs, err := s.userUpworkAccountIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := JobDetails{Job: job}

	suggested, err := s.suggestions.GetSuggestedByJob(ctx, accountIDs, jobID)
	if err != nil && !errors.Is(err, repository.ErrSuggestedJobNotFound) {
		return nil, fmt.Errorf("job service: поиск предложения %w", err)
	}
	if suggested != nil {
		details.Suggested = true
		details.SuggestedJob = suggested
	}

	applied, err := s.suggestions.GetAppliedByJob(ctx, accountIDs, jobID)
	if err != nil {
		return nil, fmt.Errorf("job service: поиск заявки %w", err)
	}
	if applied != nil {
		details.Applied = true
		details.AppliedJob = applied
	}

	return &details, nil
}

// ApplyJob переводит предложение в поданную заявку.
// Требуются текст предложения и ровно одна из цен.
func (s *JobService) ApplyJob(ctx context.Context, userID, jobID uuid.UUID, proposal string, bidAmount, hourlyPrice *float64, duration string) (*models.AppliedJob, error) {
	if proposal == "" || (bidAmount == nil && hourlyPrice == nil) {
		return nil, apperror.New(apperror.ErrCodeValidation, "укажите текст предложения и цену")
	}
	if bidAmount != nil && hourlyPrice != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "укажите только одну цену: фиксированную или почасовую")
	}

	accountIDs, err := s.userUpworkAccountIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	suggested, err := s.suggestions.GetSuggestedByJob(ctx, accountIDs, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrSuggestedJobNotFound) {
			return nil, apperror.ErrJobNotFound
		}
		return nil, fmt.Errorf("job service: поиск предложения %w", err)
	}

	applied := models.AppliedJob{
		UpworkAccountID:      suggested.UpworkAccountID,
		JobID:                suggested.JobID,
		ProposalGenerated:    proposal,
		JobApplicationStatus: models.ApplicationStatusApplied,
		BidPrice:             bidAmount,
		HourlyPrice:          hourlyPrice,
		JobType:              suggested.JobType,
		JobDuration:          duration,
		JobStatus:            models.AppliedJobStatusNotStarted,
	}

	if err := s.suggestions.ApplySuggested(ctx, suggested.ID, &applied); err != nil {
		if errors.Is(err, repository.ErrSuggestedJobNotFound) {
			return nil, apperror.ErrJobNotFound
		}
		return nil, fmt.Errorf("job service: подача заявки %w", err)
	}

	return &applied, nil
}

// IgnoreJob убирает предложение из выдачи пользователя.
func (s *JobService) IgnoreJob(ctx context.Context, userID, jobID uuid.UUID) error {
	accountIDs, err := s.userUpworkAccountIDs(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.suggestions.RemoveSuggested(ctx, accountIDs, jobID); err != nil {
		if errors.Is(err, repository.ErrSuggestedJobNotFound) {
			return apperror.ErrJobNotFound
		}
		return fmt.Errorf("job service: игнорирование %w", err)
	}

	return nil
}

// MarkJobSpam убирает предложение и запрещает его повторный показ.
func (s *JobService) MarkJobSpam(ctx context.Context, userID, jobID uuid.UUID) error {
	accountIDs, err := s.userUpworkAccountIDs(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.suggestions.MarkSpam(ctx, accountIDs, jobID); err != nil {
		if errors.Is(err, repository.ErrSuggestedJobNotFound) {
			return apperror.ErrJobNotFound
		}
		return fmt.Errorf("job service: пометка спамом %w", err)
	}

	return nil
}

// userUpworkAccountIDs возвращает идентификаторы привязанных аккаунтов пользователя.
func (s *JobService) userUpworkAccountIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	account, err := s.users.GetAccountByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, fmt.Errorf("job service: получение аккаунта пользователя %w", err)
	}

	upworkAccounts, err := s.accounts.ListByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("job service: получение привязанных аккаунтов %w", err)
	}

	if len(upworkAccounts) == 0 {
		return nil, apperror.ErrAccountNotFound
	}

	return lo.Map(upworkAccounts, func(a models.UpworkAccount, _ int) uuid.UUID {
		return a.ID
	}), nil
}
