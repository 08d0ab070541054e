package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bidbotteam/bidbot-backend/internal/models"
	"github.com/bidbotteam/bidbot-backend/internal/pkg/apperror"
	"github.com/bidbotteam/bidbot-backend/internal/repository"
)

// UpworkAccountRepo описывает полный доступ сервиса к привязанным аккаунтам.
type UpworkAccountRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UpworkAccount, error)
	ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]models.UpworkAccount, error)
	BelongsToAccount(ctx context.Context, id, accountID uuid.UUID) (bool, error)
	UpdateConfiguration(ctx context.Context, id uuid.UUID, cfg models.Configuration) error
}

// ConnectsRepo описывает доступ к балансу коннектов.
type ConnectsRepo interface {
	GetByUpworkAccount(ctx context.Context, upworkAccountID uuid.UUID) (*models.Connects, error)
	ListHistory(ctx context.Context, connectsID uuid.UUID) ([]models.ConnectsHistory, error)
	AdjustBalance(ctx context.Context, upworkAccountID uuid.UUID, action string, change int) (*models.Connects, error)
}

// SubscriptionRepo описывает доступ к подписке аккаунта.
type SubscriptionRepo interface {
	GetSubscriptionByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
}

// ConnectsBalance — баланс коннектов с историей для выдачи в API.
type ConnectsBalance struct {
	Connects int                      `json:"connects"`
	History  []models.ConnectsHistory `json:"history"`
}

// LinkedAccount — привязанный аккаунт с текущим балансом коннектов.
type LinkedAccount struct {
	models.UpworkAccount
	Connects int `json:"connects"`
}

// LinkedAccountsOverview — список привязанных аккаунтов вместе с
// остатком слотов на привязку и подпиской аккаунта.
type LinkedAccountsOverview struct {
	Accounts       []LinkedAccount      `json:"accounts"`
	RemainingSlots int                  `json:"remainingSlots"`
	Subscription   *models.Subscription `json:"subscription,omitempty"`
}

// AccountService обслуживает привязанные аккаунты биржи: список,
// настройки пайплайна и баланс коннектов.
type AccountService struct {
	users         AccountResolver
	accounts      UpworkAccountRepo
	connects      ConnectsRepo
	subscriptions SubscriptionRepo
}

// NewAccountService создаёт сервис аккаунтов.
func NewAccountService(users AccountResolver, accounts UpworkAccountRepo, connects ConnectsRepo, subscriptions SubscriptionRepo) *AccountService {
	return &AccountService{
		users:         users,
		accounts:      accounts,
		connects:      connects,
		subscriptions: subscriptions,
	}
}

// ListUpworkAccounts возвращает привязанные аккаунты пользователя с
// балансом коннектов, остатком слотов на привязку и подпиской.
func (s *AccountService) ListUpworkAccounts(ctx context.Context, userID uuid.UUID) (*LinkedAccountsOverview, error) {
	account, err := s.resolveAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	upworkAccounts, err := s.accounts.ListByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("account service: список привязанных аккаунтов %w", err)
	}

	linked := make([]LinkedAccount, 0, len(upworkAccounts))
	for _, ua := range upworkAccounts {
		entry := LinkedAccount{UpworkAccount: ua}

		connects, err := s.connects.GetByUpworkAccount(ctx, ua.ID)
		if err != nil && !errors.Is(err, repository.ErrConnectsNotFound) {
			return nil, fmt.Errorf("account service: баланс коннектов %w", err)
		}
		if connects != nil {
			entry.Connects = connects.Connects
		}

		linked = append(linked, entry)
	}

	overview := LinkedAccountsOverview{
		Accounts:       linked,
		RemainingSlots: account.MaxUpworkAccounts - len(linked),
	}

	if account.SubscriptionID != nil {
		subscription, err := s.subscriptions.GetSubscriptionByID(ctx, *account.SubscriptionID)
		if err != nil && !errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, fmt.Errorf("account service: подписка %w", err)
		}
		overview.Subscription = subscription
	}

	return &overview, nil
}

// GetConfiguration возвращает настройки фильтров и оценки привязанного аккаунта.
func (s *AccountService) GetConfiguration(ctx context.Context, userID, upworkAccountID uuid.UUID) (*models.Configuration, error) {
	if err := s.authorizeUpworkAccount(ctx, userID, upworkAccountID); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, upworkAccountID)
	if err != nil {
		if errors.Is(err, repository.ErrUpworkAccountNotFound) {
			return nil, apperror.ErrAccountNotFound
		}
		return nil, fmt.Errorf("account service: получение аккаунта %w", err)
	}

	cfg := account.ConfigurationView()

	return &cfg, nil
}

// UpdateConfiguration валидирует и сохраняет настройки привязанного аккаунта.
func (s *AccountService) UpdateConfiguration(ctx context.Context, userID, upworkAccountID uuid.UUID, cfg models.Configuration) error {
	if err := s.authorizeUpworkAccount(ctx, userID, upworkAccountID); err != nil {
		return err
	}

	if err := validateConfiguration(cfg); err != nil {
		return err
	}

	if err := s.accounts.UpdateConfiguration(ctx, upworkAccountID, cfg); err != nil {
		if errors.Is(err, repository.ErrUpworkAccountNotFound) {
			return apperror.ErrAccountNotFound
		}
		return fmt.Errorf("account service: сохранение настроек %w", err)
	}

	return nil
}

// GetConnects возвращает баланс коннектов с историей.
func (s *AccountService) GetConnects(ctx context.Context, userID, upworkAccountID uuid.UUID) (*ConnectsBalance, error) {
	if err := s.authorizeUpworkAccount(ctx, userID, upworkAccountID); err != nil {
		return nil, err
	}

	connects, err := s.connects.GetByUpworkAccount(ctx, upworkAccountID)
	if err != nil {
		if errors.Is(err, repository.ErrConnectsNotFound) {
			// Аккаунт ещё не отчитался о балансе: отдаём нулевой.
			return &ConnectsBalance{Connects: 0, History: []models.ConnectsHistory{}}, nil
		}
		return nil, fmt.Errorf("account service: получение коннектов %w", err)
	}

	history, err := s.connects.ListHistory(ctx, connects.ID)
	if err != nil {
		return nil, fmt.Errorf("account service: история коннектов %w", err)
	}

	return &ConnectsBalance{Connects: connects.Connects, History: history}, nil
}

// AdjustConnects применяет изменение баланса, о котором отчитался бот.
func (s *AccountService) AdjustConnects(ctx context.Context, userID, upworkAccountID uuid.UUID, action string, change int) (*models.Connects, error) {
	if err := s.authorizeUpworkAccount(ctx, userID, upworkAccountID); err != nil {
		return nil, err
	}

	if action == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "не указано действие изменения баланса")
	}

	connects, err := s.connects.AdjustBalance(ctx, upworkAccountID, action, change)
	if err != nil {
		return nil, fmt.Errorf("account service: изменение баланса %w", err)
	}

	return connects, nil
}

// authorizeUpworkAccount проверяет, что привязанный аккаунт принадлежит пользователю.
func (s *AccountService) authorizeUpworkAccount(ctx context.Context, userID, upworkAccountID uuid.UUID) error {
	account, err := s.resolveAccount(ctx, userID)
	if err != nil {
		return err
	}

	belongs, err := s.accounts.BelongsToAccount(ctx, upworkAccountID, account.ID)
	if err != nil {
		return fmt.Errorf("account service: проверка принадлежности %w", err)
	}
	if !belongs {
		return apperror.ErrForbidden
	}

	return nil
}

func (s *AccountService) resolveAccount(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	account, err := s.users.GetAccountByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, fmt.Errorf("account service: получение аккаунта пользователя %w", err)
	}

	return account, nil
}

// validateConfiguration проверяет настройки перед сохранением.
func validateConfiguration(cfg models.Configuration) error {
	if _, ok := models.ValidFilterJobTypes[cfg.Job.JobType]; !ok {
		return apperror.New(apperror.ErrCodeValidation, "недопустимый тип работ в фильтре")
	}
	if cfg.Job.MinimumClientRating < 1.0 || cfg.Job.MinimumClientRating > 5.0 {
		return apperror.New(apperror.ErrCodeValidation, "минимальный рейтинг клиента должен быть от 1.0 до 5.0")
	}
	if cfg.Job.MinimumFixedPrice < 0 || cfg.Job.MinimumHourlyPrice < 0 {
		return apperror.New(apperror.ErrCodeValidation, "минимальные цены не могут быть отрицательными")
	}
	if cfg.Job.MaxProposalsSubmitted < 0 {
		return apperror.New(apperror.ErrCodeValidation, "лимит откликов не может быть отрицательным")
	}
	if cfg.Job.ClientMinimumSpentUSD < 0 {
		return apperror.New(apperror.ErrCodeValidation, "минимальные траты клиента не могут быть отрицательными")
	}
	if _, ok := models.ValidCostStrategies[cfg.CostAndTime.CostEstimationStrategy]; !ok {
		return apperror.New(apperror.ErrCodeValidation, "недопустимая стратегия оценки стоимости")
	}
	if _, ok := models.ValidTimeStrategies[cfg.CostAndTime.TimeEstimationStrategy]; !ok {
		return apperror.New(apperror.ErrCodeValidation, "недопустимая стратегия оценки срока")
	}

	return nil
}
