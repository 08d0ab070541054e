package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// JobFilters — настройки отбора работ, принадлежащие привязанному аккаунту.
// По этим предикатам пайплайн решает, предлагать ли работу пользователю.
type JobFilters struct {
	MinimumFixedPrice     float64        `db:"minimum_fixed_price" json:"minimumFixedPrice"`
	MinimumHourlyPrice    float64        `db:"minimum_hourly_price" json:"minimumHourlyPrice"`
	JobType               string         `db:"filter_job_type" json:"jobType"`
	MaxProposalsSubmitted int            `db:"max_proposals_submitted" json:"maxProposalsSubmitted"`
	ExcludedCountries     pq.StringArray `db:"excluded_countries" json:"excludedCountries"`
	MinimumClientRating   float64        `db:"minimum_client_rating" json:"minimumClientRating"`
	ClientMinimumSpentUSD float64        `db:"client_minimum_spent_usd" json:"clientMinimumSpentUSD"`
	OnlyPaymentVerified   bool           `db:"only_payment_verified" json:"onlyPaymentVerified"`
}

// CostAndTimeConfig — настройки оценки стоимости и срока работы.
type CostAndTimeConfig struct {
	CostEstimationStrategy string  `db:"cost_estimation_strategy" json:"costEstimationStrategy"`
	TimeEstimationStrategy string  `db:"time_estimation_strategy" json:"timeEstimationStrategy"`
	CustomCostPercentage   float64 `db:"custom_cost_percentage" json:"customCostPercentage"`
	CustomTimePercent      float64 `db:"custom_time_percent" json:"customTimePercent"`
	UsePreviousData        bool    `db:"use_previous_data" json:"usePreviousData"`
}

// Configuration объединяет настройки привязанного аккаунта для API.
type Configuration struct {
	Job         JobFilters        `json:"job"`
	CostAndTime CostAndTimeConfig `json:"costAndTime"`
}

// UpworkAccount описывает привязанный аккаунт биржи со всеми настройками.
// Учётные данные аккаунта хранит и проверяет бот-коллаборатор, здесь
// лежат только профиль и конфигурация пайплайна.
type UpworkAccount struct {
	ID        uuid.UUID `db:"id" json:"id"`
	AccountID uuid.UUID `db:"account_id" json:"account_id"`
	LoginType string    `db:"login_type" json:"login_type"`
	Email     string    `db:"email" json:"email"`
	Username  *string   `db:"username" json:"username,omitempty"`
	Avatar    *string   `db:"avatar" json:"avatar,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	JobFilters
	CostAndTimeConfig
}

// ConfigurationView возвращает конфигурацию аккаунта в формате API.
func (a *UpworkAccount) ConfigurationView() Configuration {
	return Configuration{
		Job:         a.JobFilters,
		CostAndTime: a.CostAndTimeConfig,
	}
}

// DefaultJobFilters возвращает фильтры по умолчанию для нового аккаунта.
func DefaultJobFilters() JobFilters {
	return JobFilters{
		MinimumFixedPrice:     0,
		MinimumHourlyPrice:    0,
		JobType:               FilterJobTypeBoth,
		MaxProposalsSubmitted: 30,
		ExcludedCountries:     pq.StringArray{},
		MinimumClientRating:   4.0,
		ClientMinimumSpentUSD: 0,
		OnlyPaymentVerified:   false,
	}
}

// DefaultCostAndTimeConfig возвращает стратегии оценки по умолчанию.
func DefaultCostAndTimeConfig() CostAndTimeConfig {
	return CostAndTimeConfig{
		CostEstimationStrategy: CostStrategyClientBudget,
		TimeEstimationStrategy: TimeStrategyJobEstimatedTime,
		CustomCostPercentage:   100,
		CustomTimePercent:      100,
	}
}
