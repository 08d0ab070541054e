package service

import (
	"github.com/samber/lo"

	"github.com/bidbotteam/bidbot-backend/internal/models"
)

// Причины отклонения работы фильтрами. Используются как метки метрик
// и в отладочных логах пайплайна.
const (
	RejectReasonBudget            = "budget"
	RejectReasonHourlyRate        = "hourly_rate"
	RejectReasonJobType           = "job_type"
	RejectReasonProposals         = "proposals"
	RejectReasonCountry           = "country"
	RejectReasonRating            = "rating"
	RejectReasonSpendings         = "spendings"
	RejectReasonPaymentUnverified = "payment_unverified"
)

// EvaluateJob прогоняет работу через фильтры привязанного аккаунта.
// Предикаты проверяются строго по порядку и замыкаются на первом
// отказе; возвращается причина отказа либо пустая строка.
func EvaluateJob(job *models.Job, filters models.JobFilters) (bool, string) {
	if job.Budget != nil && *job.Budget < filters.MinimumFixedPrice {
		return false, RejectReasonBudget
	}

	if job.MinHourlyPrice != nil && *job.MinHourlyPrice < filters.MinimumHourlyPrice {
		return false, RejectReasonHourlyRate
	}

	if filters.JobType == models.FilterJobTypeHourly && job.Type == models.JobTypeFixed {
		return false, RejectReasonJobType
	}
	if filters.JobType == models.FilterJobTypeFixed && job.Type == models.JobTypeHourly {
		return false, RejectReasonJobType
	}

	if job.Proposals > filters.MaxProposalsSubmitted {
		return false, RejectReasonProposals
	}

	if lo.Contains(filters.ExcludedCountries, job.Country) {
		return false, RejectReasonCountry
	}

	if job.Rating < filters.MinimumClientRating {
		return false, RejectReasonRating
	}

	if job.Spendings < filters.ClientMinimumSpentUSD {
		return false, RejectReasonSpendings
	}

	if filters.OnlyPaymentVerified && job.IsPaymentUnverified() {
		return false, RejectReasonPaymentUnverified
	}

	return true, ""
}
