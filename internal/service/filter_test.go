package service

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/bidbotteam/bidbot-backend/internal/models"
)

func floatPtr(v float64) *float64 {
	return &v
}

func defaultFilters() models.JobFilters {
	return models.JobFilters{
		MinimumFixedPrice:     100,
		MinimumHourlyPrice:    10,
		JobType:               models.FilterJobTypeBoth,
		MaxProposalsSubmitted: 30,
		ExcludedCountries:     pq.StringArray{},
		MinimumClientRating:   4.0,
		ClientMinimumSpentUSD: 500,
		OnlyPaymentVerified:   false,
	}
}

func matchingJob() *models.Job {
	return &models.Job{
		Budget:        floatPtr(500),
		Type:          models.JobTypeFixed,
		Country:       "PK",
		Rating:        4.5,
		Spendings:     1000,
		Proposals:     5,
		PaymentStatus: "Payment verified",
	}
}

func TestEvaluateJob_Passes(t *testing.T) {
	passed, reason := EvaluateJob(matchingJob(), defaultFilters())

	assert.True(t, passed, "работа должна пройти фильтры, причина отказа: %s", reason)
}

func TestEvaluateJob_ExcludedCountry(t *testing.T) {
	filters := defaultFilters()
	filters.ExcludedCountries = pq.StringArray{"PK"}

	passed, reason := EvaluateJob(matchingJob(), filters)

	assert.False(t, passed, "работа из исключённой страны должна отклоняться")
	assert.Equal(t, RejectReasonCountry, reason)
}

func TestEvaluateJob_BudgetBelowMinimum(t *testing.T) {
	job := matchingJob()
	job.Budget = floatPtr(50)

	passed, reason := EvaluateJob(job, defaultFilters())

	assert.False(t, passed)
	assert.Equal(t, RejectReasonBudget, reason)
}

func TestEvaluateJob_NilBudgetSkipsBudgetCheck(t *testing.T) {
	job := matchingJob()
	job.Budget = nil
	job.Type = models.JobTypeHourly
	job.MinHourlyPrice = floatPtr(25)

	passed, reason := EvaluateJob(job, defaultFilters())

	assert.True(t, passed, "работа без бюджета не должна отклоняться по бюджету, причина: %s", reason)
}

func TestEvaluateJob_HourlyRateBelowMinimum(t *testing.T) {
	job := matchingJob()
	job.Budget = nil
	job.Type = models.JobTypeHourly
	job.MinHourlyPrice = floatPtr(5)

	passed, reason := EvaluateJob(job, defaultFilters())

	assert.False(t, passed)
	assert.Equal(t, RejectReasonHourlyRate, reason)
}

func TestEvaluateJob_JobTypeMismatch(t *testing.T) {
	filters := defaultFilters()
	filters.JobType = models.FilterJobTypeHourly

	passed, reason := EvaluateJob(matchingJob(), filters)

	assert.False(t, passed, "fixed работа при фильтре hourly должна отклоняться")
	assert.Equal(t, RejectReasonJobType, reason)

	filters.JobType = models.FilterJobTypeFixed
	job := matchingJob()
	job.Budget = nil
	job.Type = models.JobTypeHourly
	job.MinHourlyPrice = floatPtr(25)

	passed, reason = EvaluateJob(job, filters)

	assert.False(t, passed, "hourly работа при фильтре fixed должна отклоняться")
	assert.Equal(t, RejectReasonJobType, reason)
}

func TestEvaluateJob_TooManyProposals(t *testing.T) {
	job := matchingJob()
	job.Proposals = 31

	passed, reason := EvaluateJob(job, defaultFilters())

	assert.False(t, passed)
	assert.Equal(t, RejectReasonProposals, reason)
}

func TestEvaluateJob_RatingBelowMinimum(t *testing.T) {
	job := matchingJob()
	job.Rating = 3.9

	passed, reason := EvaluateJob(job, defaultFilters())

	assert.False(t, passed)
	assert.Equal(t, RejectReasonRating, reason)
}

func TestEvaluateJob_SpendingsBelowMinimum(t *testing.T) {
	job := matchingJob()
	job.Spendings = 100

	passed, reason := EvaluateJob(job, defaultFilters())

	assert.False(t, passed)
	assert.Equal(t, RejectReasonSpendings, reason)
}

func TestEvaluateJob_PaymentUnverified(t *testing.T) {
	filters := defaultFilters()
	filters.OnlyPaymentVerified = true

	job := matchingJob()
	job.PaymentStatus = "Payment unverified"

	passed, reason := EvaluateJob(job, filters)

	assert.False(t, passed)
	assert.Equal(t, RejectReasonPaymentUnverified, reason)

	// При выключенном флаге неподтверждённый статус не мешает.
	filters.OnlyPaymentVerified = false
	passed, _ = EvaluateJob(job, filters)

	assert.True(t, passed, "без флага проверки оплаты работа должна проходить")
}

func TestEvaluateJob_FirstFailedPredicateWins(t *testing.T) {
	// Работа нарушает и бюджет, и рейтинг: причиной должен стать
	// первый по порядку предикат.
	job := matchingJob()
	job.Budget = floatPtr(50)
	job.Rating = 1.0

	passed, reason := EvaluateJob(job, defaultFilters())

	assert.False(t, passed)
	assert.Equal(t, RejectReasonBudget, reason)
}
