package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bidbotteam/bidbot-backend/internal/config"
	"github.com/bidbotteam/bidbot-backend/internal/models"
)

func testEstimator() *Estimator {
	return NewEstimator(config.PipelineConfig{
		DefaultEstimatedCost: 200,
		AssumedMonthlyHours:  120,
		DefaultDurationLabel: "lessThan1Month",
	})
}

func TestEstimate_ClientBudgetUsesBudget(t *testing.T) {
	job := &models.Job{Type: models.JobTypeFixed, Budget: floatPtr(500)}
	cfg := models.CostAndTimeConfig{
		CostEstimationStrategy: models.CostStrategyClientBudget,
		TimeEstimationStrategy: models.TimeStrategyJobEstimatedTime,
	}

	estimate := testEstimator().Estimate(job, cfg)

	require.NotNil(t, estimate.BidPrice)
	assert.Equal(t, 500.0, *estimate.BidPrice)
	assert.Nil(t, estimate.HourlyPrice, "для fixed работы почасовая цена должна отсутствовать")
	assert.Equal(t, "lessThan1Month", estimate.Duration)
}

func TestEstimate_ClientBudgetFallsBackToHourlyRate(t *testing.T) {
	job := &models.Job{Type: models.JobTypeHourly, MaxHourlyPrice: floatPtr(50)}
	cfg := models.CostAndTimeConfig{
		CostEstimationStrategy: models.CostStrategyClientBudget,
		TimeEstimationStrategy: models.TimeStrategyJobEstimatedTime,
	}

	estimate := testEstimator().Estimate(job, cfg)

	require.NotNil(t, estimate.HourlyPrice)
	assert.Equal(t, 6000.0, *estimate.HourlyPrice, "ожидалась оценка 50*120")
	assert.Nil(t, estimate.BidPrice, "для hourly работы фиксированная цена должна отсутствовать")
}

func TestEstimate_DefaultWhenNoPrices(t *testing.T) {
	job := &models.Job{Type: models.JobTypeFixed}
	cfg := models.CostAndTimeConfig{
		CostEstimationStrategy: models.CostStrategyClientBudget,
		TimeEstimationStrategy: models.TimeStrategyJobEstimatedTime,
	}

	estimate := testEstimator().Estimate(job, cfg)

	require.NotNil(t, estimate.BidPrice)
	assert.Equal(t, 200.0, *estimate.BidPrice, "без цен в объявлении ожидался дефолт")
}

func TestEstimate_CustomBehavesLikeClientBudget(t *testing.T) {
	job := &models.Job{Type: models.JobTypeFixed, Budget: floatPtr(750)}
	cfg := models.CostAndTimeConfig{
		CostEstimationStrategy: models.CostStrategyCustom,
		TimeEstimationStrategy: models.TimeStrategyCustom,
	}

	estimate := testEstimator().Estimate(job, cfg)

	require.NotNil(t, estimate.BidPrice)
	assert.Equal(t, 750.0, *estimate.BidPrice, "стратегия Custom должна брать бюджет клиента")
}

func TestEstimate_HourBasedFallsThroughToDefault(t *testing.T) {
	// Стратегии на исторических данных пока не реализованы и
	// проваливаются в дефолтную оценку.
	job := &models.Job{Type: models.JobTypeFixed, Budget: floatPtr(500)}
	cfg := models.CostAndTimeConfig{
		CostEstimationStrategy: models.CostStrategyHourBased,
		TimeEstimationStrategy: models.TimeStrategyJobEstimatedTime,
	}

	estimate := testEstimator().Estimate(job, cfg)

	require.NotNil(t, estimate.BidPrice)
	assert.Equal(t, 200.0, *estimate.BidPrice)

	cfg.CostEstimationStrategy = models.CostStrategyPrevProjectsBased
	estimate = testEstimator().Estimate(job, cfg)

	require.NotNil(t, estimate.BidPrice)
	assert.Equal(t, 200.0, *estimate.BidPrice)
}
