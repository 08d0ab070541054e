package service

import (
	"github.com/bidbotteam/bidbot-backend/internal/config"
	"github.com/bidbotteam/bidbot-backend/internal/models"
)

// Estimate — результат оценки стоимости и срока работы.
// Заполняется ровно одно из двух полей цены: BidPrice для fixed работ,
// HourlyPrice для hourly.
type Estimate struct {
	BidPrice    *float64
	HourlyPrice *float64
	Duration    string
}

// Estimator считает оценку стоимости и срока по настройкам аккаунта.
type Estimator struct {
	cfg config.PipelineConfig
}

// NewEstimator создаёт оценщик с дефолтами пайплайна.
func NewEstimator(cfg config.PipelineConfig) *Estimator {
	return &Estimator{cfg: cfg}
}

// Estimate оценивает работу по выбранным стратегиям.
//
// Стратегии clientBudget и Custom берут бюджет клиента напрямую, а при
// его отсутствии пересчитывают верхнюю почасовую ставку в месячную
// стоимость. HourBased и PrevProjectsBased требуют исторических данных
// исполнителя, которых у сервиса пока нет, поэтому проваливаются в
// дефолтную оценку. Оценка срока пока всегда отдаёт дефолтную метку.
func (e *Estimator) Estimate(job *models.Job, cfg models.CostAndTimeConfig) Estimate {
	estimatedCost := e.cfg.DefaultEstimatedCost
	estimatedTime := e.cfg.DefaultDurationLabel

	switch cfg.CostEstimationStrategy {
	case models.CostStrategyClientBudget, models.CostStrategyCustom:
		if job.Budget != nil {
			estimatedCost = *job.Budget
		} else if job.MaxHourlyPrice != nil {
			estimatedCost = *job.MaxHourlyPrice * e.cfg.AssumedMonthlyHours
		}
	case models.CostStrategyHourBased, models.CostStrategyPrevProjectsBased:
		// TODO: подключить расчёт по прошлым проектам, когда появится
		// история заявок с фактическими трудозатратами.
	}

	estimate := Estimate{Duration: estimatedTime}
	if job.Type == models.JobTypeFixed {
		estimate.BidPrice = &estimatedCost
	} else {
		estimate.HourlyPrice = &estimatedCost
	}

	return estimate
}
