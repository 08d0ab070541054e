package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики конвейера обработки работ.
var (
	JobsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bidbot_jobs_ingested_total",
		Help: "Число принятых в обработку объявлений о работе.",
	})

	JobsFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bidbot_jobs_filtered_total",
		Help: "Число отклонённых фильтрами объявлений по причинам.",
	}, []string{"reason"})

	SuggestionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bidbot_suggestions_created_total",
		Help: "Число созданных предложений работ.",
	})

	ProposalGenerationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bidbot_proposal_generation_failures_total",
		Help: "Число сбоев генерации сопроводительных предложений.",
	})

	PipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bidbot_pipeline_duration_seconds",
		Help:    "Длительность обработки пачки объявлений конвейером.",
		Buckets: prometheus.DefBuckets,
	})
)
