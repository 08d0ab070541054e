package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bidbotteam/bidbot-backend/internal/logger"
)

// JobCloser описывает закрытие устаревших объявлений в хранилище.
type JobCloser interface {
	CloseOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// JobCleaner раз в сутки закрывает объявления, провисевшие дольше
// срока хранения: по таким работам биржа уже не принимает отклики.
type JobCleaner struct {
	jobs          JobCloser
	cron          *cron.Cron
	retentionDays int
}

// NewJobCleaner создаёт и запускает чистильщик объявлений.
func NewJobCleaner(jobs JobCloser, retentionDays int) (*JobCleaner, error) {
	jc := &JobCleaner{
		jobs:          jobs,
		cron:          cron.New(),
		retentionDays: retentionDays,
	}

	if _, err := jc.cron.AddFunc("0 0 * * *", jc.closeStaleJobs); err != nil {
		return nil, err
	}

	jc.cron.Start()
	logger.Log.Infof("job cleaner: запущен, срок хранения %d дней", jc.retentionDays)

	return jc, nil
}

// Stop останавливает расписание чистильщика.
func (jc *JobCleaner) Stop() {
	jc.cron.Stop()
}

func (jc *JobCleaner) closeStaleJobs() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -jc.retentionDays)

	closed, err := jc.jobs.CloseOlderThan(ctx, cutoff)
	if err != nil {
		logger.Log.Errorf("job cleaner: закрытие устаревших работ: %v", err)
		return
	}

	if closed > 0 {
		logger.Log.Infof("job cleaner: закрыто %d устаревших работ", closed)
	}
}
