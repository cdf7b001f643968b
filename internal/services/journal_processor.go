package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/internal/infrastructure/journal"
	"github.com/fastygo/todo-service/repository"
)

// ConnectionHealth abstracts the connection monitor.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how often the journal is drained and how long entries live.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// JournalProcessor writes activities to Postgres, parking them in the bbolt journal while
// the database is unreachable and flushing them on a cron schedule.
type JournalProcessor struct {
	store      *journal.Store
	monitor    ConnectionHealth
	activities repository.ActivityRepository
	logger     *zap.Logger
	cron       *cron.Cron
	cfg        ProcessorConfig
}

func NewJournalProcessor(
	store *journal.Store,
	monitor ConnectionHealth,
	activities repository.ActivityRepository,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *JournalProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	jp := &JournalProcessor{
		store:      store,
		monitor:    monitor,
		activities: activities,
		logger:     logger,
		cfg:        cfg,
		cron:       cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = jp.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := jp.Drain(ctx); err != nil {
			jp.logger.Error("journal drain failed", zap.Error(err))
		}
	})
	_, _ = jp.cron.AddFunc("@hourly", func() {
		removed, err := jp.store.Cleanup(time.Now().Add(-jp.cfg.Retention))
		if err != nil {
			jp.logger.Warn("journal cleanup failed", zap.Error(err))
			return
		}
		if removed > 0 {
			jp.logger.Warn("expired journal entries dropped", zap.Int("count", removed))
		}
	})

	return jp
}

func (jp *JournalProcessor) Start() {
	if jp == nil || jp.cron == nil {
		return
	}
	jp.cron.Start()
	jp.logger.Info("journal processor started", zap.Duration("interval", jp.cfg.Interval))
}

// Stop waits for a running drain to finish or ctx to expire.
func (jp *JournalProcessor) Stop(ctx context.Context) {
	if jp == nil || jp.cron == nil {
		return
	}
	stopCtx := jp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	jp.logger.Info("journal processor stopped")
}

// Drain flushes one batch. Failed entries go to the back of the queue until MaxRetries.
func (jp *JournalProcessor) Drain(ctx context.Context) error {
	if jp == nil || jp.store == nil {
		return nil
	}
	if jp.monitor != nil && !jp.monitor.IsOnline() {
		jp.logger.Debug("skipping journal drain (offline)")
		return nil
	}

	entries, err := jp.store.GetBatch(jp.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := jp.activities.Append(ctx, entry.Activity); err != nil {
			jp.logger.Error("failed to flush journal entry",
				zap.String("entry_id", entry.ID),
				zap.String("todo_id", entry.Activity.TodoID),
				zap.Error(err))

			entry.Retries++
			if entry.Retries >= jp.cfg.MaxRetries {
				jp.logger.Warn("dropping journal entry (max retries reached)", zap.String("entry_id", entry.ID))
				_ = jp.store.Remove(entry)
				continue
			}
			if err := jp.store.Requeue(entry); err != nil {
				jp.logger.Error("failed to requeue journal entry", zap.Error(err))
			}
			continue
		}

		if err := jp.store.Remove(entry); err != nil {
			jp.logger.Warn("failed to purge flushed journal entry", zap.Error(err))
		}
	}
	return nil
}

// Record writes the activity immediately when the database is online and parks it in the
// journal otherwise.
func (jp *JournalProcessor) Record(ctx context.Context, activity domain.Activity) error {
	if jp == nil || jp.store == nil {
		return fmt.Errorf("journal processor not configured")
	}

	entry := journal.NewEntry(activity)
	if jp.monitor == nil || jp.monitor.IsOnline() {
		err := jp.activities.Append(ctx, entry.Activity)
		if err == nil {
			return nil
		}
		jp.logger.Warn("immediate activity write failed, journaling", zap.Error(err))
	}
	return jp.store.Enqueue(entry)
}

// Backlog returns the number of journaled entries.
func (jp *JournalProcessor) Backlog() int {
	if jp == nil || jp.store == nil {
		return 0
	}
	size, err := jp.store.Size()
	if err != nil {
		return 0
	}
	return size
}
