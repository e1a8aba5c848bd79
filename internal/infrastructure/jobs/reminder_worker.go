package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
	"studio-ops.backend/internal/domain/entities"
	"studio-ops.backend/internal/domain/gateways"
	"studio-ops.backend/pkg/logger"
	"studio-ops.backend/pkg/metrics"
)

const defaultBatchSize = 50

// ReminderHandler re-validates state and posts one reminder
type ReminderHandler interface {
	Handle(ctx context.Context, job entities.ReminderJob) error
}

// ReminderWorker polls the reminder queue and dispatches due jobs
type ReminderWorker struct {
	queue    gateways.ReminderQueue
	handler  ReminderHandler
	interval time.Duration
	batch    int
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewReminderWorker(queue gateways.ReminderQueue, handler ReminderHandler, interval time.Duration, batch int) *ReminderWorker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batch <= 0 {
		batch = defaultBatchSize
	}
	return &ReminderWorker{
		queue:    queue,
		handler:  handler,
		interval: interval,
		batch:    batch,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled or Stop is called.
func (w *ReminderWorker) Start(ctx context.Context) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() { w.processDue(ctx) }),
		gocron.WithName("reminder-worker"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	logger.Info(ctx, "Starting reminder worker", zap.Duration("interval", w.interval), zap.Int("batch", w.batch))
	s.Start()

	select {
	case <-ctx.Done():
	case <-w.stop:
	}

	logger.Info(ctx, "Reminder worker stopped")
	return s.Shutdown()
}

// Stop ends Start; further calls are no-ops.
func (w *ReminderWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
}

// processDue drains every due job, one batch at a time.
func (w *ReminderWorker) processDue(ctx context.Context) int {
	handled := 0
	for {
		if ctx.Err() != nil {
			return handled
		}
		due, err := w.queue.ClaimDue(ctx, w.now(), w.batch)
		if err != nil {
			logger.Error(ctx, "Failed to claim due reminders", zap.Error(err))
			return handled
		}
		for _, job := range due {
			w.dispatch(ctx, job)
			handled++
		}
		if len(due) < w.batch {
			return handled
		}
	}
}

func (w *ReminderWorker) dispatch(ctx context.Context, job entities.ReminderJob) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RemindersProcessed.WithLabelValues(string(job.Kind), "panic").Inc()
			logger.Error(ctx, "Reminder handler panicked", zap.String("job", job.ID()), zap.Any("panic", r))
		}
	}()

	err := w.handler.Handle(ctx, job)
	switch {
	case err == nil:
		metrics.RemindersProcessed.WithLabelValues(string(job.Kind), "ok").Inc()
	case errors.Is(err, context.Canceled):
		metrics.RemindersProcessed.WithLabelValues(string(job.Kind), "cancelled").Inc()
	default:
		metrics.RemindersProcessed.WithLabelValues(string(job.Kind), "error").Inc()
		logger.Error(ctx, "Reminder failed", zap.String("job", job.ID()), zap.Error(err))
	}
}
