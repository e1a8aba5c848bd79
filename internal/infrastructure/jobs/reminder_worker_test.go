package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"studio-ops.backend/internal/domain/entities"
	"studio-ops.backend/pkg/metrics"
)

type queueStub struct {
	mu      sync.Mutex
	pending []entities.ReminderJob
	err     error
	claims  int
}

func (q *queueStub) Enqueue(_ context.Context, jobs ...entities.ReminderJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, jobs...)
	return nil
}

func (q *queueStub) RemoveByPrefix(_ context.Context, _ string) (int, error) { return 0, nil }

func (q *queueStub) ClaimDue(_ context.Context, now time.Time, limit int) ([]entities.ReminderJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.claims++
	if q.err != nil {
		return nil, q.err
	}
	var due, rest []entities.ReminderJob
	for _, j := range q.pending {
		if !j.RunAt.After(now) && len(due) < limit {
			due = append(due, j)
			continue
		}
		rest = append(rest, j)
	}
	q.pending = rest
	return due, nil
}

type handlerStub struct {
	mu      sync.Mutex
	handled []entities.ReminderJob
	err     error
	panics  bool
}

func (h *handlerStub) Handle(_ context.Context, job entities.ReminderJob) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panics {
		panic("boom")
	}
	h.handled = append(h.handled, job)
	return h.err
}

func (h *handlerStub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func dueJobs(n int, now time.Time) []entities.ReminderJob {
	jobs := make([]entities.ReminderJob, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, entities.ReminderJob{
			Kind:          entities.ReminderProjectDeadline,
			SubjectID:     uuid.New(),
			MinutesBefore: i,
			RunAt:         now.Add(-time.Minute),
		})
	}
	return jobs
}

func TestProcessDue_DrainsInBatches(t *testing.T) {
	now := time.Now()
	q := &queueStub{pending: dueJobs(5, now)}
	q.pending = append(q.pending, entities.ReminderJob{Kind: entities.ReminderProjectDeadline, SubjectID: uuid.New(), RunAt: now.Add(time.Hour)})
	h := &handlerStub{}
	w := NewReminderWorker(q, h, time.Millisecond, 2)
	w.now = func() time.Time { return now }

	require.Equal(t, 5, w.processDue(context.Background()))
	assert.Equal(t, 5, h.count())
	assert.Equal(t, 3, q.claims)
	assert.Len(t, q.pending, 1)
}

func TestProcessDue_ClaimError(t *testing.T) {
	q := &queueStub{err: errors.New("redis down")}
	h := &handlerStub{}
	w := NewReminderWorker(q, h, time.Millisecond, 10)

	assert.Equal(t, 0, w.processDue(context.Background()))
	assert.Equal(t, 0, h.count())
}

func TestProcessDue_HandlerErrorsDoNotStopBatch(t *testing.T) {
	now := time.Now()
	q := &queueStub{pending: dueJobs(3, now)}
	h := &handlerStub{err: errors.New("chat down")}
	w := NewReminderWorker(q, h, time.Millisecond, 10)
	w.now = func() time.Time { return now }

	before := testutil.ToFloat64(metrics.RemindersProcessed.WithLabelValues(string(entities.ReminderProjectDeadline), "error"))
	assert.Equal(t, 3, w.processDue(context.Background()))
	after := testutil.ToFloat64(metrics.RemindersProcessed.WithLabelValues(string(entities.ReminderProjectDeadline), "error"))
	assert.Equal(t, 3.0, after-before)
}

func TestDispatch_RecoversPanic(t *testing.T) {
	h := &handlerStub{panics: true}
	w := NewReminderWorker(&queueStub{}, h, time.Millisecond, 1)

	assert.NotPanics(t, func() {
		w.dispatch(context.Background(), dueJobs(1, time.Now())[0])
	})
}

func TestNewReminderWorker_Defaults(t *testing.T) {
	w := NewReminderWorker(&queueStub{}, &handlerStub{}, 0, 0)
	assert.Equal(t, 5*time.Second, w.interval)
	assert.Equal(t, defaultBatchSize, w.batch)
}

func TestStart_RunsUntilStopped(t *testing.T) {
	now := time.Now()
	q := &queueStub{pending: dueJobs(2, now)}
	h := &handlerStub{}
	w := NewReminderWorker(q, h, 10*time.Millisecond, 10)

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	require.Eventually(t, func() bool { return h.count() == 2 }, 2*time.Second, 10*time.Millisecond)
	w.Stop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestStart_StopsByContext(t *testing.T) {
	w := NewReminderWorker(&queueStub{}, &handlerStub{}, 10*time.Millisecond, 10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestStop_Twice(t *testing.T) {
	w := NewReminderWorker(&queueStub{}, &handlerStub{}, 10*time.Millisecond, 10)

	assert.NotPanics(t, func() {
		w.Stop()
		w.Stop()
	})

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stopped worker kept running")
	}
}
