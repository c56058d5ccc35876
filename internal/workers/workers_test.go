package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"social/internal/adapters/memory"
	"social/internal/domain"
	"social/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	ran  []domain.TaskType
	fail domain.TaskType
}

func (r *recordingRunner) Run(ctx context.Context, task domain.Task) error {
	r.ran = append(r.ran, task.Type)
	if task.Type == r.fail {
		return errors.New("provider down")
	}
	return nil
}

func enqueue(t *testing.T, q domain.TaskQueue, typ domain.TaskType) {
	t.Helper()
	task, err := domain.NewTask(typ, map[string]string{})
	require.NoError(t, err)
	require.NoError(t, q.Enqueue(context.Background(), task))
}

func TestTaskDispatchWorker_RunsAndAcks(t *testing.T) {
	q := memory.NewTaskQueue()
	enqueue(t, q, domain.TaskSendEmail)
	enqueue(t, q, domain.TaskGenerateImage)
	enqueue(t, q, domain.TaskSendEmail)

	runner := &recordingRunner{fail: domain.TaskGenerateImage}
	w := NewTaskDispatchWorker(q, runner, logger.Discard())

	assert.Equal(t, "task_dispatch", w.Name())
	require.NoError(t, w.Run(context.Background()))

	assert.Equal(t, []domain.TaskType{
		domain.TaskSendEmail,
		domain.TaskGenerateImage,
		domain.TaskSendEmail,
	}, runner.ran)
	assert.Equal(t, 0, q.Len(), "failed tasks are acknowledged too")

	require.NoError(t, w.Run(context.Background()))
	assert.Len(t, runner.ran, 3)
}

type countingWorker struct {
	runs atomic.Int32
}

func (w *countingWorker) Name() string { return "counting" }

func (w *countingWorker) Run(ctx context.Context) error {
	w.runs.Add(1)
	return nil
}

func TestScheduler_RunByDurationStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &countingWorker{}

	NewScheduler(logger.Discard()).RunByDuration(ctx, 5*time.Millisecond, w)

	assert.Eventually(t, func() bool { return w.runs.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	stopped := w.runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, w.runs.Load())
}

func TestManager_StartDrainsQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := memory.NewTaskQueue()
	enqueue(t, q, domain.TaskSendEmail)

	m := NewManager(logger.Discard(), NewScheduler(logger.Discard()), &ManagerServices{
		Queue:        q,
		Runner:       &recordingRunner{},
		PollInterval: 5 * time.Millisecond,
	})
	m.Start(ctx)

	assert.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
}
