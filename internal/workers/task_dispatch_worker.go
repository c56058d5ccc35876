package workers

import (
	"context"
	"fmt"
	"time"

	"social/internal/domain"
	"social/internal/logger"
)

const (
	taskBatchSize = 50
	taskTimeout   = 30 * time.Second
)

type TaskRunner interface {
	Run(ctx context.Context, task domain.Task) error
}

// TaskDispatchWorker drains the task queue. A failed task is logged and
// acknowledged like a successful one.
type TaskDispatchWorker struct {
	queue  domain.TaskQueue
	runner TaskRunner
	log    logger.Logger
}

func NewTaskDispatchWorker(queue domain.TaskQueue, runner TaskRunner, log logger.Logger) Worker {
	return &TaskDispatchWorker{
		queue:  queue,
		runner: runner,
		log:    log,
	}
}

func (w *TaskDispatchWorker) Name() string {
	return "task_dispatch"
}

func (w *TaskDispatchWorker) Run(ctx context.Context) error {
	pending, err := w.queue.Pending(ctx, taskBatchSize)
	if err != nil {
		return fmt.Errorf("failed to read pending tasks: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	done := make([]string, 0, len(pending))
	for _, qt := range pending {
		if ctx.Err() != nil {
			break
		}

		taskCtx, cancel := context.WithTimeout(ctx, taskTimeout)
		err := w.runner.Run(taskCtx, qt.Task)
		cancel()

		if err != nil {
			w.log.Error("task failed", "id", qt.ID, "type", qt.Task.Type, "error", err.Error())
		}
		done = append(done, qt.ID)
	}

	if err := w.queue.Ack(ctx, done); err != nil {
		return fmt.Errorf("failed to ack tasks: %w", err)
	}

	return nil
}
