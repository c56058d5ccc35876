package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"social/internal/domain"
	"social/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	TaskStream       = "social:tasks"
	taskStreamMaxLen = 10000
)

// TaskQueue keeps tasks in a redis stream. Entries are deleted on ack, so a
// task read but not acked before a crash runs again on the next poll.
type TaskQueue struct {
	registry *Registry
	stream   string
	log      logger.Logger
}

func NewTaskQueue(client *redis.Client, log logger.Logger) *TaskQueue {
	return &TaskQueue{
		registry: NewRegistry(client),
		stream:   TaskStream,
		log:      log,
	}
}

func (q *TaskQueue) Enqueue(ctx context.Context, task domain.Task) error {
	id, err := q.registry.Append(ctx, q.stream, task, taskStreamMaxLen)
	if err != nil {
		return err
	}

	q.log.Debug("task enqueued", "id", id, "type", task.Type)
	return nil
}

func (q *TaskQueue) Pending(ctx context.Context, limit int64) ([]domain.QueuedTask, error) {
	msgs, err := q.registry.GetRangeAsc(ctx, q.stream, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.QueuedTask, 0, len(msgs))
	var broken []string

	for _, msg := range msgs {
		task, err := decodeTask(msg)
		if err != nil {
			q.log.Warn("dropping malformed task", "id", msg.ID, "error", err)
			broken = append(broken, msg.ID)
			continue
		}
		out = append(out, domain.QueuedTask{ID: msg.ID, Task: task})
	}

	if err := q.registry.Ack(ctx, q.stream, broken); err != nil {
		return nil, err
	}

	return out, nil
}

func (q *TaskQueue) Ack(ctx context.Context, ids []string) error {
	return q.registry.Ack(ctx, q.stream, ids)
}

func decodeTask(msg redis.XMessage) (domain.Task, error) {
	var task domain.Task

	var raw []byte
	switch v := msg.Values["data"].(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return task, fmt.Errorf("unexpected data field %T", v)
	}

	if err := json.Unmarshal(raw, &task); err != nil {
		return task, fmt.Errorf("task unmarshal failed: %w", err)
	}
	return task, nil
}
