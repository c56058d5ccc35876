package memory

import (
	"context"
	"strconv"
	"sync"

	"social/internal/domain"
)

// TaskQueue is a FIFO queue kept in process memory. Tasks are lost on restart.
type TaskQueue struct {
	mu     sync.Mutex
	nextID int64
	items  []domain.QueuedTask
}

func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

func (q *TaskQueue) Enqueue(ctx context.Context, task domain.Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	q.items = append(q.items, domain.QueuedTask{
		ID:   strconv.FormatInt(q.nextID, 10),
		Task: task,
	})
	return nil
}

func (q *TaskQueue) Pending(ctx context.Context, limit int64) ([]domain.QueuedTask, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := int64(len(q.items))
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.QueuedTask, n)
	copy(out, q.items[:n])
	return out, nil
}

func (q *TaskQueue) Ack(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	acked := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		acked[id] = struct{}{}
	}

	kept := q.items[:0]
	for _, it := range q.items {
		if _, ok := acked[it.ID]; !ok {
			kept = append(kept, it)
		}
	}
	q.items = kept
	return nil
}

func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
