package domain

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrUnknownTaskType = errors.New("unknown task type")

type TaskType string

const (
	TaskSendEmail     TaskType = "send_email"
	TaskGenerateImage TaskType = "generate_image"
)

type Task struct {
	Type    TaskType        `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// QueuedTask is a task as read back from a queue, with the id used to ack it.
type QueuedTask struct {
	ID   string
	Task Task
}

type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type GenerateImagePayload struct {
	PostID int64  `json:"post_id"`
	Prompt string `json:"prompt"`
}

func NewTask(t TaskType, payload any) (Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Task{}, err
	}
	return Task{Type: t, Payload: raw}, nil
}

type TaskQueue interface {
	Enqueue(ctx context.Context, task Task) error
	Pending(ctx context.Context, limit int64) ([]QueuedTask, error)
	Ack(ctx context.Context, ids []string) error
}
