// Package tasks executes queued background work: outgoing email and post
// image generation.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"social/internal/domain"
	"social/internal/logger"
)

type Handler func(ctx context.Context, payload json.RawMessage) error

type Runner struct {
	handlers map[domain.TaskType]Handler
	log      logger.Logger
}

func NewRunner(mailer domain.Mailer, images domain.ImageGenerator, posts domain.PostService, log logger.Logger) *Runner {
	r := &Runner{
		handlers: make(map[domain.TaskType]Handler),
		log:      log,
	}

	r.Register(domain.TaskSendEmail, func(ctx context.Context, raw json.RawMessage) error {
		var p domain.SendEmailPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("decode send_email payload: %w", err)
		}
		if err := mailer.Send(ctx, p.To, p.Subject, p.Body); err != nil {
			return err
		}
		log.Debug("email sent", "to", logger.MaskEmail(p.To), "subject", p.Subject)
		return nil
	})

	r.Register(domain.TaskGenerateImage, func(ctx context.Context, raw json.RawMessage) error {
		var p domain.GenerateImagePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("decode generate_image payload: %w", err)
		}
		url, err := images.Generate(ctx, p.Prompt)
		if err != nil {
			return err
		}
		if err := posts.AttachImage(ctx, p.PostID, url); err != nil {
			return fmt.Errorf("attach image to post %d: %w", p.PostID, err)
		}
		log.Debug("post image generated", "post_id", p.PostID)
		return nil
	})

	return r
}

func (r *Runner) Register(t domain.TaskType, h Handler) {
	r.handlers[t] = h
}

func (r *Runner) Run(ctx context.Context, task domain.Task) error {
	h, ok := r.handlers[task.Type]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownTaskType, task.Type)
	}
	return h(ctx, task.Payload)
}
