package tasks

import (
	"context"
	"fmt"
	"time"

	"social/internal/domain"
	"social/internal/event"
	"social/internal/logger"
)

const enqueueTimeout = 5 * time.Second

const registrationSubject = "Please confirm your email"

func RegistrationEmail(to, confirmationURL string) domain.SendEmailPayload {
	body := fmt.Sprintf(`Hi there,
You have successfully signed up!
Please confirm your email by clicking on the link below:
%s
`, confirmationURL)

	return domain.SendEmailPayload{
		To:      to,
		Subject: registrationSubject,
		Body:    body,
	}
}

// Subscribe turns bus events into queued tasks so that request handlers never
// wait on mail or image providers.
func Subscribe(bus *event.Bus, queue domain.TaskQueue, log logger.Logger) {
	enqueue := func(t domain.TaskType, payload any) {
		task, err := domain.NewTask(t, payload)
		if err != nil {
			log.Error("failed to build task", "type", t, "error", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
		defer cancel()

		if err := queue.Enqueue(ctx, task); err != nil {
			log.Error("failed to enqueue task", "type", t, "error", err)
		}
	}

	bus.Subscribe(domain.TopicUserRegistered, func(e any) {
		evt, ok := e.(domain.EventUserRegistered)
		if !ok {
			return
		}
		enqueue(domain.TaskSendEmail, RegistrationEmail(evt.Email, evt.ConfirmationURL))
	})

	bus.Subscribe(domain.TopicPostCreated, func(e any) {
		evt, ok := e.(domain.EventPostCreated)
		if !ok || evt.Prompt == "" {
			return
		}
		enqueue(domain.TaskGenerateImage, domain.GenerateImagePayload{
			PostID: evt.Post.ID,
			Prompt: evt.Prompt,
		})
	})
}
