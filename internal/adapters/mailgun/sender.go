// Package mailgun sends plain-text email through the Mailgun HTTP API.
package mailgun

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"social/internal/logger"

	mg "github.com/mailgun/mailgun-go/v4"
)

// APIResponseError is returned when Mailgun answers with a non-2xx status.
type APIResponseError struct {
	StatusCode int
}

func (e *APIResponseError) Error() string {
	return fmt.Sprintf("API request with status code %d failed", e.StatusCode)
}

type Sender struct {
	client *mg.MailgunImpl
	from   string
	log    logger.Logger
}

// NewSender builds a sender for domain. baseURL is the API host without the
// version segment, e.g. https://api.mailgun.net.
func NewSender(baseURL, domain, apiKey string, log logger.Logger) *Sender {
	client := mg.NewMailgun(domain, apiKey)
	client.SetAPIBase(strings.TrimRight(baseURL, "/") + "/v3")
	client.SetClient(&http.Client{Timeout: 10 * time.Second})

	return &Sender{
		client: client,
		from:   fmt.Sprintf("Social <mailgun@%s>", domain),
		log:    log,
	}
}

func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	s.log.Debug("sending email", "to", logger.MaskEmail(to), "subject", subject)

	msg := s.client.NewMessage(s.from, subject, body, to)

	_, id, err := s.client.Send(ctx, msg)
	if err != nil {
		var unexpected *mg.UnexpectedResponseError
		if errors.As(err, &unexpected) {
			s.log.Error("error sending email", "status", unexpected.Actual)
			return &APIResponseError{StatusCode: unexpected.Actual}
		}
		return fmt.Errorf("mailgun request failed: %w", err)
	}

	s.log.Debug("email queued", "id", id)
	return nil
}
