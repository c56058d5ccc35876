// Package openai generates post images with the OpenAI images API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"social/internal/logger"

	goopenai "github.com/sashabaranov/go-openai"
)

var ErrNoImage = errors.New("image generation returned no data")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("image generation failed with status code %d", e.StatusCode)
	}
	return fmt.Sprintf("image generation failed with status code %d: %s", e.StatusCode, e.Message)
}

type ImageGenerator struct {
	client *goopenai.Client
	size   string
	log    logger.Logger
}

// NewImageGenerator targets baseURL without the version segment, e.g.
// https://api.openai.com.
func NewImageGenerator(baseURL, apiKey, size string, log logger.Logger) *ImageGenerator {
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"
	cfg.HTTPClient = &http.Client{Timeout: 90 * time.Second}

	return &ImageGenerator{
		client: goopenai.NewClientWithConfig(cfg),
		size:   size,
		log:    log,
	}
}

func (g *ImageGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.log.Debug("requesting image generation", "model", goopenai.CreateImageModelDallE3, "size", g.size)

	resp, err := g.client.CreateImage(ctx, goopenai.ImageRequest{
		Model:          goopenai.CreateImageModelDallE3,
		Prompt:         prompt,
		N:              1,
		Size:           g.size,
		ResponseFormat: goopenai.CreateImageResponseFormatURL,
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return "", &APIError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		var reqErr *goopenai.RequestError
		if errors.As(err, &reqErr) {
			return "", &APIError{StatusCode: reqErr.HTTPStatusCode}
		}
		return "", fmt.Errorf("image generation request failed: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", ErrNoImage
	}

	return resp.Data[0].URL, nil
}
