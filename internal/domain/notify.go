package domain

import (
	"context"
	"errors"
	"io"
)

var ErrUploadFailed = errors.New("There was an error uploading the file.")

// Mailer delivers a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ImageGenerator turns a prompt into a hosted image URL.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type UploadedFile struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	URL  string `json:"file_url"`
	Size int64  `json:"size"`
}

// ObjectStorage stores an uploaded file and reports where it can be fetched.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

type UploadService interface {
	Upload(ctx context.Context, user *User, name string, body io.Reader, size int64, contentType string) (*UploadedFile, error)
}
