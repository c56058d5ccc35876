// Package upload
package upload

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"social/internal/domain"
	"social/internal/logger"

	"github.com/google/uuid"
)

type Service struct {
	storage domain.ObjectStorage
	log     logger.Logger
	now     func() time.Time
}

func NewService(storage domain.ObjectStorage, log logger.Logger) domain.UploadService {
	return &Service{
		storage: storage,
		log:     log,
		now:     time.Now,
	}
}

func (s *Service) Upload(ctx context.Context, user *domain.User, name string, body io.Reader, size int64, contentType string) (*domain.UploadedFile, error) {
	name = cleanName(name)
	key := ObjectKey(s.now(), name)

	s.log.Info("uploading file", "user_id", user.ID, "key", key, "size", size)

	url, err := s.storage.Put(ctx, key, body, size, contentType)
	if err != nil {
		s.log.Error("upload failed", "key", key, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	return &domain.UploadedFile{
		Key:  key,
		Name: name,
		URL:  url,
		Size: size,
	}, nil
}

// ObjectKey lays uploads out by day: uploads/2024/1/31/<uuid>-<name>.
func ObjectKey(t time.Time, name string) string {
	t = t.UTC()
	return fmt.Sprintf("uploads/%d/%d/%d/%s-%s", t.Year(), t.Month(), t.Day(), uuid.NewString(), name)
}

func cleanName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return "file"
	}
	return strings.ReplaceAll(name, " ", "_")
}
