package http

import (
	"errors"
	"fmt"
	"net/http"

	"social/internal/adapters/http/middleware"
	"social/internal/adapters/http/response"
	"social/internal/domain"
	"social/internal/logger"
)

const uploadMemory = 1 << 20

type UploadHandler struct {
	svc      domain.UploadService
	log      logger.Logger
	writer   response.ResponseWriter
	maxBytes int64
}

func NewUploadHandler(svc domain.UploadService, log logger.Logger, w response.ResponseWriter, maxBytes int64) *UploadHandler {
	return &UploadHandler{
		svc:      svc,
		log:      log,
		writer:   w,
		maxBytes: maxBytes,
	}
}

func (h *UploadHandler) Store(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.writer.Write(w, http.StatusUnauthorized, &response.Response{
			Message: "Not authenticated",
		})
		return
	}

	if r.ContentLength > h.maxBytes {
		h.writer.Write(w, http.StatusRequestEntityTooLarge, &response.Response{
			Message: fmt.Sprintf("file exceeds the %d byte limit", h.maxBytes),
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(uploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writer.Write(w, http.StatusRequestEntityTooLarge, &response.Response{
				Message: fmt.Sprintf("file exceeds the %d byte limit", h.maxBytes),
			})
			return
		}
		h.writer.Write(w, http.StatusBadRequest, &response.Response{
			Message: "invalid multipart form",
		})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writer.WriteValidationError(w, map[string]string{
			"file": "The file field is required.",
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	res, err := h.svc.Upload(r.Context(), user, header.Filename, file, header.Size, contentType)
	if err != nil {
		writeError(w, r, h.writer, h.log, err, "failed to upload file")
		return
	}

	h.writer.Write(w, http.StatusCreated, &response.Response{
		Message: fmt.Sprintf("%s uploaded successfully", header.Filename),
		Data:    res,
	})
}
