package http

import (
	"net/http"

	"social/internal/adapters/http/response"
)

type HealthHandler struct {
	writer response.ResponseWriter
}

func NewHealthHandler(w response.ResponseWriter) *HealthHandler {
	return &HealthHandler{writer: w}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	h.writer.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
