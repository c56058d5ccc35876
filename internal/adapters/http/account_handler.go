package http

import (
	"net/http"

	"social/internal/adapters/http/middleware"
	"social/internal/adapters/http/request"
	"social/internal/adapters/http/response"
	"social/internal/adapters/http/validator"
	"social/internal/domain"
	"social/internal/logger"
)

type AccountHandler struct {
	svc domain.AccountService
	log logger.Logger

	decoder   request.RequestDecoder
	writer    response.ResponseWriter
	validator validator.Validator
}

func NewAccountHandler(
	svc domain.AccountService,
	log logger.Logger,
	d request.RequestDecoder,
	w response.ResponseWriter,
	v validator.Validator,
) *AccountHandler {
	return &AccountHandler{
		svc:       svc,
		log:       log,
		decoder:   d,
		writer:    w,
		validator: v,
	}
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.writer.Write(w, http.StatusUnauthorized, &response.Response{
			Message: "Not authenticated",
		})
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Data: user,
	})
}

func (h *AccountHandler) Password(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.writer.Write(w, http.StatusUnauthorized, &response.Response{
			Message: "Not authenticated",
		})
		return
	}

	var req domain.AccountPasswordRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		h.writer.Write(w, http.StatusBadRequest, &response.Response{
			Message: err.Error(),
		})
		return
	}

	if errs := h.validator.Validate(&req); len(errs) > 0 {
		h.writer.WriteValidationError(w, errs)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), user, req); err != nil {
		writeError(w, r, h.writer, h.log, err, "failed to change password")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "Password changed successfully",
	})
}
