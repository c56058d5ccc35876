package http

import (
	"net/http"

	"social/internal/adapters/http/request"
	"social/internal/adapters/http/response"
	"social/internal/adapters/http/validator"
	"social/internal/domain"
	"social/internal/logger"
)

type AuthHandler struct {
	svc domain.AccountService
	log logger.Logger

	decoder   request.RequestDecoder
	writer    response.ResponseWriter
	validator validator.Validator
}

func NewAuthHandler(
	svc domain.AccountService,
	log logger.Logger,
	d request.RequestDecoder,
	w response.ResponseWriter,
	v validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		svc:       svc,
		log:       log,
		decoder:   d,
		writer:    w,
		validator: v,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.RegisterRequest
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

	reg, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, h.writer, h.log, err, "failed to register user")
		return
	}

	h.writer.Write(w, http.StatusCreated, &response.Response{
		Message: "User created. Please confirm your email",
		Data:    reg.User,
	})
}

func (h *AuthHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Confirm(r.Context(), r.PathValue("token")); err != nil {
		writeError(w, r, h.writer, h.log, err, "failed to confirm user")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "User confirmed.",
	})
}

func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.LoginRequest
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

	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, h.writer, h.log, err, "failed to sign in")
		return
	}

	// OAuth2 clients read the token from the top level of the body.
	h.writer.JSON(w, http.StatusOK, res)
}
