package http

import (
	"errors"
	"net/http"

	"social/internal/adapters/http/middleware"
	"social/internal/adapters/http/response"
	"social/internal/domain"
	"social/internal/logger"
)

// writeError maps domain errors to a status and message. Anything it does not
// recognise is logged and reported as fallback with a 500.
func writeError(w http.ResponseWriter, r *http.Request, writer response.ResponseWriter, log logger.Logger, err error, fallback string) {
	switch {
	case domain.IsUnauthorized(err):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writer.Write(w, http.StatusUnauthorized, &response.Response{Message: err.Error()})

	case errors.Is(err, domain.ErrEmailAlreadyExists):
		writer.Write(w, http.StatusBadRequest, &response.Response{
			Message: "A user with that email already registered",
		})

	case errors.Is(err, domain.ErrPostNotFound):
		msg := "Post not found"
		var nf *domain.PostNotFoundError
		if errors.As(err, &nf) {
			msg = nf.Error()
		}
		writer.Write(w, http.StatusNotFound, &response.Response{Message: msg})

	case errors.Is(err, domain.ErrPostAlreadyLiked):
		writer.Write(w, http.StatusBadRequest, &response.Response{Message: "Post already liked"})

	case errors.Is(err, domain.ErrInvalidCurrentPassword):
		writer.Write(w, http.StatusBadRequest, &response.Response{Message: err.Error()})

	case errors.Is(err, domain.ErrUploadFailed):
		middleware.LoggerFrom(r.Context(), log).Error("http: upload failed", "error", err)
		writer.Write(w, http.StatusInternalServerError, &response.Response{
			Message: domain.ErrUploadFailed.Error(),
		})

	default:
		middleware.LoggerFrom(r.Context(), log).Error("http: "+fallback, "error", err)
		writer.Write(w, http.StatusInternalServerError, &response.Response{Message: fallback})
	}
}
