package middleware

import (
	"context"
	"net/http"
	"strings"

	"social/internal/adapters/http/response"
	"social/internal/core/auth"
	"social/internal/domain"
	"social/internal/logger"
)

type userKey struct{}

func GetUser(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey{}).(*domain.User)
	return u, ok && u != nil
}

func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// Bearer resolves the Authorization header into the current user. Every
// authentication failure is a 401 carrying the core's reason.
func Bearer(authenticator auth.Authenticator, writer response.ResponseWriter, log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, writer, "Not authenticated")
				return
			}

			user, err := authenticator.CurrentUserFromAccessToken(r.Context(), token)
			if err != nil {
				if domain.IsUnauthorized(err) {
					unauthorized(w, writer, err.Error())
					return
				}

				LoggerFrom(r.Context(), log).Error("http: failed to resolve user", "error", err)
				writer.Write(w, http.StatusInternalServerError, &response.Response{
					Message: "internal server error",
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func unauthorized(w http.ResponseWriter, writer response.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writer.Write(w, http.StatusUnauthorized, &response.Response{Message: msg})
}
