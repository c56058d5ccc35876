package mailgun

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"social/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSender_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/mg.example.com/messages", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "api", user)
		assert.Equal(t, "key-123", pass)

		assert.Equal(t, "bob@x.com", r.FormValue("to"))
		assert.Equal(t, "Test subject", r.FormValue("subject"))
		assert.Equal(t, "Test body", r.FormValue("text"))
		assert.Equal(t, "Social <mailgun@mg.example.com>", r.FormValue("from"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"<1@mg.example.com>","message":"Queued. Thank you."}`))
	}))
	defer srv.Close()

	s := NewSender(srv.URL+"/", "mg.example.com", "key-123", logger.Discard())
	require.NoError(t, s.Send(context.Background(), "bob@x.com", "Test subject", "Test body"))
}

func TestSender_SendAPIError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		s := NewSender(srv.URL, "mg.example.com", "key-123", logger.Discard())
		err := s.Send(context.Background(), "bob@x.com", "Test subject", "Test body")
		srv.Close()

		var apiErr *APIResponseError
		require.True(t, errors.As(err, &apiErr), "status %d", status)
		assert.Equal(t, status, apiErr.StatusCode)
		assert.EqualError(t, err, fmt.Sprintf("API request with status code %d failed", status))
	}
}
