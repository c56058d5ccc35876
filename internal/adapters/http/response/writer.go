// Package response
package response

import (
	"encoding/json"
	"net/http"

	"social/internal/logger"
)

type Response struct {
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Meta    any               `json:"meta,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type ResponseWriter interface {
	Write(w http.ResponseWriter, status int, res *Response)
	WriteValidationError(w http.ResponseWriter, errs map[string]string)
	JSON(w http.ResponseWriter, status int, v any)
}

type JSONWriter struct {
	log logger.Logger
}

func NewJSONWriter(log logger.Logger) *JSONWriter {
	return &JSONWriter{log: log}
}

func (jw *JSONWriter) Write(w http.ResponseWriter, status int, res *Response) {
	jw.JSON(w, status, res)
}

func (jw *JSONWriter) WriteValidationError(w http.ResponseWriter, errs map[string]string) {
	jw.JSON(w, http.StatusUnprocessableEntity, &Response{
		Message: "The given data was invalid.",
		Errors:  errs,
	})
}

func (jw *JSONWriter) JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		jw.log.Error("http: failed to encode response", "error", err)
	}
}
