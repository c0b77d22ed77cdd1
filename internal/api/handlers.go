package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/alexanderramin/estimator/internal/service"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const maxBodyBytes = 1 << 20

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{Error: &apiError{Code: code, Message: message}}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode error response", "error", err)
	}
}

// respondServiceError maps service errors onto status codes. Unexpected
// errors are logged and reported without their text.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case service.IsNotFound(err):
		s.respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrValidation):
		s.respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case service.IsConflict(err):
		s.respondError(w, http.StatusConflict, "conflict", err.Error())
	default:
		s.logger.ErrorContext(r.Context(), "request failed", "action", action, "path", r.URL.Path, "error", err)
		s.respondError(w, http.StatusInternalServerError, "internal_error", "failed to "+action)
	}
}

// decodeBody reads a JSON request body into dst. It writes the 400
// response itself and reports false on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
