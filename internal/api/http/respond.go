package http

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/zoneboy/zilcycler/internal/logger"
	"github.com/zoneboy/zilcycler/internal/repository"
	"github.com/zoneboy/zilcycler/internal/security"
	"github.com/zoneboy/zilcycler/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// unrecognized becomes a generic 500; the underlying detail is logged
// server-side and never forwarded to the caller.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var message string

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, service.ErrInvalidCredentials.Error()
	case errors.Is(err, security.ErrInvalidToken), errors.Is(err, security.ErrExpiredToken):
		status, message = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrForbidden):
		status, message = http.StatusForbidden, service.ErrForbidden.Error()
	case errors.Is(err, service.ErrEmailTaken):
		status, message = http.StatusConflict, service.ErrEmailTaken.Error()
	case errors.Is(err, service.ErrInvalidOrExpiredCode):
		status, message = http.StatusBadRequest, service.ErrInvalidOrExpiredCode.Error()
	case errors.Is(err, service.ErrRateLimited):
		status, message = http.StatusTooManyRequests, service.ErrRateLimited.Error()
	case errors.Is(err, service.ErrInsufficientFunds):
		status, message = http.StatusUnprocessableEntity, service.ErrInsufficientFunds.Error()
	case errors.Is(err, service.ErrMaintenanceMode), errors.Is(err, service.ErrRegistrationsClosed):
		status, message = http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, service.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, repository.ErrAlreadyCompleted), errors.Is(err, repository.ErrNotPending):
		status, message = http.StatusConflict, err.Error()
	default:
		logger.Error("Unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		status, message = http.StatusInternalServerError, "internal server error"
	}

	respondJSON(w, status, errorResponse{Error: message})
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// clientAddr extracts the requester address used as a rate-limit key.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
