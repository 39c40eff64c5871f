package handlers

import (
	"errors"
	"net/http"

	"auraweb/internal/repository"
	"auraweb/internal/services"
)

// statusFromError maps the service/repository error taxonomy to HTTP codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAlreadyPaid):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrVerificationFailed):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
