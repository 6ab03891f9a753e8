package v1

import (
	"errors"
	"net/http"

	"github.com/stuffd/backend/internal/models"
	"github.com/stuffd/backend/internal/payday"
)

type httpError struct {
	Error string `json:"error" example:"there is no envelope matching your query"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) || errors.Is(err, payday.ErrPartiallyApplied) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, payday.ErrSessionNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, payday.ErrWrongPhase) || errors.Is(err, payday.ErrRunFinished) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

var errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
