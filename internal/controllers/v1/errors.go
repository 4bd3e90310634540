package v1

import (
	"errors"
	"net/http"

	"github.com/pennywise-app/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no pot matching your query"`
}

// status returns the appropriate HTTP status for an error.
//
// Infrastructure failures map to 500 and may be retried by the caller,
// missing or foreign resources map to 404, everything else is a request
// the caller needs to fix before retrying.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Query errors
var (
	errSortKeyInvalid  = errors.New("the specified sort key is invalid")
	errPageSizeInvalid = errors.New("the page size must be at least 1")
)
