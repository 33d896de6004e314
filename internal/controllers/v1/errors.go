package v1

import (
	"errors"
	"net/http"

	"github.com/transport-ledger/backend/internal/directory"
	"github.com/transport-ledger/backend/internal/models"
	"github.com/transport-ledger/backend/internal/rowstore"
)

type httpError struct {
	Error string `json:"error" example:"the request body must not be empty"`
}

// status returns the appropriate status code for an error from the
// lower layers.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) ||
		errors.Is(err, directory.ErrLabelNotFound) ||
		errors.Is(err, rowstore.ErrRowIndex) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
)

// Notification errors
var errInvalidNotificationID = errors.New("the specified notification ID is not a valid UUID")
