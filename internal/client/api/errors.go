package api

import (
	"fmt"
	"net/http"

	"github.com/olivecrm/olivecrm/internal/common"
)

// Error is a backend error, decoded from the `{"error": "..."}` envelope.
// It matches the common sentinel for its status class, so callers can write
// errors.Is(err, common.ErrorNotFound) without looking at status codes.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

func (e *Error) Is(target error) bool {
	switch target {
	case common.ErrorUnauthorized:
		return e.Status == http.StatusUnauthorized
	case common.ErrorForbidden:
		return e.Status == http.StatusForbidden
	case common.ErrorNotFound:
		return e.Status == http.StatusNotFound
	case common.ErrorAlreadyExists:
		return e.Status == http.StatusConflict
	case common.ErrorValidation:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	case common.ErrorInternal:
		return e.Status >= 500
	}
	return false
}
