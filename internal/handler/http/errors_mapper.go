package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:         http.StatusBadRequest,
	service.ErrWrongSecret:                 http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid:     http.StatusUnauthorized,
	service.ErrVersionIsNotSpecified:       http.StatusBadRequest,
	service.ErrValidationNoActionsProvided: http.StatusBadRequest,
	service.ErrValidationNoUserID:          http.StatusBadRequest,
	service.ErrBatchHashMismatch:           http.StatusBadRequest,

	store.ErrNoUserWasFound: http.StatusNotFound,
	store.ErrTaskNotFound:   http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
