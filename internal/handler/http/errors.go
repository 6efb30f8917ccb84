package http

import (
	"errors"

	"github.com/MKhiriev/go-notes-sync/internal/utils"
)

var (
	ErrMissingAuthorization = errors.New("authorization header is missing")
	ErrMalformedBearer      = utils.ErrMalformedBearer
)
