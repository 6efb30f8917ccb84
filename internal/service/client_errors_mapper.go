// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-notes-sync/internal/adapter"
	"github.com/MKhiriev/go-notes-sync/models"
)

// syncStateFromError translates the error that ended a pass into its
// terminal state. Transport and authentication failures are recoverable by
// running the pass again, everything else is an internal error.
func syncStateFromError(err error) models.SyncState {
	switch {
	case err == nil:
		return models.SyncStateSuccess
	case errors.Is(err, ErrSyncCancelled):
		return models.SyncStateCancelled
	case errors.Is(err, adapter.ErrNetworkFailure):
		return models.SyncStateNetworkError
	default:
		return models.SyncStateInternalError
	}
}
