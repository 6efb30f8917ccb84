package service

import "errors"

// Errors of the task service engine.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongSecret         = errors.New("wrong account secret")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")

	ErrValidationNoActionsProvided = errors.New("no actions provided")
	ErrValidationNoUserID          = errors.New("no user ID was given")
	ErrBatchHashMismatch           = errors.New("batch hash does not match the action list")
	ErrUnsupportedAction           = errors.New("unsupported action type")
)

// Errors of the sync client.
var (
	// ErrSyncInProgress is returned by [ClientSyncJob.Start] while another
	// pass is still running.
	ErrSyncInProgress = errors.New("sync is already in progress")

	// ErrSyncCancelled ends a pass that was cancelled between two units of
	// work.
	ErrSyncCancelled = errors.New("sync cancelled")

	// ErrParentNotFound is returned when a note or task cannot be placed
	// because its parent folder has no counterpart on the other side.
	ErrParentNotFound = errors.New("parent was not found")

	// ErrUnknownSyncAction is returned for an entity classified as ERROR.
	ErrUnknownSyncAction = errors.New("unknown sync action")

	// ErrMissedAfterSync is returned when a synced row has no remote
	// counterpart right after the pass committed.
	ErrMissedAfterSync = errors.New("local item has no remote counterpart after sync")
)
