package models

import "errors"

// Errors returned by the node model.
var (
	// ErrMalformedRemoteEntity is returned when a remote payload misses its
	// identifier or has the wrong entity type.
	ErrMalformedRemoteEntity = errors.New("malformed remote entity")

	// ErrGIDAlreadyAssigned is returned when a node that already carries a
	// gid is given a different one.
	ErrGIDAlreadyAssigned = errors.New("gid already assigned")

	// ErrNotCreatedRemotely is returned when an update is requested for a
	// node that has no gid yet.
	ErrNotCreatedRemotely = errors.New("node was not created remotely")

	// ErrNoParent is returned when a task without a parent list is asked
	// for its create action.
	ErrNoParent = errors.New("task has no parent list")

	// ErrParentNotSynced is returned when the parent list of a task has not
	// been created remotely yet.
	ErrParentNotSynced = errors.New("parent list has no gid")

	// ErrInvalidLocalContent is returned when local JSON does not fit the
	// node kind it is applied to.
	ErrInvalidLocalContent = errors.New("invalid local content")
)
