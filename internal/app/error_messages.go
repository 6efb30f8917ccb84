// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the response texts of the task service, shared by the
// HTTP handlers and middleware so the wording stays the same everywhere.
package app

const (
	// MsgInvalidJSON is written when a request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is written when an account misses its name or
	// secret.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidUserSecret is written when the account secret is wrong.
	MsgInvalidUserSecret = "invalid user/secret"

	MsgInternalServerError = "internal server error"

	// MsgNoUserIDProvided is written when an authenticated route finds no
	// user id in the request context.
	MsgNoUserIDProvided = "no user ID was given"

	MsgGettingTaskListsFailed = "error getting task lists"

	// MsgIntegrityCheckFailed is written when the hash of a batch does not
	// match its action list.
	MsgIntegrityCheckFailed = "batch hash does not match the action list"

	MsgInvalidGzip = "Invalid gzip data"
)
