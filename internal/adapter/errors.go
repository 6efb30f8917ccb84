package adapter

import "errors"

var (
	// ErrNetworkFailure marks every failure the user can fix by retrying
	// the sync later: transport errors, rejected credentials and non-2xx
	// answers.
	ErrNetworkFailure = errors.New("network failure")

	// ErrActionFailure marks a response that does not match the request,
	// such as a missing result or a create without a new id.
	ErrActionFailure = errors.New("action failure")

	ErrUnauthorized        = errors.New("client unauthorized")
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")
	ErrNotLoggedIn         = errors.New("not logged in")
)
