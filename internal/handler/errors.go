package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the server
// configuration names no HTTP address.
var errNoHandlersAreCreated = errors.New("no handlers are created")
