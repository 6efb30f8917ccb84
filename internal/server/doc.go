// Package server runs the HTTP transport of the task service and shuts it
// down gracefully on SIGINT, SIGTERM or SIGQUIT.
package server
