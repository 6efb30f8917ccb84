package server

// Server defines the lifecycle of the transport server.
type Server interface {
	// RunServer serves requests until a stop signal arrives.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}
