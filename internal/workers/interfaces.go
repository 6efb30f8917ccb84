// Package workers runs the background jobs of the client. Each worker is
// started with the application context and stopped on shutdown.
package workers

import "context"

// Worker is a background job. Run must not block; Stop blocks until the
// job has exited.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
