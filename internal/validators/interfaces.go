// Package validators checks the wire models of the task service before they
// reach the task store: batch requests, their actions and login accounts.
package validators

import "context"

// Validator checks obj. A non-empty fields list narrows the check to the
// named fields, otherwise every rule applicable to obj runs.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
