// Package delivery defines the contract every transport-level server obeys.
package delivery

import "context"

// Delivery is implemented by each server the application can expose. Serve
// blocks until the server stops; shutdown is driven by the Fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
