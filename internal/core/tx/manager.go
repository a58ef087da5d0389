// Package tx provides transaction management abstractions.
// Domain services depend on Manager so that the storage backend decides
// what "atomic" means (a mutex for the in-memory store, BEGIN/COMMIT elsewhere).
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
type Manager interface {
	// RunInTransaction executes fn atomically with respect to other mutations.
	// If fn returns an error, changes made through the context are discarded.
	//
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
