// Package unitofwork defines the transaction boundary used by application services.
package unitofwork

import "context"

// Options tune a single unit of work.
type Options struct {
	// ReadOnly marks the unit of work as a pure read. Stores that support it
	// open a read-only transaction.
	ReadOnly bool
}

// Manager runs fn inside one transactional scope. fn receives a context that
// carries the scope; repositories resolve their connection from it. Nested
// calls join the outer scope. The scope commits when fn returns nil and rolls
// back on error or panic.
type Manager interface {
	Do(ctx context.Context, opts Options, fn func(ctx context.Context) error) error
}

// Noop runs fn directly. Used by the in-memory adapters.
type Noop struct{}

func (Noop) Do(ctx context.Context, _ Options, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ Manager = Noop{}
