// Package tx decouples domain services from the database driver.
package tx

import "context"

// Manager runs a function inside a database transaction: commit when fn
// returns nil, rollback otherwise. Nested calls reuse the transaction
// already carried in ctx.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager additionally supports read-only transactions for
// query paths that never write.
type ReadOnlyManager interface {
	Manager

	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
