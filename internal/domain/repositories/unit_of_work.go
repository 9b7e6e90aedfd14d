package repositories

import (
	"context"
)

// UnitOfWork runs a function with every repository call inside it sharing one
// transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	// DoSerialized additionally holds a store-wide lock for the duration of
	// the transaction, so concurrent callers observe each other's writes.
	// Registration uses it: the first-account bootstrap check reads a count
	// that must include any racing insert.
	DoSerialized(ctx context.Context, fn func(ctx context.Context) error) error
}
