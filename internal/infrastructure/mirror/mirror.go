// Package mirror provides the durable copies of the record set. A mirror is
// always rewritten as a full snapshot in scan order, never patched
// incrementally, so it can only ever hold a state the store actually had.
package mirror

import (
	"context"

	"user-directory-api/internal/domain/user"
)

type Mirror interface {
	// Load returns the records held by the durable copy, in stored order.
	Load(ctx context.Context) ([]user.User, error)
	// Rewrite replaces the durable copy with the given snapshot.
	Rewrite(ctx context.Context, records []user.User) error
}

// None is the mirror of the pure in-memory deployment: nothing is durable.
type None struct{}

func (None) Load(context.Context) ([]user.User, error)  { return nil, nil }
func (None) Rewrite(context.Context, []user.User) error { return nil }
