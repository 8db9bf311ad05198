package ports

import (
	"context"

	"user-directory-api/internal/domain/user"
)

// Storage is a persistence engine for the user directory. Every mutating
// call leaves the canonical record set and its durable mirrors consistent
// before returning; callers serialize access.
type Storage interface {
	Load(ctx context.Context) error
	Insert(ctx context.Context, u user.User) (user.ID, error)
	Replace(ctx context.Context, id user.ID, u user.User) error
	Patch(ctx context.Context, id user.ID, p user.Patch) (user.User, error)
	Remove(ctx context.Context, id user.ID) error
	Get(ctx context.Context, id user.ID) (user.User, error)
	Snapshot(ctx context.Context) (user.Records, error)
}
