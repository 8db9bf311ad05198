package storage

import (
	"context"

	"user-directory-api/internal/application/ports"
	"user-directory-api/internal/domain/user"
	"user-directory-api/internal/infrastructure/mirror"
	"user-directory-api/internal/infrastructure/store"
)

// Local keeps the canonical record set in process memory and reflects
// every mutation into the configured mirror. A failed mirror write is
// reported to the caller but does not roll the in-memory change back.
type Local struct {
	store  *store.Store
	mirror mirror.Mirror
}

func NewLocal(st *store.Store, m mirror.Mirror) ports.Storage {
	return &Local{store: st, mirror: m}
}

func (l *Local) Load(ctx context.Context) error {
	records, err := l.mirror.Load(ctx)
	if err != nil {
		return &user.PersistenceError{Op: "load mirror", Err: err}
	}

	l.store.ReplaceAll(records)

	return nil
}

func (l *Local) Insert(ctx context.Context, u user.User) (user.ID, error) {
	id := l.store.Insert(u)

	return id, l.rewrite(ctx)
}

func (l *Local) Replace(ctx context.Context, id user.ID, u user.User) error {
	if err := l.store.Replace(id, u); err != nil {
		return err
	}

	return l.rewrite(ctx)
}

func (l *Local) Patch(ctx context.Context, id user.ID, p user.Patch) (user.User, error) {
	updated, err := l.store.Patch(id, p)
	if err != nil {
		return user.User{}, err
	}

	return updated, l.rewrite(ctx)
}

func (l *Local) Remove(ctx context.Context, id user.ID) error {
	if err := l.store.Tombstone(id); err != nil {
		return err
	}

	return l.rewrite(ctx)
}

func (l *Local) Get(_ context.Context, id user.ID) (user.User, error) {
	return l.store.Get(id)
}

func (l *Local) Snapshot(_ context.Context) (user.Records, error) {
	return l.store.Scan(), nil
}

func (l *Local) rewrite(ctx context.Context) error {
	recs := l.store.Scan()

	us := make([]user.User, len(recs))
	for i, rec := range recs {
		us[i] = rec.User
	}

	if err := l.mirror.Rewrite(ctx, us); err != nil {
		return &user.PersistenceError{Op: "rewrite mirror", Err: err}
	}

	return nil
}
