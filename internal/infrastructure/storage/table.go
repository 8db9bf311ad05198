package storage

import (
	"context"
	"errors"

	"user-directory-api/internal/application/ports"
	"user-directory-api/internal/domain/user"
	"user-directory-api/internal/infrastructure/mirror"
)

// Table is the relational engine. The users table is the system of
// record; the in-memory view and the log file are derived mirrors
// rebuilt from it after every committed mutation, so callers observe
// either the pre-mutation state or the fully refreshed one.
type Table struct {
	repo    user.Repository
	mirror  mirror.Mirror
	records user.Records
}

func NewTable(repo user.Repository, m mirror.Mirror) ports.Storage {
	return &Table{repo: repo, mirror: m}
}

func (t *Table) Load(ctx context.Context) error {
	if err := t.repo.EnsureSchema(ctx); err != nil {
		return &user.PersistenceError{Op: "ensure schema", Err: err}
	}

	return t.refresh(ctx)
}

func (t *Table) Insert(ctx context.Context, u user.User) (user.ID, error) {
	id, err := t.repo.CreateUser(ctx, u)
	if err != nil {
		return 0, repoErr("create user", err)
	}

	return id, t.refresh(ctx)
}

func (t *Table) Replace(ctx context.Context, id user.ID, u user.User) error {
	if err := t.repo.UpdateUser(ctx, id, u); err != nil {
		return repoErr("update user", err)
	}

	return t.refresh(ctx)
}

func (t *Table) Patch(ctx context.Context, id user.ID, p user.Patch) (user.User, error) {
	updated, err := t.find(id)
	if err != nil {
		return user.User{}, err
	}

	p.Apply(&updated)

	if err = t.repo.UpdateUser(ctx, id, updated); err != nil {
		return user.User{}, repoErr("update user", err)
	}

	return updated, t.refresh(ctx)
}

func (t *Table) Remove(ctx context.Context, id user.ID) error {
	if err := t.repo.DeleteUser(ctx, id); err != nil {
		return repoErr("delete user", err)
	}

	return t.refresh(ctx)
}

func (t *Table) Get(_ context.Context, id user.ID) (user.User, error) {
	return t.find(id)
}

func (t *Table) Snapshot(_ context.Context) (user.Records, error) {
	recs := make(user.Records, len(t.records))
	copy(recs, t.records)

	return recs, nil
}

// refresh re-reads every row and rebuilds both derived mirrors. O(rows)
// per mutation, kept as the price of never exposing a partial mirror.
func (t *Table) refresh(ctx context.Context) error {
	recs, err := t.repo.FetchUsers(ctx)
	if err != nil {
		return &user.PersistenceError{Op: "refresh view", Err: err}
	}

	t.records = recs

	us := make([]user.User, len(recs))
	for i, rec := range recs {
		us[i] = rec.User
	}

	if err = t.mirror.Rewrite(ctx, us); err != nil {
		return &user.PersistenceError{Op: "rewrite mirror", Err: err}
	}

	return nil
}

func (t *Table) find(id user.ID) (user.User, error) {
	for _, rec := range t.records {
		if rec.ID == id {
			return rec.User, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

// repoErr keeps domain outcomes (conflicts, not-found) intact and wraps
// everything else as a persistence failure.
func repoErr(op string, err error) error {
	if user.IsConflict(err) || errors.Is(err, user.ErrNotFound) {
		return err
	}

	return &user.PersistenceError{Op: op, Err: err}
}
