package user

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"user-directory-api/internal/domain/user"
	"user-directory-api/internal/infrastructure/db/postgres"
)

// DB is the slice of pgxpool.Pool behaviour the repository needs,
// also satisfied by pgxmock pools in tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db DB
}

func NewRepository(db DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, CreateUsersTable)
	return err
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Records, error) {
	rows, err := r.db.Query(ctx, SelectUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var us Users
	for rows.Next() {
		u := new(User)

		if err = rows.Scan(
			&u.ID,
			&u.Name,
			&u.Age,
			&u.DOB,
			&u.Address,
			&u.Phone,
			&u.Email,
			&u.Username,
			&u.Password,
		); err != nil {
			return nil, err
		}

		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(us), nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (user.ID, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	if err = tx.QueryRow(
		ctx,
		InsertUser,
		req.Name, req.Age, req.DOB, req.Address, req.Phone, req.Email, req.Username, req.Password,
	).Scan(&id); err != nil {
		return 0, asConflict(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	return user.ID(id), nil
}

func (r *Repository) UpdateUser(ctx context.Context, id user.ID, req user.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(
		ctx,
		UpdateUserByID,
		req.Name, req.Age, req.DOB, req.Address, req.Phone, req.Email, req.Username, req.Password,
		int64(id),
	)
	if err != nil {
		return asConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *Repository) DeleteUser(ctx context.Context, id user.ID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, DeleteUserByID, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}

	return tx.Commit(ctx)
}

// asConflict maps unique-constraint violations onto the domain conflict
// errors and passes everything else through untouched.
func asConflict(err error) error {
	name, ok := postgres.UniqueConstraint(err)
	if !ok {
		return err
	}

	switch name {
	case UsernameConstraint:
		return user.ErrUsernameExists
	case PhoneConstraint:
		return user.ErrPhoneExists
	}

	return err
}
