package user

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "user-directory-api/internal/domain/user"
)

var userColumns = []string{
	"id", "name", "age", "dob", "address", "phone_number", "email", "username", "password",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func sampleDomainUser() domain.User {
	return domain.User{
		Name:     "Ann",
		Age:      30,
		DOB:      "1996-01-01",
		Address:  "1 Main St",
		Phone:    "1234567890",
		Email:    "ann@example.com",
		Username: "ann",
		Password: "secret",
	}
}

func TestRepository_EnsureSchema(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectExec(CreateUsersTable).WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchUsers(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectQuery(SelectUsers).WillReturnRows(
		mock.NewRows(userColumns).
			AddRow(int64(1), "Ann", 30, "1996-01-01", "1 Main St", "111", "ann@example.com", "ann", "x").
			AddRow(int64(4), "Bob", 40, "1986-01-01", "2 Side St", "222", "bob@example.com", "bob", "y"),
	)

	recs, err := repo.FetchUsers(context.Background())
	require.NoError(t, err)

	require.Len(t, recs, 2)
	assert.Equal(t, domain.ID(1), recs[0].ID)
	assert.Equal(t, "ann", recs[0].Username)
	assert.Equal(t, domain.ID(4), recs[1].ID)
	assert.Equal(t, 40, recs[1].Age)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchUsers_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectQuery(SelectUsers).WillReturnRows(mock.NewRows(userColumns))

	recs, err := repo.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 0)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateUser(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)
	u := sampleDomainUser()

	mock.ExpectBegin()
	mock.ExpectQuery(InsertUser).
		WithArgs(u.Name, u.Age, u.DOB, u.Address, u.Phone, u.Email, u.Username, u.Password).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	id, err := repo.CreateUser(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, domain.ID(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateUser_Conflicts(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantErr    error
	}{
		{"username taken", UsernameConstraint, domain.ErrUsernameExists},
		{"phone taken", PhoneConstraint, domain.ErrPhoneExists},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			repo := NewRepository(mock)

			mock.ExpectBegin()
			mock.ExpectQuery(InsertUser).
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
					pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(&pgconn.PgError{
					Code:           "23505",
					ConstraintName: tt.constraint,
				})
			mock.ExpectRollback()

			_, err := repo.CreateUser(context.Background(), sampleDomainUser())
			assert.ErrorIs(t, err, tt.wantErr)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_CreateUser_OtherErrorPassesThrough(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(InsertUser).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.CreateUser(context.Background(), sampleDomainUser())
	require.Error(t, err)
	assert.False(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateUser(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)
	u := sampleDomainUser()

	mock.ExpectBegin()
	mock.ExpectExec(UpdateUserByID).
		WithArgs(u.Name, u.Age, u.DOB, u.Address, u.Phone, u.Email, u.Username, u.Password, int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateUser(context.Background(), 3, u))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateUser_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(UpdateUserByID).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.UpdateUser(context.Background(), 99, sampleDomainUser())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateUser_Conflict(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(UpdateUserByID).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: UsernameConstraint,
		})
	mock.ExpectRollback()

	err := repo.UpdateUser(context.Background(), 3, sampleDomainUser())
	assert.ErrorIs(t, err, domain.ErrUsernameExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteUser(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(DeleteUserByID).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteUser(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteUser_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(DeleteUserByID).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err := repo.DeleteUser(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
