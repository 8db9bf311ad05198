package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-directory-api/internal/domain/user"
)

func sample(username string) user.User {
	return user.User{
		Name:     "Ann",
		Age:      30,
		DOB:      "1996-01-01",
		Address:  "1 Main St",
		Phone:    "1234567890",
		Email:    username + "@example.com",
		Username: username,
		Password: "x",
	}
}

func TestStore_InsertAssignsSequentialIDs(t *testing.T) {
	s := New()

	assert.Equal(t, user.ID(0), s.Insert(sample("a")))
	assert.Equal(t, user.ID(1), s.Insert(sample("b")))
	assert.Equal(t, user.ID(2), s.Insert(sample("c")))
}

func TestStore_InsertReusesLowestTombstone(t *testing.T) {
	s := New()
	s.Insert(sample("a"))
	s.Insert(sample("b"))
	s.Insert(sample("c"))

	require.NoError(t, s.Tombstone(1))
	require.NoError(t, s.Tombstone(0))

	assert.Equal(t, user.ID(0), s.Insert(sample("d")))
	assert.Equal(t, user.ID(1), s.Insert(sample("e")))
	assert.Equal(t, user.ID(3), s.Insert(sample("f")))
}

func TestStore_InsertKeepsItsOwnCopy(t *testing.T) {
	s := New()
	u := sample("a")
	id := s.Insert(u)

	u.Name = "changed after insert"

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
}

func TestStore_GetNotFound(t *testing.T) {
	s := New()
	s.Insert(sample("a"))

	_, err := s.Get(5)
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = s.Get(-1)
	assert.ErrorIs(t, err, user.ErrNotFound)

	require.NoError(t, s.Tombstone(0))
	_, err = s.Get(0)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestStore_Replace(t *testing.T) {
	s := New()
	s.Insert(sample("a"))
	s.Insert(sample("b"))

	repl := sample("b2")
	repl.Age = 41
	require.NoError(t, s.Replace(1, repl))

	got, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "b2", got.Username)
	assert.Equal(t, 41, got.Age)

	other, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", other.Username)

	assert.ErrorIs(t, s.Replace(9, repl), user.ErrNotFound)
}

func TestStore_Patch(t *testing.T) {
	s := New()
	s.Insert(sample("a"))

	got, err := s.Patch(0, user.Patch{user.FieldAge: float64(31)})
	require.NoError(t, err)
	assert.Equal(t, 31, got.Age)
	assert.Equal(t, "a", got.Username)

	stored, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 31, stored.Age)

	_, err = s.Patch(7, user.Patch{user.FieldAge: float64(31)})
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestStore_Tombstone(t *testing.T) {
	s := New()
	s.Insert(sample("a"))

	require.NoError(t, s.Tombstone(0))
	assert.ErrorIs(t, s.Tombstone(0), user.ErrNotFound)
	assert.ErrorIs(t, s.Tombstone(3), user.ErrNotFound)
}

func TestStore_ScanSkipsTombstonesInOrder(t *testing.T) {
	s := New()
	s.Insert(sample("a"))
	s.Insert(sample("b"))
	s.Insert(sample("c"))
	require.NoError(t, s.Tombstone(1))

	recs := s.Scan()
	require.Len(t, recs, 2)
	assert.Equal(t, user.ID(0), recs[0].ID)
	assert.Equal(t, "a", recs[0].Username)
	assert.Equal(t, user.ID(2), recs[1].ID)
	assert.Equal(t, "c", recs[1].Username)
}

func TestStore_ScanEmpty(t *testing.T) {
	s := New()
	assert.Len(t, s.Scan(), 0)
}

func TestStore_ReplaceAll(t *testing.T) {
	s := New()
	s.Insert(sample("old"))

	s.ReplaceAll([]user.User{sample("x"), sample("y")})

	recs := s.Scan()
	require.Len(t, recs, 2)
	assert.Equal(t, user.ID(0), recs[0].ID)
	assert.Equal(t, "x", recs[0].Username)
	assert.Equal(t, user.ID(1), recs[1].ID)
	assert.Equal(t, "y", recs[1].Username)

	s.ReplaceAll(nil)
	assert.Len(t, s.Scan(), 0)
}
