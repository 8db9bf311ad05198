package user

import (
	"context"
)

type Repository interface {
	EnsureSchema(ctx context.Context) error
	FetchUsers(ctx context.Context) (Records, error)
	CreateUser(ctx context.Context, req User) (ID, error)
	UpdateUser(ctx context.Context, id ID, req User) error
	DeleteUser(ctx context.Context, id ID) error
}
