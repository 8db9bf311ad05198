package ports

import (
	"context"

	"user-directory-api/internal/domain/user"
)

type DirectoryService interface {
	CreateUser(ctx context.Context, u user.User) (user.Stored, error)
	FindUserByID(ctx context.Context, id user.ID) (user.Stored, error)
	FindUsers(ctx context.Context) (user.Records, error)
	ReplaceUser(ctx context.Context, id user.ID, u user.User) (user.Stored, error)
	PatchUser(ctx context.Context, id user.ID, p user.Patch) (user.Stored, error)
	DeleteUser(ctx context.Context, id user.ID) error
}
