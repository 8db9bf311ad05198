package validator

import (
	"errors"
	"strconv"

	"user-directory-api/internal/domain/user"
)

func ValidateUserID(s string) (user.ID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New("user_id must be an integer")
	}

	return user.ID(id), nil
}
