package user

import (
	"user-directory-api/internal/domain/user"
)

func ToResponseUser(rec user.Stored) Response {
	var r = Response{
		ID:       int64(rec.ID),
		Name:     rec.Name,
		Age:      rec.Age,
		DOB:      rec.DOB,
		Address:  rec.Address,
		Phone:    rec.Phone,
		Email:    rec.Email,
		Username: rec.Username,
	}

	return r
}

func ToResponseUsers(recs user.Records) Responses {
	rs := make(Responses, len(recs))
	for idx, rec := range recs {
		rs[idx] = ToResponseUser(rec)
	}

	return rs
}

func ToDomainUser(req Request) user.User {
	var u = user.User{
		Name:     req.Name,
		Age:      req.Age,
		DOB:      req.DOB,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}

	return u
}
