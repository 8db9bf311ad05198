package user

import (
	domain "user-directory-api/internal/domain/user"
)

func fromDBModel(model *User) domain.Stored {
	return domain.Stored{
		ID: domain.ID(model.ID),
		User: domain.User{
			Name:     model.Name,
			Age:      model.Age,
			DOB:      model.DOB,
			Address:  model.Address,
			Phone:    model.Phone,
			Email:    model.Email,
			Username: model.Username,
			Password: model.Password,
		},
	}
}

func fromDBModels(models Users) domain.Records {
	recs := make(domain.Records, len(models))
	for idx, u := range models {
		recs[idx] = fromDBModel(u)
	}

	return recs
}
