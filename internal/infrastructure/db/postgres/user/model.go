package user

type (
	User struct {
		ID       int64
		Name     string
		Age      int
		DOB      string
		Address  string
		Phone    string
		Email    string
		Username string
		Password string
	}
	Users []*User
)
