package user

type (
	Request struct {
		Name     string `json:"name"`
		Age      int    `json:"age"`
		DOB      string `json:"dob"`
		Address  string `json:"address"`
		Phone    string `json:"phone_number"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
)
