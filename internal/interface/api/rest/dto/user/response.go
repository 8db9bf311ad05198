package user

type (
	// Response never carries the password field.
	Response struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Age      int    `json:"age"`
		DOB      string `json:"dob"`
		Address  string `json:"address"`
		Phone    string `json:"phone_number"`
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	Responses []Response
)
