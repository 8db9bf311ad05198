package user

type (
	// ID is a record's stable identifier. The memory- and file-backed
	// deployments hand out zero-based slot indexes and keep them stable by
	// tombstoning deleted slots; the Postgres-backed deployment uses the
	// table's serial key instead.
	ID int64

	// User is one directory record. Field order and JSON names are the
	// user-log line format; the log carries every field, password included.
	User struct {
		Name     string `json:"name"`
		Age      int    `json:"age"`
		DOB      string `json:"dob"`
		Address  string `json:"address"`
		Phone    string `json:"phone_number"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	// Stored is a record together with its identifier.
	Stored struct {
		ID ID
		User
	}

	Records []Stored
)
