package user

// Default Postgres constraint names for the two unique columns; the
// repository keys its conflict mapping on them.
const (
	UsernameConstraint = "users_username_key"
	PhoneConstraint    = "users_phone_number_key"
)

const (
	CreateUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			age INTEGER NOT NULL,
			dob TEXT NOT NULL,
			address TEXT NOT NULL,
			phone_number TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)
	`
	SelectUsers = `
		SELECT id, name, age, dob, address, phone_number, email, username, password
		FROM users
		ORDER BY id
	`
	InsertUser = `
		INSERT INTO users (name, age, dob, address, phone_number, email, username, password)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	UpdateUserByID = `
		UPDATE users
		SET name = $1,
		    age = $2,
		    dob = $3,
		    address = $4,
		    phone_number = $5,
		    email = $6,
		    username = $7,
		    password = $8
		WHERE id = $9
	`
	DeleteUserByID = `DELETE FROM users WHERE id = $1`
)
