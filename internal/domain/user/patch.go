package user

import (
	"strconv"
	"strings"
)

// Wire field names, shared by patch payloads and the user-log line format.
const (
	FieldName     = "name"
	FieldAge      = "age"
	FieldDOB      = "dob"
	FieldAddress  = "address"
	FieldPhone    = "phone_number"
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldPassword = "password"
)

// Patch is a partial update keyed by wire field name. Names outside the
// recognized set are ignored on apply; keeping that surface forgiving is
// intentional.
type Patch map[string]any

func (p Patch) Has(field string) bool {
	_, ok := p[field]
	return ok
}

// String returns the field's value when it is present and is a string.
func (p Patch) String(field string) (string, bool) {
	v, ok := p[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Int returns the field's value coerced to an integer. JSON numbers arrive
// as float64 and truncate; strings must carry integer syntax. Anything else
// fails the coercion.
func (p Patch) Int(field string) (int, bool) {
	v, ok := p[field]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// Apply merges every recognized, type-correct field present in p into u.
func (p Patch) Apply(u *User) {
	if v, ok := p.String(FieldName); ok {
		u.Name = v
	}
	if v, ok := p.Int(FieldAge); ok {
		u.Age = v
	}
	if v, ok := p.String(FieldDOB); ok {
		u.DOB = v
	}
	if v, ok := p.String(FieldAddress); ok {
		u.Address = v
	}
	if v, ok := p.String(FieldPhone); ok {
		u.Phone = v
	}
	if v, ok := p.String(FieldEmail); ok {
		u.Email = v
	}
	if v, ok := p.String(FieldUsername); ok {
		u.Username = v
	}
	if v, ok := p.String(FieldPassword); ok {
		u.Password = v
	}
}
