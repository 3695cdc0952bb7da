package domain

import "errors"

type Role string

const (
	RoleWaiter Role = "waiter"
	RoleBarmen Role = "barmen"
	RoleAdmin  Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleWaiter, RoleBarmen, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

// Satisfies reports whether a caller holding r passes a check for
// required. Admin passes every check.
func (r Role) Satisfies(required Role) bool {
	return r == required || r == RoleAdmin
}

// User is a staff account. Password holds the bcrypt hash; it is
// serialized for the durable store only, never sent to clients.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
}

// PublicUser is the client-visible shape of a User.
type PublicUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Role: u.Role, Name: u.Name}
}
