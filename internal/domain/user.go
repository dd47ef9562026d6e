package domain

import (
	"errors"
	"time"
)

// RoleCardOwner is the role required to manage cash cards.
const RoleCardOwner = "CARD-OWNER"

var (
	// ErrUsernameAlreadyExists indicates the the user with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("Username already exists")
	// ErrUserNotFound indicates the the user is not found.
	ErrUserNotFound = errors.New("User not found")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("Wrong password")
)

// User holds the credentials and roles of a principal.
type User struct {
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	Roles          []string  `json:"roles"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Username       string
	HashedPassword string
	Roles          []string
}

// Principal is the authenticated identity of a request.
type Principal struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the principal was granted role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}

	return false
}
