// Package tokenpkg issues and verifies bearer access tokens.
package tokenpkg

import (
	"fmt"
	"time"
)

// Supported token types.
const (
	TypePaseto = "paseto"
	TypeJWT    = "jwt"
)

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for a specific username, roles and duration.
	CreateToken(username string, roles []string, duration time.Duration) (string, *Payload, error)
	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

// New returns the Maker for tokenType signed with symmetricKey.
func New(tokenType, symmetricKey string) (Maker, error) {
	switch tokenType {
	case TypePaseto, "":
		return NewPasetoMaker(symmetricKey)
	case TypeJWT:
		return NewJWTMaker(symmetricKey)
	}

	return nil, fmt.Errorf("unsupported token type %q", tokenType)
}
