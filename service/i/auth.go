package i

import (
	dmn "github.com/mazehub/mazehub-api/domain"
)

// Authenticator owns registration and sign-in, including the anonymous
// guest flow. Sign-in variants return the user and a signed token.
type Authenticator interface {
	Register(string, string) error
	SignIn(string, string) (*dmn.User, string, error)
	SignInGuest() (*dmn.User, string, error)
}
