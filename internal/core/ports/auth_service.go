package ports

import "context"

// RegisterResult is returned on successful registration.
type RegisterResult struct {
	Username string
}

// LoginResult is returned on successful login. UserID is the stable account
// identifier assigned at registration; the client persists it locally.
type LoginResult struct {
	Username string
	UserID   string
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*RegisterResult, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
