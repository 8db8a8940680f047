package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username already exists")

// PasswordHasher is the one-way hashing contract used when constructing and
// verifying credentials. Hash must salt per call, so repeated hashes of the
// same plaintext differ while Verify still matches any of them.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports false on a plain mismatch. A non-nil error means the
	// comparison itself failed (e.g. malformed stored value) and must be
	// treated as operational, not as a wrong password.
	Verify(plaintext, hash string) (bool, error)
}

const (
	usernameMinLen = 3
	usernameMaxLen = 30
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// User models a registered account. The password hash is the only credential
// ever held; the plaintext is discarded inside NewUser.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser validates the credentials and hashes the password before the value
// is considered valid. The username is trimmed and lower-cased first.
func NewUser(username, plaintext string, hasher PasswordHasher, now time.Time) (*User, error) {
	username = NormalizeUsername(username)

	ve := &ValidationError{}
	switch {
	case username == "":
		ve.add("username", "Username is required")
	case len(username) < usernameMinLen:
		ve.add("username", "Username must be at least 3 characters")
	case len(username) > usernameMaxLen:
		ve.add("username", "Username cannot exceed 30 characters")
	case !usernamePattern.MatchString(username):
		ve.add("username", "Username may only contain letters, numbers and underscores")
	}
	if plaintext == "" {
		ve.add("password", "Password is required")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	hash, err := hasher.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	return &User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now.UTC(),
	}, nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
func (u *User) VerifyPassword(plaintext string, hasher PasswordHasher) (bool, error) {
	return hasher.Verify(plaintext, u.PasswordHash)
}

// UserView is the externally visible projection of a User. It carries no
// password hash field at all, so no serialization path can leak one.
type UserView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicView projects the user for API responses and logs.
func (u *User) PublicView() UserView {
	return UserView{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}

// NormalizeUsername applies the same canonical form NewUser stores, so
// lookups match regardless of how the caller typed the name.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
