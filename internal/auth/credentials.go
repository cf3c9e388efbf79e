package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credentials checks a username/password pair. Implementations must fail closed.
type Credentials interface {
	Verify(username, password string) bool
}

// StaticCredentials holds one account whose password is kept only as a bcrypt hash.
type StaticCredentials struct {
	username     string
	passwordHash []byte
}

// NewStaticCredentials hashes password with the given bcrypt cost.
func NewStaticCredentials(username, password string, cost int) (*StaticCredentials, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &StaticCredentials{username: username, passwordHash: hash}, nil
}

// Username returns the configured account name.
func (c *StaticCredentials) Username() string {
	return c.username
}

// Verify reports whether username matches and password hashes to the stored value.
func (c *StaticCredentials) Verify(username, password string) bool {
	if username == "" || password == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) == nil
}
