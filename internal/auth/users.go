// Package auth holds the user store and bearer token handling of the order
// service.
//
// It has no global state: the server owns one UserStore and one TokenIssuer.
package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/value"
)

// Credentials is the body of a register or login request.
type Credentials struct {
	Username string
	Password string
}

// RequestFromObject reads the String fields "username" and "password".
// A missing field or a field of another type fails with errs.ErrMissingField.
func RequestFromObject(obj value.Object) (Credentials, error) {
	username, ok := obj.GetString("username")
	if !ok {
		return Credentials{}, fmt.Errorf("%w: username", errs.ErrMissingField)
	}
	password, ok := obj.GetString("password")
	if !ok {
		return Credentials{}, fmt.Errorf("%w: password", errs.ErrMissingField)
	}

	return Credentials{Username: username, Password: password}, nil
}

// TokenObject builds the login response message {token: "<token>"}.
func TokenObject(token string) value.Object {
	return value.NewObject(value.F("token", value.NewStr(token)))
}

// UserStore keeps bcrypt password hashes in memory.
type UserStore struct {
	mu    sync.RWMutex
	users map[string][]byte
	cost  int
}

// NewUserStore creates an empty store. A cost of 0 selects bcrypt.DefaultCost.
func NewUserStore(cost int) *UserStore {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &UserStore{
		users: make(map[string][]byte),
		cost:  cost,
	}
}

// Register adds a user.
//
// Returns:
//   - errs.ErrMissingField if username or password is empty
//   - errs.ErrUserExists if the username is taken
func (s *UserStore) Register(username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password must be non-empty", errs.ErrMissingField)
	}

	s.mu.RLock()
	_, exists := s.users[username]
	s.mu.RUnlock()
	if exists {
		return fmt.Errorf("%w: %q", errs.ErrUserExists, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// re-check, another register may have won while hashing
	if _, exists := s.users[username]; exists {
		return fmt.Errorf("%w: %q", errs.ErrUserExists, username)
	}
	s.users[username] = hash

	return nil
}

// Verify checks a password. Unknown users and wrong passwords both fail with
// errs.ErrInvalidCredentials.
func (s *UserStore) Verify(username, password string) error {
	s.mu.RLock()
	hash, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return errs.ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return errs.ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidCredentials, err)
	}

	return nil
}

// Len returns the number of registered users.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users)
}
