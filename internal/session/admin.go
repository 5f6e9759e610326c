// Package session holds the process-local admin flag that unlocks mutation controls.
package session

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordLen is the longest input bcrypt considers.
const maxPasswordLen = 72

// ErrEmptySecret is returned when no admin password is configured.
var ErrEmptySecret = errors.New("session: admin password must not be empty")

// Admin is a UI gate only. It grants no credential to outgoing requests.
type Admin struct {
	mu     sync.RWMutex
	hash   []byte
	active bool
}

// NewAdmin hashes the configured secret once so it is never kept in memory as plain text.
func NewAdmin(secret string) (*Admin, error) {
	return newAdmin(secret, bcrypt.DefaultCost)
}

func newAdmin(secret string, cost int) (*Admin, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return nil, err
	}
	return &Admin{hash: hash}, nil
}

// SubmitPassword turns admin mode on iff candidate equals the configured secret.
// A wrong candidate leaves the flag as it was.
func (a *Admin) SubmitPassword(candidate string) bool {
	if candidate == "" || len(candidate) > maxPasswordLen {
		return false
	}
	if bcrypt.CompareHashAndPassword(a.hash, []byte(candidate)) != nil {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.active = true
	return true
}

// Logout clears the flag unconditionally.
func (a *Admin) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.active = false
}

// IsAdmin reports whether admin mode is on.
func (a *Admin) IsAdmin() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active
}
