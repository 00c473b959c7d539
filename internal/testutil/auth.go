package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ruthvic2255/cycle-companion/internal/session"
	"go.uber.org/zap/zaptest"
)

// StaticAuthenticator resolves tokens from a fixed table
type StaticAuthenticator struct {
	mu        sync.Mutex
	Users     map[string]*session.User
	SignedOut []string
}

// NewStaticAuthenticator maps each token to a user
func NewStaticAuthenticator(users map[string]*session.User) *StaticAuthenticator {
	return &StaticAuthenticator{Users: users}
}

func (a *StaticAuthenticator) CurrentUser(_ context.Context, token string) (*session.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if u, ok := a.Users[token]; ok {
		return u, nil
	}
	return nil, errors.New("session is not valid")
}

func (a *StaticAuthenticator) SignOut(_ context.Context, token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.SignedOut = append(a.SignedOut, token)
	return nil
}

// NewSessionManager builds a Manager over a StaticAuthenticator with one
// signed-in user per token
func NewSessionManager(t *testing.T, users map[string]*session.User) (*session.Manager, *StaticAuthenticator) {
	auth := NewStaticAuthenticator(users)
	return session.NewManager(auth, time.Hour, zaptest.NewLogger(t)), auth
}
