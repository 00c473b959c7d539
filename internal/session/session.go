// session.go
//
// Cycle Companion, a menstrual cycle tracking and wellness data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of cycle-companion.
// cycle-companion is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// cycle-companion is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with cycle-companion.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package session owns the process-wide view of who is signed in. A single
// Manager is shared by the session gate and every handler.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNoSession means the request carries no usable session
var ErrNoSession = errors.New("no active session")

// User is the authenticated identity
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Authenticator resolves and ends sessions with the auth provider
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (*User, error)
	SignOut(ctx context.Context, token string) error
}

// EventKind identifies an auth state change
type EventKind int

const (
	EventSignedOut EventKind = iota + 1
)

func (k EventKind) String() string {
	switch k {
	case EventSignedOut:
		return "signed_out"
	}
	return "unknown"
}

// Event is delivered to subscribers on every auth state change
type Event struct {
	Kind   EventKind
	UserID string
	At     time.Time
}

// Manager resolves session tokens, tracks sign-outs and fans auth state
// changes out to subscribers.
type Manager struct {
	auth Authenticator
	ttl  time.Duration
	log  *zap.Logger
	now  func() time.Time

	mu        sync.Mutex
	revoked   map[string]time.Time
	listeners map[uint64]func(Event)
	nextID    uint64
}

// NewManager creates a Manager. Signed-out tokens stay refused for ttl.
func NewManager(auth Authenticator, ttl time.Duration, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		auth:      auth,
		ttl:       ttl,
		log:       log,
		now:       time.Now,
		revoked:   make(map[string]time.Time),
		listeners: make(map[uint64]func(Event)),
	}
}

// Resolve returns the user behind token. Any failure, including a token that
// was signed out here, is reported as ErrNoSession.
func (m *Manager) Resolve(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	if m.isRevoked(token) {
		return nil, ErrNoSession
	}

	user, err := m.auth.CurrentUser(ctx, token)
	if err != nil {
		m.log.Debug("session resolution failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if user == nil || user.ID == "" {
		return nil, ErrNoSession
	}
	return user, nil
}

// SignOut ends the session with the provider and refuses the token locally
// from now on, even when the provider call fails. Subscribers receive
// EventSignedOut.
func (m *Manager) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoSession
	}

	var userID string
	if user, err := m.Resolve(ctx, token); err == nil {
		userID = user.ID
	}

	if err := m.auth.SignOut(ctx, token); err != nil {
		m.log.Warn("provider sign-out failed, revoking locally",
			zap.String("user_id", userID), zap.Error(err))
	}

	now := m.now()
	m.mu.Lock()
	m.pruneLocked(now)
	m.revoked[token] = now.Add(m.ttl)
	m.mu.Unlock()

	m.publish(Event{Kind: EventSignedOut, UserID: userID, At: now})
	return nil
}

// Subscribe registers fn for auth state changes. The returned func removes
// the subscription and is safe to call more than once.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Manager) publish(ev Event) {
	m.mu.Lock()
	fns := make([]func(Event), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (m *Manager) isRevoked(token string) bool {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked(now)
	_, ok := m.revoked[token]
	return ok
}

func (m *Manager) pruneLocked(now time.Time) {
	for token, expires := range m.revoked {
		if !now.Before(expires) {
			delete(m.revoked, token)
		}
	}
}
