package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeAuth struct {
	mu         sync.Mutex
	users      map[string]*User
	signedOut  []string
	signOutErr error
}

func (f *fakeAuth) CurrentUser(_ context.Context, token string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, errors.New("session is not valid")
}

func (f *fakeAuth) SignOut(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedOut = append(f.signedOut, token)
	return f.signOutErr
}

func newTestManager(t *testing.T) (*Manager, *fakeAuth) {
	auth := &fakeAuth{users: map[string]*User{
		"tok-1": {ID: "user-1", Email: "one@example.com"},
		"tok-2": {ID: "user-2"},
	}}
	return NewManager(auth, time.Hour, zaptest.NewLogger(t)), auth
}

func TestResolve(t *testing.T) {
	m, _ := newTestManager(t)

	user, err := m.Resolve(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "one@example.com", user.Email)
}

func TestResolveFailuresAreNoSession(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = m.Resolve(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSignOutRevokesAndPublishes(t *testing.T) {
	m, auth := newTestManager(t)

	var events []Event
	unsubscribe := m.Subscribe(func(ev Event) { events = append(events, ev) })
	defer unsubscribe()

	require.NoError(t, m.SignOut(context.Background(), "tok-1"))

	require.Len(t, events, 1)
	assert.Equal(t, EventSignedOut, events[0].Kind)
	assert.Equal(t, "user-1", events[0].UserID)
	assert.Equal(t, []string{"tok-1"}, auth.signedOut)

	_, err := m.Resolve(context.Background(), "tok-1")
	assert.ErrorIs(t, err, ErrNoSession)

	// Other sessions are unaffected
	_, err = m.Resolve(context.Background(), "tok-2")
	assert.NoError(t, err)
}

func TestSignOutRevokesWhenProviderFails(t *testing.T) {
	m, auth := newTestManager(t)
	auth.signOutErr = errors.New("provider down")

	require.NoError(t, m.SignOut(context.Background(), "tok-2"))

	_, err := m.Resolve(context.Background(), "tok-2")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSignOutWithoutToken(t *testing.T) {
	m, auth := newTestManager(t)
	assert.ErrorIs(t, m.SignOut(context.Background(), ""), ErrNoSession)
	assert.Empty(t, auth.signedOut)
}

func TestRevocationExpires(t *testing.T) {
	m, _ := newTestManager(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.SignOut(context.Background(), "tok-1"))
	_, err := m.Resolve(context.Background(), "tok-1")
	assert.ErrorIs(t, err, ErrNoSession)

	now = now.Add(time.Hour)
	user, err := m.Resolve(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	m, _ := newTestManager(t)

	calls := 0
	unsubscribe := m.Subscribe(func(Event) { calls++ })
	unsubscribe()
	unsubscribe()

	require.NoError(t, m.SignOut(context.Background(), "tok-1"))
	assert.Zero(t, calls)
}

func TestConcurrentResolveAndSignOut(t *testing.T) {
	m, _ := newTestManager(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = m.Resolve(context.Background(), "tok-2")
		}()
		go func() {
			defer wg.Done()
			_ = m.SignOut(context.Background(), "tok-1")
		}()
	}
	wg.Wait()

	_, err := m.Resolve(context.Background(), "tok-1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestToUser(t *testing.T) {
	user, err := toUser(map[string]interface{}{"id": "abc", "email": "a@b.c", "roles": []string{"user"}})
	require.NoError(t, err)
	assert.Equal(t, &User{ID: "abc", Email: "a@b.c"}, user)

	_, err = toUser(map[string]interface{}{"email": "a@b.c"})
	assert.Error(t, err)
}

func TestAuthorizerUnreachable(t *testing.T) {
	a := NewAuthorizerAuthenticator("http://127.0.0.1:1", "client", "", "cookie_session", zaptest.NewLogger(t))

	_, err := a.CurrentUser(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authorizer ping failed")

	// Initialization is attempted once
	err = a.SignOut(context.Background(), "tok")
	assert.Contains(t, err.Error(), "authorizer ping failed")
}
