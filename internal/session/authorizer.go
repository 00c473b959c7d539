package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/localnerve/authorizer-go"
	"github.com/ruthvic2255/cycle-companion/internal/utils"
	"go.uber.org/zap"
)

// AuthorizerAuthenticator talks to an Authorizer instance. The client is
// created on first use, after the service answers a ping.
type AuthorizerAuthenticator struct {
	URL         string
	ClientID    string
	RedirectURL string
	CookieName  string
	Roles       []string
	Log         *zap.Logger

	once    sync.Once
	client  *authorizer.AuthorizerClient
	initErr error
}

// NewAuthorizerAuthenticator validates sessions for the "user" role
func NewAuthorizerAuthenticator(url, clientID, redirectURL, cookieName string, log *zap.Logger) *AuthorizerAuthenticator {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthorizerAuthenticator{
		URL:         url,
		ClientID:    clientID,
		RedirectURL: redirectURL,
		CookieName:  cookieName,
		Roles:       []string{"user"},
		Log:         log,
	}
}

func (a *AuthorizerAuthenticator) init() error {
	a.once.Do(func() {
		if err := utils.PingAuthorizer(a.URL); err != nil {
			a.initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		a.Log.Info("Initializing Authorizer",
			zap.String("url", a.URL),
			zap.String("client_id", a.ClientID),
			zap.String("redirect_url", a.RedirectURL))

		client, err := authorizer.NewAuthorizerClient(a.ClientID, a.URL, a.RedirectURL, nil)
		if err != nil {
			a.initErr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
		a.client = client
	})
	return a.initErr
}

// CurrentUser validates the session cookie value
func (a *AuthorizerAuthenticator) CurrentUser(ctx context.Context, token string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := a.init(); err != nil {
		return nil, err
	}

	roles := make([]*string, len(a.Roles))
	for i := range a.Roles {
		roles[i] = &a.Roles[i]
	}

	res, err := a.client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: token,
		Roles:  roles,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid || res.User == nil {
		return nil, fmt.Errorf("session is not valid")
	}

	return toUser(res.User)
}

// SignOut ends the session with the provider
func (a *AuthorizerAuthenticator) SignOut(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.init(); err != nil {
		return err
	}

	_, err := a.client.Logout(map[string]string{
		"Cookie": fmt.Sprintf("%s=%s", a.CookieName, token),
	})
	if err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// toUser copies the provider's user through its JSON form, which is stable
// across SDK releases.
func toUser(v interface{}) (*User, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("invalid user data format: %w", err)
	}
	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("invalid user data format: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("user ID not found")
	}
	return &user, nil
}
