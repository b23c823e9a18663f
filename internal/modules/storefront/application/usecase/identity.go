package usecase

import (
	"fmt"

	authdomain "deliveryClient/internal/modules/auth/domain"
)

// SessionSource hands out the anonymous visitor id.
type SessionSource interface {
	GetOrCreate() (string, error)
	Get() (string, bool, error)
	Clear() error
}

// TokenSource holds the bearer token.
type TokenSource interface {
	Set(token string) error
	Remove() error
	Valid() (string, error)
	Role() string
}

// Identity bundles the visitor's session and token. It is built once at startup and shared
// by reference with everything that needs to attribute or authorize a call.
type Identity struct {
	sessions SessionSource
	tokens   TokenSource
}

func NewIdentity(sessions SessionSource, tokens TokenSource) *Identity {
	return &Identity{sessions: sessions, tokens: tokens}
}

// SessionID returns the visitor's session id, creating one on first use.
func (i *Identity) SessionID() (string, error) {
	id, err := i.sessions.GetOrCreate()
	if err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	return id, nil
}

// Token returns a non-expired token or "". Expiry is checked on every call.
func (i *Identity) Token() (string, error) {
	return i.tokens.Valid()
}

// Authenticated reports whether a usable token is held.
func (i *Identity) Authenticated() bool {
	token, err := i.tokens.Valid()
	return err == nil && token != ""
}

// Role is the role of the held token, defaulting to customer.
func (i *Identity) Role() authdomain.Role {
	return authdomain.NormalizeRole(i.tokens.Role())
}

// LoginRoute is where the visitor is sent when their token is rejected.
func (i *Identity) LoginRoute() string {
	return authdomain.LoginRoute(i.Role())
}

func (i *Identity) SetToken(token string) error {
	return i.tokens.Set(token)
}

// SignOut forgets the token and the session id. The next cart access issues a fresh session.
func (i *Identity) SignOut() error {
	if err := i.tokens.Remove(); err != nil {
		return err
	}
	return i.sessions.Clear()
}
