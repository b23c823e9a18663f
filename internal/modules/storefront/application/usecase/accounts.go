package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	authdomain "deliveryClient/internal/modules/auth/domain"
	"deliveryClient/internal/modules/storefront/application/port"
)

// Accounts runs the login, registration and logout flows against the backend and the identity.
type Accounts struct {
	gateway  port.AuthGateway
	identity *Identity
	cart     *CartSync
	orders   *Orders
}

func NewAccounts(gateway port.AuthGateway, identity *Identity, cart *CartSync, orders *Orders) *Accounts {
	return &Accounts{gateway: gateway, identity: identity, cart: cart, orders: orders}
}

// Login exchanges credentials for a token and persists it. Accounts awaiting approval get a
// pending result and no token is stored.
func (a *Accounts) Login(ctx context.Context, credentials authdomain.Credentials) (authdomain.LoginResult, error) {
	credentials.Email = strings.TrimSpace(credentials.Email)
	result, err := a.gateway.Login(ctx, credentials)
	if errors.Is(err, port.ErrPendingApproval) {
		slog.Info("login pending approval", slog.String("email", credentials.Email))
		return authdomain.LoginResult{Pending: true, Message: port.ErrPendingApproval.Error()}, nil
	}
	if err != nil {
		return authdomain.LoginResult{}, fmt.Errorf("login: %w", err)
	}
	return a.adopt(result)
}

// Register creates an account. Backends that sign the user in right away return a token,
// which is persisted like a login.
func (a *Accounts) Register(ctx context.Context, registration authdomain.Registration) (authdomain.LoginResult, error) {
	registration.Email = strings.TrimSpace(registration.Email)
	result, err := a.gateway.Register(ctx, registration)
	if err != nil {
		return authdomain.LoginResult{}, fmt.Errorf("register: %w", err)
	}
	return a.adopt(result)
}

// CurrentUser fetches the account behind the held token.
func (a *Accounts) CurrentUser(ctx context.Context) (authdomain.User, error) {
	if !a.identity.Authenticated() {
		return authdomain.User{}, &port.UnauthorizedError{Redirect: a.identity.LoginRoute()}
	}
	user, err := a.gateway.CurrentUser(ctx)
	if err != nil {
		return authdomain.User{}, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

// AdoptToken stores a token obtained elsewhere, rejecting expired or malformed ones.
func (a *Accounts) AdoptToken(token string) error {
	if err := a.identity.SetToken(token); err != nil {
		return err
	}
	if !a.identity.Authenticated() {
		return &port.UnauthorizedError{Redirect: a.identity.LoginRoute()}
	}
	return nil
}

// Logout forgets the token and the session id and drops the caller-scoped mirrors.
func (a *Accounts) Logout(ctx context.Context) error {
	if err := a.identity.SignOut(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if a.cart != nil {
		a.cart.Reset()
	}
	if a.orders != nil {
		a.orders.Reset()
	}
	slog.InfoContext(ctx, "signed out")
	return nil
}

func (a *Accounts) adopt(result authdomain.LoginResult) (authdomain.LoginResult, error) {
	if result.Pending || result.Token == "" {
		result.Pending = true
		return result, nil
	}
	if err := a.identity.SetToken(result.Token); err != nil {
		return authdomain.LoginResult{}, fmt.Errorf("store token: %w", err)
	}
	role := authdomain.RoleCustomer
	if result.User != nil {
		role = result.User.Role
	}
	slog.Info("signed in", slog.String("role", string(role)))
	return result, nil
}
