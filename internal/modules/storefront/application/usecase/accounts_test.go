package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "deliveryClient/internal/modules/auth/domain"
	"deliveryClient/internal/modules/storefront/application/port"
)

func TestAccounts_LoginStoresToken(t *testing.T) {
	identity, _, tokens := newTestIdentity()
	gateway := &fakeAuthGateway{login: authdomain.LoginResult{
		Token: "signed",
		User:  &authdomain.User{ID: "4", Role: authdomain.RoleRider},
	}}
	accounts := NewAccounts(gateway, identity, nil, nil)

	result, err := accounts.Login(context.Background(), authdomain.Credentials{Email: " rider@example.com ", Password: "x"})
	require.NoError(t, err)
	assert.False(t, result.Pending)
	assert.Equal(t, "signed", tokens.token)
	assert.True(t, identity.Authenticated())
}

func TestAccounts_LoginPendingApproval(t *testing.T) {
	cases := map[string]*fakeAuthGateway{
		"message without token": {login: authdomain.LoginResult{Pending: true, Message: "awaiting approval"}},
		"forbidden pending":     {loginErr: port.ErrPendingApproval},
	}
	for name, gateway := range cases {
		t.Run(name, func(t *testing.T) {
			identity, _, tokens := newTestIdentity()
			accounts := NewAccounts(gateway, identity, nil, nil)

			result, err := accounts.Login(context.Background(), authdomain.Credentials{Email: "owner@example.com"})
			require.NoError(t, err)
			assert.True(t, result.Pending)
			assert.NotEmpty(t, result.Message)
			assert.Empty(t, tokens.token)
		})
	}
}

func TestAccounts_LoginFailure(t *testing.T) {
	identity, _, _ := newTestIdentity()
	accounts := NewAccounts(&fakeAuthGateway{loginErr: port.ErrForbidden}, identity, nil, nil)

	_, err := accounts.Login(context.Background(), authdomain.Credentials{})
	assert.ErrorIs(t, err, port.ErrForbidden)
}

func TestAccounts_CurrentUserRequiresToken(t *testing.T) {
	identity, _, tokens := newTestIdentity()
	tokens.role = "admin"
	accounts := NewAccounts(&fakeAuthGateway{user: authdomain.User{ID: "1"}}, identity, nil, nil)

	_, err := accounts.CurrentUser(context.Background())
	var unauthorized *port.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, "/admin/login", unauthorized.Redirect)
	assert.ErrorIs(t, err, port.ErrUnauthorized)

	require.NoError(t, tokens.Set("signed"))
	user, err := accounts.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)
}

func TestAccounts_AdoptTokenRejectsExpired(t *testing.T) {
	identity, _, _ := newTestIdentity()
	accounts := NewAccounts(&fakeAuthGateway{}, identity, nil, nil)

	assert.ErrorIs(t, accounts.AdoptToken("expired"), port.ErrUnauthorized)
	assert.NoError(t, accounts.AdoptToken("signed"))
}

func TestAccounts_LogoutResetsIdentityAndMirrors(t *testing.T) {
	ctx := context.Background()
	identity, sessions, tokens := newTestIdentity()
	cartGateway := newFakeCartGateway()
	cart := NewCartSync(cartGateway, identity, nil)
	orders := NewOrders(orderGateway(), nil)
	accounts := NewAccounts(&fakeAuthGateway{}, identity, cart, orders)

	require.NoError(t, tokens.Set("signed"))
	before, err := identity.SessionID()
	require.NoError(t, err)
	require.NoError(t, cart.Add(ctx, cartLine("1", "r1", "2", 0)))
	require.NoError(t, orders.Refresh(ctx, port.ListFilter{}))

	require.NoError(t, accounts.Logout(ctx))

	assert.Empty(t, tokens.token)
	_, ok, err := sessions.Get()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, cart.Items())
	assert.Equal(t, StateUninitialized, cart.State())
	assert.Equal(t, StateUninitialized, orders.State())

	after, err := identity.SessionID()
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}
