package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dishdomain "deliveryClient/internal/modules/dishes/domain"
	orderdomain "deliveryClient/internal/modules/orders/domain"
	restaurantdomain "deliveryClient/internal/modules/restaurants/domain"
	"deliveryClient/internal/modules/storefront/application/port"
)

func newTestStorefront() (*Storefront, *fakeTokens, Gateways) {
	identity, _, tokens := newTestIdentity()
	gateways := Gateways{
		Restaurants: restaurantGateway(restaurantdomain.Restaurant{ID: "r1"}),
		Dishes:      dishGateway(dishdomain.Dish{ID: "1", RestaurantID: "r1"}),
		Orders:      orderGateway(orderdomain.Order{ID: "9", Status: orderdomain.OrderStatusPending}),
		Reviews:     reviewGateway(),
		Cart:        newFakeCartGateway(),
		Auth:        &fakeAuthGateway{},
	}
	return NewStorefront(identity, gateways, nil), tokens, gateways
}

func TestStorefront_LoadAll(t *testing.T) {
	ctx := context.Background()

	anonymous, _, _ := newTestStorefront()
	require.NoError(t, anonymous.LoadAll(ctx))
	assert.Equal(t, StateReady, anonymous.Restaurants.State())
	assert.Equal(t, StateReady, anonymous.Dishes.State())
	assert.Equal(t, StateReady, anonymous.Cart.State())
	assert.Equal(t, StateUninitialized, anonymous.Orders.State())

	signedIn, tokens, _ := newTestStorefront()
	require.NoError(t, tokens.Set("signed"))
	require.NoError(t, signedIn.LoadAll(ctx))
	assert.Equal(t, 1, signedIn.Orders.Len())
}

func TestStorefront_LoadAllReportsFailure(t *testing.T) {
	storefront, _, gateways := newTestStorefront()
	gateways.Dishes.(*fakeEntityGateway[dishdomain.Dish]).fail = errBackendDown

	err := storefront.LoadAll(context.Background())
	assert.ErrorIs(t, err, errBackendDown)
}

func TestStorefront_RefreshEntity(t *testing.T) {
	ctx := context.Background()
	storefront, _, gateways := newTestStorefront()

	require.NoError(t, storefront.RefreshEntity(ctx, "Restaurant"))
	assert.Equal(t, 1, storefront.Restaurants.Len())

	require.NoError(t, storefront.RefreshEntity(ctx, "menu_item"))
	assert.Equal(t, 1, storefront.Dishes.Len())

	require.NoError(t, storefront.RefreshEntity(ctx, "review"))
	assert.Equal(t, 2, gateways.Restaurants.(*fakeEntityGateway[restaurantdomain.Restaurant]).calls())

	assert.ErrorIs(t, storefront.RefreshEntity(ctx, "invoices"), port.ErrUnsupported)
}
