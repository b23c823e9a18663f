package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	authdomain "deliveryClient/internal/modules/auth/domain"
	cartdomain "deliveryClient/internal/modules/cart/domain"
	orderdomain "deliveryClient/internal/modules/orders/domain"
	"deliveryClient/internal/modules/storefront/application/port"
	"deliveryClient/internal/modules/storefront/domain"
	"deliveryClient/internal/platform/storage"
	"deliveryClient/internal/shared/session"
)

var errBackendDown = errors.New("backend down")

type fakeTokens struct {
	mu    sync.Mutex
	token string
	role  string
}

func (f *fakeTokens) Set(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	return nil
}

func (f *fakeTokens) Remove() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	return nil
}

func (f *fakeTokens) Valid() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.token == "expired" {
		f.token = ""
	}
	return f.token, nil
}

func (f *fakeTokens) Role() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.role
}

func newTestIdentity() (*Identity, *session.Provider, *fakeTokens) {
	sessions := session.NewProvider(storage.NewMemoryStore())
	tokens := &fakeTokens{}
	return NewIdentity(sessions, tokens), sessions, tokens
}

// fakeCartGateway keeps a backend cart per session. Line ids are "line-<dishId>".
type fakeCartGateway struct {
	mu       sync.Mutex
	lines    map[string][]cartdomain.CartItem
	failAdd  error
	failList error
	failMut  error
	deleted  []string
	updated  map[string]int
	cleared  int

	// addEntered/addRelease let a test observe the cart while AddItem is in flight.
	addEntered chan struct{}
	addRelease chan struct{}
}

func newFakeCartGateway() *fakeCartGateway {
	return &fakeCartGateway{lines: make(map[string][]cartdomain.CartItem), updated: make(map[string]int)}
}

func (f *fakeCartGateway) seed(sessionID string, items ...cartdomain.CartItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for idx := range items {
		items[idx].RemoteID = "line-" + items[idx].DishID
	}
	f.lines[sessionID] = items
}

func (f *fakeCartGateway) List(_ context.Context, sessionID string) ([]cartdomain.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList != nil {
		return nil, f.failList
	}
	return cloneSlice(f.lines[sessionID]), nil
}

func (f *fakeCartGateway) AddItem(_ context.Context, sessionID string, item cartdomain.CartItem) error {
	if f.addEntered != nil {
		f.addEntered <- struct{}{}
		<-f.addRelease
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAdd != nil {
		return f.failAdd
	}
	item.RemoteID = "line-" + item.DishID
	f.lines[sessionID] = cartdomain.WithAdded(f.lines[sessionID], item)
	return nil
}

func (f *fakeCartGateway) UpdateItem(_ context.Context, sessionID, itemID string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMut != nil {
		return f.failMut
	}
	f.updated[itemID] = quantity
	for idx, line := range f.lines[sessionID] {
		if line.RemoteID == itemID {
			f.lines[sessionID][idx].Quantity = quantity
		}
	}
	return nil
}

func (f *fakeCartGateway) DeleteItem(_ context.Context, sessionID, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMut != nil {
		return f.failMut
	}
	f.deleted = append(f.deleted, itemID)
	kept := f.lines[sessionID][:0]
	for _, line := range f.lines[sessionID] {
		if line.RemoteID != itemID {
			kept = append(kept, line)
		}
	}
	f.lines[sessionID] = kept
	return nil
}

func (f *fakeCartGateway) Clear(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMut != nil {
		return f.failMut
	}
	f.cleared++
	delete(f.lines, sessionID)
	return nil
}

// fakeEntityGateway is an in-memory backend collection with sequential ids.
type fakeEntityGateway[T Keyed] struct {
	mu        sync.Mutex
	items     []T
	nextID    int
	withID    func(T, string) T
	matches   func(T, port.ListFilter) bool
	fail      error
	listCalls int
	listGate  chan struct{}
}

func (f *fakeEntityGateway[T]) List(_ context.Context, filter port.ListFilter) ([]T, error) {
	if f.listGate != nil {
		<-f.listGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.fail != nil {
		return nil, f.fail
	}
	result := make([]T, 0, len(f.items))
	for _, item := range f.items {
		if f.matches == nil || f.matches(item, filter) {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeEntityGateway[T]) Get(_ context.Context, id string) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.Key() == id {
			return item, nil
		}
	}
	var zero T
	return zero, port.ErrNotFound
}

func (f *fakeEntityGateway[T]) Create(_ context.Context, entity T) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		var zero T
		return zero, f.fail
	}
	f.nextID++
	created := f.withID(entity, strconv.Itoa(100+f.nextID))
	f.items = append(f.items, created)
	return created, nil
}

func (f *fakeEntityGateway[T]) Update(_ context.Context, entity T) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		var zero T
		return zero, f.fail
	}
	for idx := range f.items {
		if f.items[idx].Key() == entity.Key() {
			f.items[idx] = entity
			return entity, nil
		}
	}
	var zero T
	return zero, port.ErrNotFound
}

func (f *fakeEntityGateway[T]) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	for idx := range f.items {
		if f.items[idx].Key() == id {
			f.items = append(f.items[:idx], f.items[idx+1:]...)
			return nil
		}
	}
	return port.ErrNotFound
}

func (f *fakeEntityGateway[T]) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

type fakeOrderGateway struct {
	*fakeEntityGateway[orderdomain.Order]
	// ackOnly makes UpdateStatus answer without the order, like a bare {"message": ...} reply.
	ackOnly bool
}

func (f *fakeOrderGateway) UpdateStatus(_ context.Context, id string, status orderdomain.OrderStatus) (orderdomain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return orderdomain.Order{}, f.fail
	}
	for idx := range f.items {
		if f.items[idx].ID == id {
			f.items[idx].Status = status
			if f.ackOnly {
				return orderdomain.Order{Status: status}, nil
			}
			return f.items[idx], nil
		}
	}
	return orderdomain.Order{}, port.ErrNotFound
}

type fakeAuthGateway struct {
	login    authdomain.LoginResult
	loginErr error
	user     authdomain.User
}

func (f *fakeAuthGateway) Login(context.Context, authdomain.Credentials) (authdomain.LoginResult, error) {
	return f.login, f.loginErr
}

func (f *fakeAuthGateway) Register(context.Context, authdomain.Registration) (authdomain.LoginResult, error) {
	return f.login, f.loginErr
}

func (f *fakeAuthGateway) CurrentUser(context.Context) (authdomain.User, error) {
	return f.user, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	topics []string
}

func (r *recordingNotifier) Broadcast(_ context.Context, msg *domain.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, msg.Topic)
}

func (r *recordingNotifier) seen(topic string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.topics {
		if t == topic {
			return true
		}
	}
	return false
}

func cartLine(dishID, restaurantID, price string, quantity int) cartdomain.CartItem {
	return cartdomain.CartItem{
		DishID:       dishID,
		RestaurantID: restaurantID,
		Name:         fmt.Sprintf("dish %s", dishID),
		Price:        decimal.RequireFromString(price),
		Quantity:     quantity,
	}
}
