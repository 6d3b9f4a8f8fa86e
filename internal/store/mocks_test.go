package store

import (
	"context"
	"sync"

	"github.com/greenshop/storefront/internal/domain"
)

// mockGateway implements CartAPI, AddressAPI and OrderAPI for testing.
// Responses are scripted through fields; calls are captured for assertions.
type mockGateway struct {
	mu sync.Mutex

	// cart
	CartLines      []domain.CartItem
	GetCartErr     error
	GetCartCalls   int
	AddResult      []domain.CartItem
	AddErr         error
	UpdateErr      error
	UpdateCalls    []updateCall
	RemoveErrs     map[string]error // per item id
	RemovedIDs     []string
	getCartStarted chan struct{}
	getCartRelease chan struct{}
	startOnce      sync.Once

	// addresses
	Addresses     []domain.Address
	GetAddrErr    error
	CreateResult  domain.Address
	CreateErr     error
	UpdateResult  domain.Address
	UpdateAddrErr error
	DefaultResult domain.Address
	DefaultErr    error
	DeleteAddrErr error
	DeletedAddrs  []string

	// orders
	Orders          []domain.Order
	GetOrdersErr    error
	CreatedOrder    domain.Order
	CreateOrderErr  error
	CreateOrderReqs []domain.OrderRequest
}

type updateCall struct {
	ItemID   string
	Quantity int
}

func (m *mockGateway) GetCart(_ context.Context, _ string) ([]domain.CartItem, error) {
	m.mu.Lock()
	m.GetCartCalls++
	err := m.GetCartErr
	out := make([]domain.CartItem, len(m.CartLines))
	copy(out, m.CartLines)
	started := m.getCartStarted
	release := m.getCartRelease
	m.mu.Unlock()

	// The response snapshot is taken before blocking, so a command that runs
	// while this call is parked sees the response arrive stale.
	if started != nil {
		m.startOnce.Do(func() { close(started) })
		<-release
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (m *mockGateway) AddToCart(_ context.Context, _, _ string, _ int) ([]domain.CartItem, error) {
	if m.AddErr != nil {
		return nil, m.AddErr
	}
	out := make([]domain.CartItem, len(m.AddResult))
	copy(out, m.AddResult)
	return out, nil
}

func (m *mockGateway) UpdateQuantity(_ context.Context, cartItemID, _ string, newQuantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.UpdateCalls = append(m.UpdateCalls, updateCall{ItemID: cartItemID, Quantity: newQuantity})
	// Mirror the server: the next GetCart reflects the new quantity.
	for i := range m.CartLines {
		if m.CartLines[i].ID == cartItemID {
			m.CartLines[i].Quantity = newQuantity
		}
	}
	return nil
}

func (m *mockGateway) RemoveCartItem(_ context.Context, cartItemID, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.RemoveErrs[cartItemID]; ok && err != nil {
		return err
	}
	m.RemovedIDs = append(m.RemovedIDs, cartItemID)
	kept := m.CartLines[:0]
	for _, line := range m.CartLines {
		if line.ID != cartItemID {
			kept = append(kept, line)
		}
	}
	m.CartLines = kept
	return nil
}

func (m *mockGateway) GetAddresses(_ context.Context, _ string) ([]domain.Address, error) {
	if m.GetAddrErr != nil {
		return nil, m.GetAddrErr
	}
	out := make([]domain.Address, len(m.Addresses))
	copy(out, m.Addresses)
	return out, nil
}

func (m *mockGateway) CreateAddress(_ context.Context, _ string, _ domain.AddressPayload) (domain.Address, error) {
	if m.CreateErr != nil {
		return domain.Address{}, m.CreateErr
	}
	return m.CreateResult, nil
}

func (m *mockGateway) UpdateAddress(_ context.Context, _ string, _ domain.AddressPayload) (domain.Address, error) {
	if m.UpdateAddrErr != nil {
		return domain.Address{}, m.UpdateAddrErr
	}
	return m.UpdateResult, nil
}

func (m *mockGateway) SetDefaultAddress(_ context.Context, addressID string) (domain.Address, error) {
	if m.DefaultErr != nil {
		return domain.Address{}, m.DefaultErr
	}
	result := m.DefaultResult
	if result.ID == "" {
		result = domain.Address{ID: addressID, IsDefault: true}
	}
	return result, nil
}

func (m *mockGateway) DeleteAddress(_ context.Context, addressID string) error {
	if m.DeleteAddrErr != nil {
		return m.DeleteAddrErr
	}
	m.DeletedAddrs = append(m.DeletedAddrs, addressID)
	return nil
}

func (m *mockGateway) CreateOrder(_ context.Context, req domain.OrderRequest) (domain.Order, error) {
	m.CreateOrderReqs = append(m.CreateOrderReqs, req)
	if m.CreateOrderErr != nil {
		return domain.Order{}, m.CreateOrderErr
	}
	return m.CreatedOrder, nil
}

func (m *mockGateway) GetOrdersByUser(_ context.Context, _ string) ([]domain.Order, error) {
	if m.GetOrdersErr != nil {
		return nil, m.GetOrdersErr
	}
	out := make([]domain.Order, len(m.Orders))
	copy(out, m.Orders)
	return out, nil
}
