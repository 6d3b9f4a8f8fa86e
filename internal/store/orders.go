package store

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/greenshop/storefront/internal/domain"
	"github.com/greenshop/storefront/pkg/errors"
)

// OrderStore owns the order history for one user, most recent first. Orders
// are append-only from the client's perspective: created at checkout, never
// deleted, status advanced only by the remote service.
type OrderStore struct {
	mu     sync.Mutex
	api    OrderAPI
	logger *zap.Logger
	userID string

	orders []domain.Order
	gen    uint64
}

// NewOrderStore creates an order store bound to one user.
func NewOrderStore(api OrderAPI, userID string, logger *zap.Logger) *OrderStore {
	return &OrderStore{
		api:    api,
		logger: logger,
		userID: userID,
	}
}

// Create submits an order request and prepends the created order.
func (s *OrderStore) Create(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()

	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		return domain.Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]domain.Order{order}, s.orders...)
	return order, nil
}

// Load replaces the local list with the server's response, newest first.
// A response overtaken by a newer command is discarded.
func (s *OrderStore) Load(ctx context.Context) error {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	orders, err := s.api.GetOrdersByUser(ctx, s.userID)
	if err != nil {
		return err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	for _, order := range orders {
		if !order.Status.IsValid() {
			s.logger.Warn("Order with status outside the contract",
				zap.String("order_id", order.ID),
				zap.String("status", order.Status.String()),
			)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.orders = orders
	return nil
}

// Orders returns a snapshot of the history.
func (s *OrderStore) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// FilterByStatus projects the history onto one status tab. An empty status
// returns everything. Pure projection, the collection is never mutated.
func (s *OrderStore) FilterByStatus(status domain.OrderStatus) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == "" {
		out := make([]domain.Order, len(s.orders))
		copy(out, s.orders)
		return out
	}
	var out []domain.Order
	for _, order := range s.orders {
		if order.Status == status {
			out = append(out, order)
		}
	}
	return out
}

// Get returns one order by id for the detail view.
func (s *OrderStore) Get(orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == orderID {
			return order, nil
		}
	}
	return domain.Order{}, &errors.ErrNotFound{Resource: "order", ID: orderID}
}
