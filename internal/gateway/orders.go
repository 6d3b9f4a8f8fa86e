package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/greenshop/storefront/internal/domain"
)

// orderEnvelope wraps the create-order response.
type orderEnvelope struct {
	Order domain.Order `json:"order"`
}

// CreateOrder submits an order request. The returned order carries the
// server's price snapshots and computed totals.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	var env orderEnvelope
	if err := c.do(ctx, "create_order", http.MethodPost, "/api/order/create", req, &env); err != nil {
		return domain.Order{}, err
	}
	return env.Order, nil
}

// GetOrdersByUser fetches the user's order history.
func (c *Client) GetOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var orders []domain.Order
	path := fmt.Sprintf("/api/order/getByUserId/%s", userID)
	if err := c.do(ctx, "get_orders", http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
