package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/greenshop/storefront/internal/domain"
)

// cartEnvelope wraps every cart response from the service.
type cartEnvelope struct {
	CartItem []domain.CartItem `json:"cartItem"`
}

// GetCart fetches every cart line for the user.
func (c *Client) GetCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	var env cartEnvelope
	path := fmt.Sprintf("/api/cart/getByUserId/%s", userID)
	if err := c.do(ctx, "get_cart", http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.CartItem, nil
}

// AddToCart adds a product to the user's cart and returns the refreshed lines.
func (c *Client) AddToCart(ctx context.Context, userID, productID string, quantity int) ([]domain.CartItem, error) {
	payload := map[string]interface{}{
		"id_product": productID,
		"quantity":   quantity,
	}
	var env cartEnvelope
	path := fmt.Sprintf("/api/cart/addToCart/%s", userID)
	if err := c.do(ctx, "add_to_cart", http.MethodPost, path, payload, &env); err != nil {
		return nil, err
	}
	return env.CartItem, nil
}

// UpdateQuantity sets the quantity of one cart line.
func (c *Client) UpdateQuantity(ctx context.Context, cartItemID, userID string, newQuantity int) error {
	payload := map[string]interface{}{
		"newQuantity": newQuantity,
		"userId":      userID,
	}
	path := fmt.Sprintf("/api/cart/updateQuantity/cartItemId/%s", cartItemID)
	return c.do(ctx, "update_quantity", http.MethodPatch, path, payload, nil)
}

// RemoveCartItem deletes one cart line.
func (c *Client) RemoveCartItem(ctx context.Context, cartItemID, userID string) error {
	payload := map[string]interface{}{
		"userId": userID,
	}
	path := fmt.Sprintf("/api/cart/deleteCartItem/%s", cartItemID)
	return c.do(ctx, "remove_cart_item", http.MethodDelete, path, payload, nil)
}
