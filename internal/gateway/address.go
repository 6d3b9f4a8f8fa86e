package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/greenshop/storefront/internal/domain"
)

// GetAddresses fetches every address owned by the user.
func (c *Client) GetAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	var addresses []domain.Address
	path := fmt.Sprintf("/api/address/getAddressByUserId/%s", userID)
	if err := c.do(ctx, "get_addresses", http.MethodGet, path, nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress creates a new address for the user and returns it.
func (c *Client) CreateAddress(ctx context.Context, userID string, payload domain.AddressPayload) (domain.Address, error) {
	var address domain.Address
	path := fmt.Sprintf("/api/address/createAddress/%s", userID)
	if err := c.do(ctx, "create_address", http.MethodPost, path, payload, &address); err != nil {
		return domain.Address{}, err
	}
	return address, nil
}

// UpdateAddress rewrites an existing address and returns the stored version.
func (c *Client) UpdateAddress(ctx context.Context, addressID string, payload domain.AddressPayload) (domain.Address, error) {
	var address domain.Address
	path := fmt.Sprintf("/api/address/updateAddress/%s", addressID)
	if err := c.do(ctx, "update_address", http.MethodPut, path, payload, &address); err != nil {
		return domain.Address{}, err
	}
	return address, nil
}

// SetDefaultAddress marks an address as the owner's default and returns it.
func (c *Client) SetDefaultAddress(ctx context.Context, addressID string) (domain.Address, error) {
	var address domain.Address
	path := fmt.Sprintf("/api/address/updateDefault/%s", addressID)
	if err := c.do(ctx, "set_default_address", http.MethodPut, path, nil, &address); err != nil {
		return domain.Address{}, err
	}
	return address, nil
}

// DeleteAddress removes an address.
func (c *Client) DeleteAddress(ctx context.Context, addressID string) error {
	path := fmt.Sprintf("/api/address/deleteAddress/%s", addressID)
	return c.do(ctx, "delete_address", http.MethodDelete, path, nil, nil)
}
