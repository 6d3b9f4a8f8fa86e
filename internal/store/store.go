package store

import (
	"context"

	"github.com/greenshop/storefront/internal/domain"
)

// CartAPI is the slice of the remote gateway the cart store depends on.
type CartAPI interface {
	GetCart(ctx context.Context, userID string) ([]domain.CartItem, error)
	AddToCart(ctx context.Context, userID, productID string, quantity int) ([]domain.CartItem, error)
	UpdateQuantity(ctx context.Context, cartItemID, userID string, newQuantity int) error
	RemoveCartItem(ctx context.Context, cartItemID, userID string) error
}

// AddressAPI is the slice of the remote gateway the address store depends on.
type AddressAPI interface {
	GetAddresses(ctx context.Context, userID string) ([]domain.Address, error)
	CreateAddress(ctx context.Context, userID string, payload domain.AddressPayload) (domain.Address, error)
	UpdateAddress(ctx context.Context, addressID string, payload domain.AddressPayload) (domain.Address, error)
	SetDefaultAddress(ctx context.Context, addressID string) (domain.Address, error)
	DeleteAddress(ctx context.Context, addressID string) error
}

// OrderAPI is the slice of the remote gateway the order store depends on.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error)
	GetOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
}
