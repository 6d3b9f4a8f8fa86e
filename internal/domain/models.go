package domain

import (
	"time"
)

// CartItem is one line of the user's cart. The remote service owns every
// field except Selected, which only exists on the client: it marks the line
// for inclusion in the next checkout and must survive cart reloads.
type CartItem struct {
	ID        string `json:"_id"`
	ProductID string `json:"id_product"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Selected  bool   `json:"-"`
}

// LineTotal returns the price of this line at its current quantity.
func (i CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Address is a shipping address owned by one user. At most one address per
// owner may have IsDefault set after any completed mutation.
type Address struct {
	ID        string `json:"_id"`
	OwnerID   string `json:"userId"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone_number"`
	Detail    string `json:"addressDetail"`
	IsDefault bool   `json:"is_default"`
}

// AddressPayload is the writable subset of an address sent on create/update.
type AddressPayload struct {
	FullName  string `json:"fullName"`
	Phone     string `json:"phone_number"`
	Detail    string `json:"addressDetail"`
	IsDefault bool   `json:"is_default"`
}

// OrderItem is a priced line inside an order. Price and name are snapshots
// taken by the server at order creation and never change afterwards.
type OrderItem struct {
	ProductID string `json:"id_product"`
	Name      string `json:"name"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
	LineTotal int64  `json:"lineTotal"`
}

// Order is immutable once created except for Status, which only the remote
// service advances.
type Order struct {
	ID          string      `json:"_id"`
	OwnerID     string      `json:"userId"`
	Items       []OrderItem `json:"orderItems"`
	AddressID   string      `json:"id_address"`
	Subtotal    int64       `json:"subtotal"`
	ShippingFee int64       `json:"shippingFee"`
	Total       int64       `json:"total"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// OrderRequest is the checkout submission. Prices are deliberately absent:
// the server snapshots them at creation time.
type OrderRequest struct {
	Items     []OrderRequestItem `json:"orderItems"`
	AddressID string             `json:"id_address"`
	UserID    string             `json:"userId"`
}

// OrderRequestItem identifies one selected cart line for an order.
type OrderRequestItem struct {
	ProductID string `json:"id_product"`
	Quantity  int    `json:"quantity"`
}
