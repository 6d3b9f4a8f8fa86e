package checkout

import (
	"context"

	"go.uber.org/zap"

	"github.com/greenshop/storefront/internal/domain"
	"github.com/greenshop/storefront/pkg/errors"
)

// State is the phase of one checkout submission.
type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StateSubmitting State = "SUBMITTING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
)

func (s State) String() string {
	return string(s)
}

// CartSource is the read/drain slice of the cart store checkout needs.
type CartSource interface {
	SelectedItems() []domain.CartItem
	RemoveAll(ctx context.Context, items []domain.CartItem) ([]string, error)
}

// AddressSource resolves the default shipping address.
type AddressSource interface {
	Default() (domain.Address, bool)
}

// OrderCreator submits the order request.
type OrderCreator interface {
	Create(ctx context.Context, req domain.OrderRequest) (domain.Order, error)
}

// Result reports the outcome of one submission. UndrainedItemIDs lists cart
// lines that were ordered but could not be removed afterwards; the order
// itself already exists when it is non-empty.
type Result struct {
	State            State
	Order            domain.Order
	Subtotal         int64
	ShippingFee      int64
	Total            int64
	UndrainedItemIDs []string
}

// Orchestrator drives the multi-step checkout transaction. It holds no
// persistent state of its own: it reads snapshots from the stores and issues
// commands, one submission at a time.
type Orchestrator struct {
	cart        CartSource
	addresses   AddressSource
	orders      OrderCreator
	shippingFee int64
	logger      *zap.Logger
}

// NewOrchestrator creates a checkout orchestrator.
func NewOrchestrator(cart CartSource, addresses AddressSource, orders OrderCreator, shippingFee int64, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		cart:        cart,
		addresses:   addresses,
		orders:      orders,
		shippingFee: shippingFee,
		logger:      logger,
	}
}

// Quote returns the total the user would be charged right now: the sum of
// selected line totals plus the fixed shipping fee.
func (o *Orchestrator) Quote() (subtotal, total int64) {
	for _, item := range o.cart.SelectedItems() {
		subtotal += item.LineTotal()
	}
	return subtotal, subtotal + o.shippingFee
}

// Submit validates the selection, creates the order and drains exactly the
// items that were selected at submission time. Validation failures never
// reach the network. An order creation failure leaves the cart untouched.
func (o *Orchestrator) Submit(ctx context.Context, userID string) (*Result, error) {
	result := &Result{State: StateValidating, ShippingFee: o.shippingFee}

	// Snapshot once: items the user changes mid-flight must not leak into
	// this submission.
	snapshot := o.cart.SelectedItems()
	if len(snapshot) == 0 {
		result.State = StateFailed
		return result, &errors.ErrValidation{Message: "no items selected for checkout"}
	}

	address, ok := o.addresses.Default()
	if !ok {
		result.State = StateFailed
		return result, &errors.ErrValidation{Message: "no default shipping address"}
	}

	for _, item := range snapshot {
		result.Subtotal += item.LineTotal()
	}
	result.Total = result.Subtotal + o.shippingFee

	result.State = StateSubmitting
	req := domain.OrderRequest{
		Items:     make([]domain.OrderRequestItem, 0, len(snapshot)),
		AddressID: address.ID,
		UserID:    userID,
	}
	for _, item := range snapshot {
		// Quantity and product only: the server snapshots prices at order
		// time, client prices are not trusted.
		req.Items = append(req.Items, domain.OrderRequestItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := o.orders.Create(ctx, req)
	if err != nil {
		o.logger.Error("Order creation failed, cart left untouched", zap.Error(err))
		result.State = StateFailed
		return result, err
	}
	result.Order = order
	result.State = StateSucceeded

	remaining, err := o.cart.RemoveAll(ctx, snapshot)
	if err != nil {
		// The order exists; the leftover lines are reported, not rolled back.
		o.logger.Error("Cart drain incomplete after checkout",
			zap.String("order_id", order.ID),
			zap.Int("remaining", len(remaining)),
			zap.Error(err),
		)
		result.UndrainedItemIDs = remaining
	}

	return result, nil
}
