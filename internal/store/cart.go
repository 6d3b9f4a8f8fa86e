package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/greenshop/storefront/internal/domain"
	"github.com/greenshop/storefront/pkg/errors"
)

// CartStore owns the in-memory cart collection for one user. The remote
// service is authoritative for quantities, prices and line membership; the
// Selected flag exists only here and is carried across reloads by mergeCart.
//
// Every write happens after the corresponding server response arrives. The
// generation counter detects responses that were overtaken by a newer
// command: such responses are discarded instead of overwriting fresher state.
type CartStore struct {
	mu     sync.Mutex
	api    CartAPI
	logger *zap.Logger
	userID string

	items []domain.CartItem
	gen   uint64
}

// NewCartStore creates a cart store bound to one user.
func NewCartStore(api CartAPI, userID string, logger *zap.Logger) *CartStore {
	return &CartStore{
		api:    api,
		logger: logger,
		userID: userID,
	}
}

// mergeCart reconciles a fresh server snapshot into the previous local
// collection. Quantities, prices and names come from the server; the Selected
// flag is copied forward for lines present in both snapshots and defaults to
// false for lines the server introduced. Lines absent from the server are
// dropped. The function is pure and idempotent.
func mergeCart(old, fresh []domain.CartItem) []domain.CartItem {
	selected := make(map[string]bool, len(old))
	for _, item := range old {
		if item.Selected {
			selected[item.ID] = true
		}
	}

	merged := make([]domain.CartItem, len(fresh))
	for i, item := range fresh {
		item.Selected = selected[item.ID]
		merged[i] = item
	}
	return merged
}

// Load fetches the server's cart lines and merges them into the local
// collection. A response that arrives after a newer command has run is
// discarded.
func (s *CartStore) Load(ctx context.Context) error {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	fresh, err := s.api.GetCart(ctx, s.userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		s.logger.Debug("Discarding stale cart snapshot",
			zap.Uint64("fetched_at", gen),
			zap.Uint64("current", s.gen),
		)
		return nil
	}
	s.items = mergeCart(s.items, fresh)
	return nil
}

// Add puts a product into the cart and merges the refreshed lines the server
// returns.
func (s *CartStore) Add(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	fresh, err := s.api.AddToCart(ctx, s.userID, productID, quantity)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.items = mergeCart(s.items, fresh)
	return nil
}

// Increment raises the quantity of one line by one.
func (s *CartStore) Increment(ctx context.Context, itemID string) error {
	return s.updateQuantity(ctx, itemID, +1)
}

// Decrement lowers the quantity of one line by one, never below one.
func (s *CartStore) Decrement(ctx context.Context, itemID string) error {
	return s.updateQuantity(ctx, itemID, -1)
}

func (s *CartStore) updateQuantity(ctx context.Context, itemID string, delta int) error {
	s.mu.Lock()
	item, ok := s.find(itemID)
	if !ok {
		s.mu.Unlock()
		return &errors.ErrNotFound{Resource: "cart item", ID: itemID}
	}

	newQuantity := item.Quantity + delta
	if newQuantity < 1 {
		newQuantity = 1
	}
	if newQuantity == item.Quantity {
		// Already at the floor, nothing to send.
		s.mu.Unlock()
		return nil
	}

	s.gen++
	gen := s.gen
	s.mu.Unlock()

	if err := s.api.UpdateQuantity(ctx, itemID, s.userID, newQuantity); err != nil {
		return err
	}

	// The displayed quantity is always the post-reload server value, never an
	// optimistic local one.
	fresh, err := s.api.GetCart(ctx, s.userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.items = mergeCart(s.items, fresh)
	return nil
}

// Remove deletes one line. The local collection changes only after the
// server confirms the deletion.
func (s *CartStore) Remove(ctx context.Context, itemID string) error {
	s.mu.Lock()
	if _, ok := s.find(itemID); !ok {
		s.mu.Unlock()
		return &errors.ErrNotFound{Resource: "cart item", ID: itemID}
	}
	s.mu.Unlock()

	if err := s.api.RemoveCartItem(ctx, itemID, s.userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return nil
}

// RemoveAll deletes the given lines one at a time, awaiting each deletion
// before issuing the next. The batch is not atomic: on failure the lines
// already confirmed deleted stay deleted, and the ids that still remain are
// returned so a retry can target only the remainder.
func (s *CartStore) RemoveAll(ctx context.Context, items []domain.CartItem) ([]string, error) {
	for i, item := range items {
		if err := s.Remove(ctx, item.ID); err != nil {
			remaining := make([]string, 0, len(items)-i)
			for _, rest := range items[i:] {
				remaining = append(remaining, rest.ID)
			}
			s.logger.Error("Batch removal interrupted",
				zap.String("failed_item", item.ID),
				zap.Int("remaining", len(remaining)),
				zap.Error(err),
			)
			return remaining, err
		}
	}
	return nil, nil
}

// ToggleSelected flips the checkout-selection flag of one line. Local only,
// no network call.
func (s *CartStore) ToggleSelected(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Selected = !s.items[i].Selected
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "cart item", ID: itemID}
}

// Items returns a snapshot of the cart lines.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// SelectedItems returns a snapshot of the lines marked for checkout.
func (s *CartStore) SelectedItems() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.CartItem
	for _, item := range s.items {
		if item.Selected {
			out = append(out, item)
		}
	}
	return out
}

// Total sums price times quantity over the cart. With selectedOnly it covers
// only lines marked for checkout and is zero when none are.
func (s *CartStore) Total(selectedOnly bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, item := range s.items {
		if selectedOnly && !item.Selected {
			continue
		}
		total += item.LineTotal()
	}
	return total
}

// find locates a line by id. Caller must hold s.mu.
func (s *CartStore) find(itemID string) (domain.CartItem, bool) {
	for _, item := range s.items {
		if item.ID == itemID {
			return item, true
		}
	}
	return domain.CartItem{}, false
}
