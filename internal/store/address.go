package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/greenshop/storefront/internal/domain"
	"github.com/greenshop/storefront/pkg/errors"
)

// AddressStore owns the in-memory address collection for one user and
// enforces the single-default invariant on every mutation: after any
// completed write at most one address is marked default. The remote service
// is the nominal source of truth for the flag, but the collection is
// corrected defensively after every response rather than assumed consistent.
type AddressStore struct {
	mu     sync.Mutex
	api    AddressAPI
	logger *zap.Logger
	userID string

	addresses []domain.Address
	gen       uint64
}

// NewAddressStore creates an address store bound to one user.
func NewAddressStore(api AddressAPI, userID string, logger *zap.Logger) *AddressStore {
	return &AddressStore{
		api:    api,
		logger: logger,
		userID: userID,
	}
}

// Load replaces the local collection with the server's list. A response
// overtaken by a newer command is discarded.
func (s *AddressStore) Load(ctx context.Context) error {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	addresses, err := s.api.GetAddresses(ctx, s.userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.addresses = addresses
	s.reconcileDefaults()
	return nil
}

// Create sends a new address to the server and inserts the stored version.
// If the new address is the default, every other address is demoted in the
// same local transaction.
func (s *AddressStore) Create(ctx context.Context, payload domain.AddressPayload) (domain.Address, error) {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()

	created, err := s.api.CreateAddress(ctx, s.userID, payload)
	if err != nil {
		return domain.Address{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if created.IsDefault {
		s.demoteOthers(created.ID)
	}
	s.addresses = append(s.addresses, created)
	s.reconcileDefaults()
	return created, nil
}

// Update rewrites an existing address with the server's stored version,
// demoting the other defaults when the updated address is the default.
func (s *AddressStore) Update(ctx context.Context, addressID string, payload domain.AddressPayload) (domain.Address, error) {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()

	updated, err := s.api.UpdateAddress(ctx, addressID, payload)
	if err != nil {
		return domain.Address{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if updated.IsDefault {
		s.demoteOthers(updated.ID)
	}
	replaced := false
	for i := range s.addresses {
		if s.addresses[i].ID == updated.ID {
			s.addresses[i] = updated
			replaced = true
			break
		}
	}
	if !replaced {
		s.addresses = append(s.addresses, updated)
	}
	s.reconcileDefaults()
	return updated, nil
}

// SetDefault makes one address the owner's default and demotes the rest.
func (s *AddressStore) SetDefault(ctx context.Context, addressID string) error {
	s.mu.Lock()
	if !s.exists(addressID) {
		s.mu.Unlock()
		return &errors.ErrNotFound{Resource: "address", ID: addressID}
	}
	s.gen++
	s.mu.Unlock()

	if _, err := s.api.SetDefaultAddress(ctx, addressID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.addresses {
		s.addresses[i].IsDefault = s.addresses[i].ID == addressID
	}
	return nil
}

// Remove deletes an address after the server confirms.
func (s *AddressStore) Remove(ctx context.Context, addressID string) error {
	s.mu.Lock()
	if !s.exists(addressID) {
		s.mu.Unlock()
		return &errors.ErrNotFound{Resource: "address", ID: addressID}
	}
	s.gen++
	s.mu.Unlock()

	if err := s.api.DeleteAddress(ctx, addressID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.addresses[:0]
	for _, addr := range s.addresses {
		if addr.ID != addressID {
			kept = append(kept, addr)
		}
	}
	s.addresses = kept
	return nil
}

// Addresses returns a snapshot of the collection.
func (s *AddressStore) Addresses() []domain.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Address, len(s.addresses))
	copy(out, s.addresses)
	return out
}

// Default returns the owner's default address, if any.
func (s *AddressStore) Default() (domain.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, addr := range s.addresses {
		if addr.IsDefault {
			return addr, true
		}
	}
	return domain.Address{}, false
}

// demoteOthers clears the default flag on every address except keepID.
// Caller must hold s.mu.
func (s *AddressStore) demoteOthers(keepID string) {
	for i := range s.addresses {
		if s.addresses[i].ID != keepID {
			s.addresses[i].IsDefault = false
		}
	}
}

// reconcileDefaults repairs a collection the server handed back with more
// than one default: the first default wins. Caller must hold s.mu.
func (s *AddressStore) reconcileDefaults() {
	seen := false
	for i := range s.addresses {
		if !s.addresses[i].IsDefault {
			continue
		}
		if seen {
			s.logger.Warn("Multiple default addresses from server, demoting extras",
				zap.String("address_id", s.addresses[i].ID),
			)
			s.addresses[i].IsDefault = false
			continue
		}
		seen = true
	}
}

// exists reports whether an address is in the collection. Caller must hold s.mu.
func (s *AddressStore) exists(addressID string) bool {
	for _, addr := range s.addresses {
		if addr.ID == addressID {
			return true
		}
	}
	return false
}
