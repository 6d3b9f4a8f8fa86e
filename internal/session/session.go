package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenshop/storefront/internal/checkout"
	"github.com/greenshop/storefront/internal/store"
	"github.com/greenshop/storefront/pkg/errors"
)

// RemoteAPI is everything the stores need from the remote gateway.
// *gateway.Client satisfies it.
type RemoteAPI interface {
	store.CartAPI
	store.AddressAPI
	store.OrderAPI
}

// Session bundles one user's stores and checkout orchestrator. It is created
// when the user signs in and discarded on logout; nothing about it lives in
// package-level state.
type Session struct {
	ID        uuid.UUID
	UserID    string
	Cart      *store.CartStore
	Addresses *store.AddressStore
	Orders    *store.OrderStore
	Checkout  *checkout.Orchestrator
	CreatedAt time.Time

	tokenHash string
}

// Manager owns the live sessions. Tokens are minted by the external identity
// service; the manager only stores a bcrypt hash and verifies presented
// tokens against it, never the token itself.
type Manager struct {
	mu          sync.Mutex
	sessions    map[uuid.UUID]*Session
	api         RemoteAPI
	shippingFee int64
	logger      *zap.Logger
}

// NewManager creates a session manager.
func NewManager(api RemoteAPI, shippingFee int64, logger *zap.Logger) *Manager {
	return &Manager{
		sessions:    make(map[uuid.UUID]*Session),
		api:         api,
		shippingFee: shippingFee,
		logger:      logger,
	}
}

// Create registers a session for the user, wiring fresh stores to the remote
// gateway.
func (m *Manager) Create(userID, token string) (*Session, error) {
	tokenHash, err := bcrypt.GenerateFromPassword([]byte(token), 10)
	if err != nil {
		return nil, err
	}

	cart := store.NewCartStore(m.api, userID, m.logger)
	addresses := store.NewAddressStore(m.api, userID, m.logger)
	orders := store.NewOrderStore(m.api, userID, m.logger)

	s := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Cart:      cart,
		Addresses: addresses,
		Orders:    orders,
		Checkout:  checkout.NewOrchestrator(cart, addresses, orders, m.shippingFee, m.logger),
		CreatedAt: time.Now(),
		tokenHash: string(tokenHash),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	m.logger.Info("Session created",
		zap.String("session_id", s.ID.String()),
		zap.String("user_id", userID),
	)
	return s, nil
}

// Authenticate resolves a presented token to a live session.
// Since bcrypt hashes are salted and different each time, we can't do a
// direct lookup; we verify the token against each live session's hash.
func (m *Manager) Authenticate(token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if err := bcrypt.CompareHashAndPassword([]byte(s.tokenHash), []byte(token)); err == nil {
			return s, nil
		}
	}
	return nil, &errors.ErrUnauthorized{Message: "invalid session token"}
}

// Delete discards a session on logout. Deleting an unknown id is a no-op.
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		m.logger.Info("Session discarded", zap.String("session_id", id.String()))
	}
}
