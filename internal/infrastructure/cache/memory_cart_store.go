package cache

import (
	"context"
	"sync"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	domainRepo "github.com/dquispe/pos-backoffice/internal/domain/repository"
	"github.com/google/uuid"
)

type memoryCartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*entity.Cart
}

// NewMemoryCartStore creates an in-process cart store. It is used when no
// Redis address is configured and by tests; carts do not survive restarts.
func NewMemoryCartStore() domainRepo.CartStore {
	return &memoryCartStore{carts: make(map[uuid.UUID]*entity.Cart)}
}

func (s *memoryCartStore) Get(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return entity.NewCart(), nil
	}

	// Copy so callers never mutate shared state outside Save
	cp := entity.Cart{Items: make([]entity.CartItem, len(cart.Items))}
	copy(cp.Items, cart.Items)
	return &cp, nil
}

func (s *memoryCartStore) Save(ctx context.Context, userID uuid.UUID, cart *entity.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := entity.Cart{Items: make([]entity.CartItem, len(cart.Items))}
	copy(cp.Items, cart.Items)
	s.carts[userID] = &cp
	return nil
}

func (s *memoryCartStore) Delete(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}
