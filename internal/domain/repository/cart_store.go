package repository

import (
	"context"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	"github.com/google/uuid"
)

// CartStore persists session-scoped carts keyed by user. Implementations
// must return an empty cart (not an error) when no cart exists for the user.
type CartStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	Save(ctx context.Context, userID uuid.UUID, cart *entity.Cart) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
