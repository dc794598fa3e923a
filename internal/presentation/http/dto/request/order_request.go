package request

import (
	"github.com/dquispe/pos-backoffice/internal/domain/enum"
	"github.com/google/uuid"
)

// AddCartItemRequest puts an article into the session cart. When Replace
// is true the stored quantity is overwritten instead of accumulated.
type AddCartItemRequest struct {
	ArticleID uuid.UUID `json:"article_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
	Replace   bool      `json:"replace"`
}

// CheckoutRequest converts the session cart into an order
type CheckoutRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// UpdateOrderStatusRequest moves an order along its lifecycle
type UpdateOrderStatusRequest struct {
	Status enum.OrderStatus `json:"status" binding:"required"`
}
