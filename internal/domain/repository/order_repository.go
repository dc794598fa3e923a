package repository

import (
	"context"
	"time"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	"github.com/dquispe/pos-backoffice/internal/domain/enum"
	"github.com/dquispe/pos-backoffice/pkg/pagination"
	"github.com/google/uuid"
)

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// CreateWithItems persists the order header and all line items as one
	// atomic unit; a failure leaves no partial state.
	CreateWithItems(ctx context.Context, order *entity.Order, items []entity.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByNumber(ctx context.Context, number string) (*entity.Order, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// TransitionStatus updates the status only while the order still holds
	// the expected from status. It reports false when the guard does not
	// match, so a concurrent transition loses cleanly instead of
	// overwriting.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error)
	UpdateTotal(ctx context.Context, id uuid.UUID, total int64) error
	// CancelWithRestock flips an order from the expected status to
	// Cancelled and adds every line item's quantity back to its article,
	// all in one transaction. It reports false when the order was no
	// longer in the expected status; nothing is restocked in that case.
	CancelWithRestock(ctx context.Context, id uuid.UUID, from enum.OrderStatus) (bool, error)
	// SumItemTotals returns the sum of the order's line item totals in cents
	SumItemTotals(ctx context.Context, id uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, status enum.OrderStatus) (int64, error)
}
