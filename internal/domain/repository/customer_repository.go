package repository

import (
	"context"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	"github.com/dquispe/pos-backoffice/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	CountActive(ctx context.Context) (int64, error)

	// Checkout lookups: first active row of each lookup table, creating the
	// seeded default when the table is empty.
	FirstActiveIdentificationType(ctx context.Context) (*entity.IdentificationType, error)
	CreateIdentificationType(ctx context.Context, t *entity.IdentificationType) error
	FirstActiveChannel(ctx context.Context) (*entity.SalesChannel, error)
	CreateChannel(ctx context.Context, c *entity.SalesChannel) error
}

// SalespersonRepository defines the interface for salesperson data operations
type SalespersonRepository interface {
	Create(ctx context.Context, sp *entity.Salesperson) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Salesperson, error)
	FirstActive(ctx context.Context) (*entity.Salesperson, error)
}
