package repository

import (
	"context"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	"github.com/dquispe/pos-backoffice/pkg/pagination"
	"github.com/google/uuid"
)

// ArticleGroupRepository defines data operations for catalog groups
type ArticleGroupRepository interface {
	Create(ctx context.Context, group *entity.ArticleGroup) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ArticleGroup, error)
	GetByName(ctx context.Context, name string) (*entity.ArticleGroup, error)
	Update(ctx context.Context, group *entity.ArticleGroup) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.ArticleGroup, int64, error)
}

// ArticleLineRepository defines data operations for catalog lines
type ArticleLineRepository interface {
	Create(ctx context.Context, line *entity.ArticleLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ArticleLine, error)
	Update(ctx context.Context, line *entity.ArticleLine) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.ArticleLine, int64, error)
	// ActiveByGroup returns the active lines belonging to a group. An
	// unknown group yields an empty slice, not an error.
	ActiveByGroup(ctx context.Context, groupID uuid.UUID) ([]entity.ArticleLine, error)
	// CountArticles returns how many articles reference the line
	CountArticles(ctx context.Context, lineID uuid.UUID) (int64, error)
}

// ArticleFilterParams contains filtering parameters for article queries
type ArticleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	GroupID    *uuid.UUID
	LineID     *uuid.UUID
	LowStock   bool
	OnlyActive bool
}

// ArticleRepository defines data operations for articles and their prices
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Article, error)
	GetByCode(ctx context.Context, code string) (*entity.Article, error)
	// GetByIDs retrieves multiple articles with prices in a single query
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Article, error)
	Update(ctx context.Context, article *entity.Article) error
	List(ctx context.Context, params *ArticleFilterParams) ([]entity.Article, int64, error)
	// RelatedByLine returns up to limit other active articles on the same line
	RelatedByLine(ctx context.Context, lineID, excludeID uuid.UUID, limit int) ([]entity.Article, error)

	// SavePrice creates or updates the article's single price list entry
	SavePrice(ctx context.Context, price *entity.PriceList) error

	// AtomicDecrementBatch atomically decrements stock for multiple articles
	// inside one transaction; an article whose stock would go negative causes
	// the whole transaction to roll back and its ID to be reported.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error)
	// AtomicIncrementBatch atomically restores stock (cancellations)
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error

	// Counts used by the dashboard
	CountActive(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
}
