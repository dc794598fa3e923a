package service

import (
	"context"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	"github.com/dquispe/pos-backoffice/internal/domain/repository"
	"github.com/dquispe/pos-backoffice/pkg/apperror"
	"github.com/google/uuid"
)

// CartService manages the session-scoped pending-purchase list. The cart
// lives entirely in the cart store; nothing touches order or stock tables
// until checkout.
type CartService struct {
	store       repository.CartStore
	articleRepo repository.ArticleRepository
}

// NewCartService creates a new cart service
func NewCartService(store repository.CartStore, articleRepo repository.ArticleRepository) *CartService {
	return &CartService{
		store:       store,
		articleRepo: articleRepo,
	}
}

// Get returns the user's cart, empty when none exists
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	return s.store.Get(ctx, userID)
}

// AddItem puts quantity units of the article into the user's cart. When
// replace is true any existing quantity is overwritten instead of added to.
// The unit price is snapshotted from the article's price list at add time.
func (s *CartService) AddItem(ctx context.Context, userID, articleID uuid.UUID, quantity int, replace bool) (*entity.Cart, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil || !article.Active {
		return nil, apperror.NewNotFoundError("Article")
	}

	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	requested := quantity
	if !replace {
		requested += cart.Quantity(article.ID)
	}
	if requested > article.Stock {
		return nil, apperror.NewInsufficientStockError(article.Description, article.Stock)
	}

	item := entity.CartItem{
		ArticleID:   article.ID,
		Code:        article.Code,
		Description: article.Description,
		Quantity:    quantity,
		UnitPrice:   article.CurrentPrice(),
	}
	if err := cart.Add(item, replace); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the article from the user's cart. Removing an article
// that is not in the cart is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, articleID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Remove(articleID)

	if err := s.store.Save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Delete(ctx, userID)
}
