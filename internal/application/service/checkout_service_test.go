package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	"github.com/dquispe/pos-backoffice/internal/domain/enum"
	domainRepo "github.com/dquispe/pos-backoffice/internal/domain/repository"
	"github.com/dquispe/pos-backoffice/internal/infrastructure/cache"
	infraRepo "github.com/dquispe/pos-backoffice/internal/infrastructure/repository"
	"github.com/dquispe/pos-backoffice/pkg/apperror"
	"github.com/dquispe/pos-backoffice/pkg/email"
	"github.com/dquispe/pos-backoffice/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.ArticleGroup{},
		&entity.ArticleLine{},
		&entity.Article{},
		&entity.PriceList{},
		&entity.IdentificationType{},
		&entity.SalesChannel{},
		&entity.Customer{},
		&entity.Salesperson{},
		&entity.Order{},
		&entity.OrderItem{},
	))
	return db
}

type checkoutFixture struct {
	db          *gorm.DB
	cartStore   domainRepo.CartStore
	articleRepo domainRepo.ArticleRepository
	orderRepo   domainRepo.OrderRepository
	checkout    *CheckoutService
	user        *entity.User
	group       *entity.ArticleGroup
	line        *entity.ArticleLine
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cartStore := cache.NewMemoryCartStore()
	articleRepo := infraRepo.NewArticleRepository(db)
	orderRepo := infraRepo.NewOrderRepository(db)

	checkout := NewCheckoutService(
		orderRepo,
		articleRepo,
		infraRepo.NewCustomerRepository(db),
		infraRepo.NewSalespersonRepository(db),
		infraRepo.NewUserRepository(db),
		cartStore,
		email.NewEmailService(email.EmailConfig{}),
		node,
		"Test Store",
	)

	user := &entity.User{FullName: "Ada Buyer", Email: "ada@example.com", Active: true}
	require.NoError(t, db.Create(user).Error)

	group := &entity.ArticleGroup{Name: "Beverages", Active: true}
	require.NoError(t, db.Create(group).Error)
	line := &entity.ArticleLine{Name: "Sodas", GroupID: group.ID, Active: true}
	require.NoError(t, db.Create(line).Error)

	return &checkoutFixture{
		db:          db,
		cartStore:   cartStore,
		articleRepo: articleRepo,
		orderRepo:   orderRepo,
		checkout:    checkout,
		user:        user,
		group:       group,
		line:        line,
	}
}

func (f *checkoutFixture) createArticle(t *testing.T, code string, stock int, priceCents int64) *entity.Article {
	t.Helper()
	article := &entity.Article{
		Code:         code,
		Description:  "Article " + code,
		GroupID:      f.group.ID,
		LineID:       f.line.ID,
		Stock:        stock,
		ReorderLevel: 5,
		Active:       true,
	}
	require.NoError(t, f.db.Create(article).Error)
	if priceCents > 0 {
		require.NoError(t, f.db.Create(&entity.PriceList{ArticleID: article.ID, Price1: priceCents}).Error)
	}
	return article
}

func (f *checkoutFixture) addToCart(t *testing.T, article *entity.Article, qty int, priceCents int64) {
	t.Helper()
	ctx := context.Background()
	cart, err := f.cartStore.Get(ctx, f.user.ID)
	require.NoError(t, err)
	require.NoError(t, cart.Add(entity.CartItem{
		ArticleID:   article.ID,
		Code:        article.Code,
		Description: article.Description,
		Quantity:    qty,
		UnitPrice:   priceCents,
	}, false))
	require.NoError(t, f.cartStore.Save(ctx, f.user.ID, cart))
}

func (f *checkoutFixture) stockOf(t *testing.T, id uuid.UUID) int {
	t.Helper()
	article, err := f.articleRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, article)
	return article.Stock
}

func TestCheckoutCreatesOrderAndDecrementsStock(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 10, 999)
	chips := f.createArticle(t, "CHIPS-1", 4, 250)
	f.addToCart(t, soda, 5, 999)
	f.addToCart(t, chips, 2, 250)

	order, err := f.checkout.Checkout(ctx, f.user.ID, "leave at the counter")
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.True(t, strings.HasPrefix(order.Number, "ORD-"))
	assert.Equal(t, enum.OrderStatusPending, order.Status)
	// 9.99 x 5 + 2.50 x 2 = 54.95
	assert.Equal(t, int64(5495), order.Total)
	assert.Equal(t, "leave at the counter", order.Notes)
	assert.Equal(t, f.user.ID, order.CreatedByID)

	require.Len(t, order.Items, 2)
	assert.Equal(t, 1, order.Items[0].ItemNo)
	assert.Equal(t, 2, order.Items[1].ItemNo)
	assert.Equal(t, order.Total, order.ItemsTotal())

	assert.Equal(t, 5, f.stockOf(t, soda.ID))
	assert.Equal(t, 2, f.stockOf(t, chips.ID))

	// Customer was lazily created from the user's email
	assert.Equal(t, "ada@example.com", order.Customer.Email)
	assert.Equal(t, "Ada Buyer", order.Customer.Name)

	// Cart is cleared after a successful checkout
	cart, err := f.cartStore.Get(ctx, f.user.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.checkout.Checkout(context.Background(), f.user.ID, "")
	require.Error(t, err)
	assert.Equal(t, apperror.ErrEmptyCart, err)

	var count int64
	require.NoError(t, f.db.Model(&entity.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 3, 999)
	plenty := f.createArticle(t, "WATER-1", 100, 150)
	f.addToCart(t, plenty, 2, 150)
	f.addToCart(t, soda, 5, 999)

	_, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
	assert.Contains(t, appErr.Message, "Insufficient stock")

	// Nothing was written and no stock moved, including the article that
	// did have enough units
	assert.Equal(t, 3, f.stockOf(t, soda.ID))
	assert.Equal(t, 100, f.stockOf(t, plenty.ID))

	var count int64
	require.NoError(t, f.db.Model(&entity.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// The cart survives so the user can adjust quantities and retry
	cart, err := f.cartStore.Get(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Len())
}

func TestCheckoutCompetingCartsOnLimitedStock(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 5, 999)
	f.addToCart(t, soda, 3, 999)

	rival := &entity.User{FullName: "Bea Buyer", Email: "bea@example.com", Active: true}
	require.NoError(t, f.db.Create(rival).Error)
	cart, err := f.cartStore.Get(ctx, rival.ID)
	require.NoError(t, err)
	require.NoError(t, cart.Add(entity.CartItem{
		ArticleID:   soda.ID,
		Code:        soda.Code,
		Description: soda.Description,
		Quantity:    3,
		UnitPrice:   999,
	}, false))
	require.NoError(t, f.cartStore.Save(ctx, rival.ID, cart))

	// Stock 5 cannot satisfy both quantity-3 carts; exactly one wins
	order, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPending, order.Status)
	assert.Equal(t, 2, f.stockOf(t, soda.ID))

	_, err = f.checkout.Checkout(ctx, rival.ID, "")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
	assert.Contains(t, appErr.Message, "Available: 2")

	// The loser moved no stock and wrote no order
	assert.Equal(t, 2, f.stockOf(t, soda.ID))
	var count int64
	require.NoError(t, f.db.Model(&entity.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCheckoutPriceFallback(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	// Article had no price when it went into the cart (snapshot price 0);
	// a price list entry exists by checkout time
	article := f.createArticle(t, "LATE-1", 10, 775)
	f.addToCart(t, article, 2, 0)

	order, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(775), order.Items[0].UnitPrice)
	assert.Equal(t, int64(1550), order.Total)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 10, 999)
	f.addToCart(t, soda, 5, 999)

	order, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)
	require.Equal(t, 5, f.stockOf(t, soda.ID))

	cancelled, err := f.checkout.CancelOrder(ctx, order.ID, f.user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 10, f.stockOf(t, soda.ID))

	// A second cancel fails and must not restock again
	_, err = f.checkout.CancelOrder(ctx, order.ID, f.user.ID, false)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
	assert.Equal(t, 10, f.stockOf(t, soda.ID))
}

func TestCancelOrderRequiresPendingStatus(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 10, 999)
	f.addToCart(t, soda, 1, 999)
	order, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)

	_, err = f.checkout.UpdateStatus(ctx, order.ID, enum.OrderStatusProcessing)
	require.NoError(t, err)

	_, err = f.checkout.CancelOrder(ctx, order.ID, f.user.ID, false)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
	assert.Equal(t, 9, f.stockOf(t, soda.ID))
}

func TestCancelOrderPermissions(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 10, 999)
	f.addToCart(t, soda, 1, 999)
	order, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)

	stranger := &entity.User{FullName: "Sam Stranger", Email: "sam@example.com", Active: true}
	require.NoError(t, f.db.Create(stranger).Error)

	_, err = f.checkout.CancelOrder(ctx, order.ID, stranger.ID, false)
	require.Error(t, err)
	assert.Equal(t, 403, apperror.GetAppError(err).Code)

	// Staff may cancel on behalf of anyone
	cancelled, err := f.checkout.CancelOrder(ctx, order.ID, stranger.ID, true)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, cancelled.Status)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 10, 999)
	f.addToCart(t, soda, 2, 999)
	order, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)

	order, err = f.checkout.UpdateStatus(ctx, order.ID, enum.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusProcessing, order.Status)

	order, err = f.checkout.UpdateStatus(ctx, order.ID, enum.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCompleted, order.Status)

	// Terminal orders never transition again
	_, err = f.checkout.UpdateStatus(ctx, order.ID, enum.OrderStatusCancelled)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Completion keeps the stock decrement in place
	assert.Equal(t, 8, f.stockOf(t, soda.ID))
}

func TestUpdateStatusCancelFromProcessingRestocks(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 10, 999)
	f.addToCart(t, soda, 4, 999)
	order, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)

	_, err = f.checkout.UpdateStatus(ctx, order.ID, enum.OrderStatusProcessing)
	require.NoError(t, err)
	require.Equal(t, 6, f.stockOf(t, soda.ID))

	order, err = f.checkout.UpdateStatus(ctx, order.ID, enum.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, order.Status)
	assert.Equal(t, 10, f.stockOf(t, soda.ID))
}

func TestOrderTransitionsGuardOnExpectedStatus(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 10, 999)
	f.addToCart(t, soda, 4, 999)
	order, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)

	_, err = f.checkout.UpdateStatus(ctx, order.ID, enum.OrderStatusProcessing)
	require.NoError(t, err)
	require.Equal(t, 6, f.stockOf(t, soda.ID))

	// Two cancels of the same Processing order: only the first one
	// restocks, the second loses the conditional flip
	moved, err := f.orderRepo.CancelWithRestock(ctx, order.ID, enum.OrderStatusProcessing)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 10, f.stockOf(t, soda.ID))

	moved, err = f.orderRepo.CancelWithRestock(ctx, order.ID, enum.OrderStatusProcessing)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 10, f.stockOf(t, soda.ID))

	// A plain transition holding a stale expected status loses the same way
	moved, err = f.orderRepo.TransitionStatus(ctx, order.ID, enum.OrderStatusProcessing, enum.OrderStatusCompleted)
	require.NoError(t, err)
	assert.False(t, moved)

	got, err := f.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, enum.OrderStatusCancelled, got.Status)
}

func TestGetOrderScopedToOwner(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 10, 999)
	f.addToCart(t, soda, 1, 999)
	order, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)

	stranger := &entity.User{FullName: "Sam Stranger", Email: "sam@example.com", Active: true}
	require.NoError(t, f.db.Create(stranger).Error)

	_, err = f.checkout.GetOrder(ctx, order.ID, stranger.ID, false)
	require.Error(t, err)
	assert.Equal(t, 403, apperror.GetAppError(err).Code)

	got, err := f.checkout.GetOrder(ctx, order.ID, stranger.ID, true)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	got, err = f.checkout.GetOrder(ctx, order.ID, f.user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestListOrdersScopedToOwnCustomer(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 10, 999)
	f.addToCart(t, soda, 1, 999)
	_, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)

	stranger := &entity.User{FullName: "Sam Stranger", Email: "sam@example.com", Active: true}
	require.NoError(t, f.db.Create(stranger).Error)

	params := func() *domainRepo.OrderFilterParams {
		return &domainRepo.OrderFilterParams{Pagination: pagination.DefaultPagination()}
	}

	mine, err := f.checkout.ListOrders(ctx, params(), f.user.ID, false)
	require.NoError(t, err)
	assert.Len(t, mine.Items, 1)

	// A user with no purchases sees an empty page, not someone else's orders
	theirs, err := f.checkout.ListOrders(ctx, params(), stranger.ID, false)
	require.NoError(t, err)
	assert.Empty(t, theirs.Items)
	assert.Equal(t, int64(0), theirs.Pagination.Total)

	all, err := f.checkout.ListOrders(ctx, params(), stranger.ID, true)
	require.NoError(t, err)
	assert.Len(t, all.Items, 1)
}

func TestRecomputeTotal(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 10, 999)
	f.addToCart(t, soda, 3, 999)
	order, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)

	// Knock the stored total out of sync, then recompute from the items
	require.NoError(t, f.db.Model(&entity.Order{}).Where("id = ?", order.ID).Update("total", 1).Error)

	fixed, err := f.checkout.RecomputeTotal(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2997), fixed.Total)
}

func TestCheckoutReusesExistingCustomer(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	soda := f.createArticle(t, "SODA-1", 10, 999)

	f.addToCart(t, soda, 1, 999)
	first, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)

	f.addToCart(t, soda, 1, 999)
	second, err := f.checkout.Checkout(ctx, f.user.ID, "")
	require.NoError(t, err)

	assert.Equal(t, first.CustomerID, second.CustomerID)
	assert.NotEqual(t, first.Number, second.Number)

	var count int64
	require.NoError(t, f.db.Model(&entity.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
