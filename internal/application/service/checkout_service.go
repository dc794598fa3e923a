package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	"github.com/dquispe/pos-backoffice/internal/domain/enum"
	"github.com/dquispe/pos-backoffice/internal/domain/repository"
	"github.com/dquispe/pos-backoffice/pkg/apperror"
	"github.com/dquispe/pos-backoffice/pkg/email"
	"github.com/dquispe/pos-backoffice/pkg/pagination"
	"github.com/google/uuid"
)

// Seed values used when the lookup tables are empty at checkout time
const (
	defaultIdentificationType = "DNI"
	defaultSalesChannel       = "Walk-in"
	defaultSalespersonName    = "Default Salesperson"
	defaultSalespersonEmail   = "sales@localhost"
)

// CheckoutService converts carts into orders and drives the order
// lifecycle. Stock is decremented atomically at checkout and restored
// on cancellation.
type CheckoutService struct {
	orderRepo       repository.OrderRepository
	articleRepo     repository.ArticleRepository
	customerRepo    repository.CustomerRepository
	salespersonRepo repository.SalespersonRepository
	userRepo        repository.UserRepository
	cartStore       repository.CartStore
	emailService    *email.EmailService
	node            *snowflake.Node
	storeName       string
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	articleRepo repository.ArticleRepository,
	customerRepo repository.CustomerRepository,
	salespersonRepo repository.SalespersonRepository,
	userRepo repository.UserRepository,
	cartStore repository.CartStore,
	emailService *email.EmailService,
	node *snowflake.Node,
	storeName string,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:       orderRepo,
		articleRepo:     articleRepo,
		customerRepo:    customerRepo,
		salespersonRepo: salespersonRepo,
		userRepo:        userRepo,
		cartStore:       cartStore,
		emailService:    emailService,
		node:            node,
		storeName:       storeName,
	}
}

// Checkout turns the user's cart into a persisted order. Stock for every
// cart line is decremented in one transaction; if any article lacks stock
// nothing is written and the cart is left untouched. On success the cart
// is cleared and a confirmation email is sent best-effort.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, notes string) (*entity.Order, error) {
	cart, err := s.cartStore.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperror.ErrEmptyCart
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}

	customer, err := s.resolveCustomer(ctx, user)
	if err != nil {
		return nil, err
	}

	salesperson, err := s.resolveSalesperson(ctx)
	if err != nil {
		return nil, err
	}

	articleIDs := make([]uuid.UUID, 0, cart.Len())
	for _, item := range cart.Items {
		articleIDs = append(articleIDs, item.ArticleID)
	}
	articles, err := s.articleRepo.GetByIDs(ctx, articleIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Article, len(articles))
	for i := range articles {
		byID[articles[i].ID] = &articles[i]
	}

	items := make([]entity.OrderItem, 0, cart.Len())
	decrements := make(map[uuid.UUID]int, cart.Len())
	var total int64
	for i, line := range cart.Items {
		article, ok := byID[line.ArticleID]
		if !ok || !article.Active {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Article %s", line.Code))
		}

		unitPrice := line.UnitPrice
		if unitPrice == 0 {
			// The article had no price when it was added to the cart;
			// use whatever the price list says now.
			unitPrice = article.CurrentPrice()
		}

		lineTotal := int64(line.Quantity) * unitPrice
		items = append(items, entity.OrderItem{
			ItemNo:    i + 1,
			ArticleID: article.ID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			Total:     lineTotal,
		})
		decrements[article.ID] = line.Quantity
		total += lineTotal
	}

	failed, err := s.articleRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		short := byID[failed[0]]
		return nil, apperror.NewInsufficientStockError(short.Description, short.Stock)
	}

	order := &entity.Order{
		Number:        fmt.Sprintf("ORD-%s", s.node.Generate().String()),
		OrderDate:     time.Now().UTC().Truncate(24 * time.Hour),
		CustomerID:    customer.ID,
		SalespersonID: salesperson.ID,
		Status:        enum.OrderStatusPending,
		Total:         total,
		Notes:         notes,
		CreatedByID:   user.ID,
	}
	if err := s.orderRepo.CreateWithItems(ctx, order, items); err != nil {
		// Stock was already taken; give it back before reporting failure.
		if restoreErr := s.articleRepo.AtomicIncrementBatch(ctx, decrements); restoreErr != nil {
			log.Printf("failed to restore stock after aborted checkout %s: %v", order.Number, restoreErr)
		}
		return nil, err
	}

	if err := s.cartStore.Delete(ctx, userID); err != nil {
		log.Printf("failed to clear cart for user %s after checkout: %v", userID, err)
	}

	s.sendConfirmation(customer, order, items, byID)

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// resolveCustomer finds the customer matching the user's email, creating
// one with seeded defaults on first purchase.
func (s *CheckoutService) resolveCustomer(ctx context.Context, user *entity.User) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		return customer, nil
	}

	idType, err := s.customerRepo.FirstActiveIdentificationType(ctx)
	if err != nil {
		return nil, err
	}
	if idType == nil {
		idType = &entity.IdentificationType{Name: defaultIdentificationType, Active: true}
		if err := s.customerRepo.CreateIdentificationType(ctx, idType); err != nil {
			return nil, err
		}
	}

	channel, err := s.customerRepo.FirstActiveChannel(ctx)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		channel = &entity.SalesChannel{Name: defaultSalesChannel, Active: true}
		if err := s.customerRepo.CreateChannel(ctx, channel); err != nil {
			return nil, err
		}
	}

	customer = &entity.Customer{
		IdentificationTypeID: idType.ID,
		DocumentNumber:       "0000000000",
		Name:                 user.FullName,
		Email:                user.Email,
		ChannelID:            channel.ID,
		Active:               true,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CheckoutService) resolveSalesperson(ctx context.Context) (*entity.Salesperson, error) {
	sp, err := s.salespersonRepo.FirstActive(ctx)
	if err != nil {
		return nil, err
	}
	if sp != nil {
		return sp, nil
	}

	sp = &entity.Salesperson{
		Name:   defaultSalespersonName,
		Email:  defaultSalespersonEmail,
		Active: true,
	}
	if err := s.salespersonRepo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// sendConfirmation emails the order summary. Failures are logged, never
// surfaced: a lost email must not fail a completed checkout.
func (s *CheckoutService) sendConfirmation(customer *entity.Customer, order *entity.Order, items []entity.OrderItem, articles map[uuid.UUID]*entity.Article) {
	if s.emailService == nil || !s.emailService.IsConfigured() {
		return
	}

	confirmation := email.OrderConfirmation{
		CustomerName: customer.Name,
		OrderNumber:  order.Number,
		OrderDate:    order.OrderDate.Format("2006-01-02"),
		Total:        fmt.Sprintf("%.2f", float64(order.Total)/100),
		StoreName:    s.storeName,
	}
	for _, item := range items {
		description := ""
		if article, ok := articles[item.ArticleID]; ok {
			description = article.Description
		}
		confirmation.Items = append(confirmation.Items, email.OrderConfirmationItem{
			Description: description,
			Quantity:    item.Quantity,
			UnitPrice:   fmt.Sprintf("%.2f", float64(item.UnitPrice)/100),
			Total:       fmt.Sprintf("%.2f", float64(item.Total)/100),
		})
	}

	if err := s.emailService.SendOrderConfirmation(customer.Email, confirmation); err != nil {
		log.Printf("failed to send confirmation for order %s: %v", order.Number, err)
	}
}

// GetOrder returns an order with its items. Non-staff users can only see
// orders they created.
func (s *CheckoutService) GetOrder(ctx context.Context, orderID, userID uuid.UUID, isStaff bool) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !isStaff && order.CreatedByID != userID {
		return nil, apperror.ErrForbidden
	}
	return order, nil
}

// ListOrders lists orders with filters. Non-staff users are restricted to
// orders belonging to their own customer record.
func (s *CheckoutService) ListOrders(ctx context.Context, params *repository.OrderFilterParams, userID uuid.UUID, isStaff bool) (*pagination.PaginatedResult[entity.Order], error) {
	if !isStaff {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperror.ErrUnauthorized
		}
		customer, err := s.customerRepo.GetByEmail(ctx, user.Email)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			// Never bought anything, so there is nothing to list.
			pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, 0)
			return pagination.NewPaginatedResult([]entity.Order{}, pag), nil
		}
		params.CustomerID = &customer.ID
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// CancelOrder cancels a Pending order and puts its stock back. Staff can
// cancel any order; other users only their own. Orders past Pending
// cannot be cancelled through this path.
func (s *CheckoutService) CancelOrder(ctx context.Context, orderID, userID uuid.UUID, isStaff bool) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !isStaff && order.CreatedByID != userID {
		return nil, apperror.ErrForbidden
	}

	cancelled, err := s.orderRepo.CancelWithRestock(ctx, orderID, enum.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return nil, apperror.NewInvalidStateError(
			fmt.Sprintf("Order %s cannot be cancelled in status %s", order.Number, order.Status))
	}

	return s.orderRepo.GetWithItems(ctx, orderID)
}

// UpdateStatus moves an order along its lifecycle. Transitions into
// Cancelled restore stock; terminal orders never change again.
func (s *CheckoutService) UpdateStatus(ctx context.Context, orderID uuid.UUID, target enum.OrderStatus) (*entity.Order, error) {
	if !target.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown order status")
	}

	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, apperror.NewInvalidStateError(
			fmt.Sprintf("Order %s cannot move from %s to %s", order.Number, order.Status, target))
	}

	// Every transition is guarded on the status the decision was made
	// against, so a concurrent transition loses instead of double-applying.
	var moved bool
	if target == enum.OrderStatusCancelled {
		// Pending and Processing orders both hold decremented stock;
		// the flip and the restock commit together.
		moved, err = s.orderRepo.CancelWithRestock(ctx, orderID, order.Status)
	} else {
		moved, err = s.orderRepo.TransitionStatus(ctx, orderID, order.Status, target)
	}
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, apperror.NewInvalidStateError(
			fmt.Sprintf("Order %s changed status concurrently", order.Number))
	}
	return s.orderRepo.GetWithItems(ctx, orderID)
}

// RecomputeTotal re-derives the stored order total from its line items
func (s *CheckoutService) RecomputeTotal(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	total, err := s.orderRepo.SumItemTotals(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateTotal(ctx, orderID, total); err != nil {
		return nil, err
	}
	return s.orderRepo.GetWithItems(ctx, orderID)
}
