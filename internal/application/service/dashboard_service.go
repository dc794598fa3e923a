package service

import (
	"context"

	"github.com/dquispe/pos-backoffice/internal/domain/enum"
	"github.com/dquispe/pos-backoffice/internal/domain/repository"
)

// DashboardStats holds the headline counts shown on the back office home
type DashboardStats struct {
	ActiveArticles  int64 `json:"active_articles"`
	LowStock        int64 `json:"low_stock"`
	ActiveCustomers int64 `json:"active_customers"`
	PendingOrders   int64 `json:"pending_orders"`
}

// DashboardService aggregates counts for the back office landing page
type DashboardService struct {
	articleRepo  repository.ArticleRepository
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	articleRepo repository.ArticleRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
) *DashboardService {
	return &DashboardService{
		articleRepo:  articleRepo,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
	}
}

// Stats returns the current dashboard counters
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	articles, err := s.articleRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.articleRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.orderRepo.CountByStatus(ctx, enum.OrderStatusPending)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		ActiveArticles:  articles,
		LowStock:        lowStock,
		ActiveCustomers: customers,
		PendingOrders:   pending,
	}, nil
}
