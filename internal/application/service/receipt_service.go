package service

import (
	"context"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	"github.com/dquispe/pos-backoffice/internal/domain/repository"
	"github.com/dquispe/pos-backoffice/pkg/apperror"
	"github.com/dquispe/pos-backoffice/pkg/pdf"
	"github.com/google/uuid"
)

// ReceiptService composes printable receipts from order data
type ReceiptService struct {
	orderRepo repository.OrderRepository
	header    entity.ReceiptHeader
}

// NewReceiptService creates a new receipt service
func NewReceiptService(orderRepo repository.OrderRepository, header entity.ReceiptHeader) *ReceiptService {
	return &ReceiptService{
		orderRepo: orderRepo,
		header:    header,
	}
}

// BuildReceipt assembles the receipt value object for an order. The caller
// is responsible for any permission checks.
func (s *ReceiptService) BuildReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	receipt := &entity.Receipt{
		Header:      s.header,
		OrderNumber: order.Number,
		Date:        order.OrderDate.Format("2006-01-02"),
		Status:      order.Status.String(),
		Customer:    order.Customer.Name,
		Salesperson: order.Salesperson.Name,
		Notes:       order.Notes,
		Total:       order.GetTotalDecimal(),
	}
	for _, item := range order.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			ItemNo:      item.ItemNo,
			Code:        item.Article.Code,
			Description: item.Article.Description,
			Quantity:    item.Quantity,
			UnitPrice:   float64(item.UnitPrice) / 100,
			Total:       float64(item.Total) / 100,
		})
	}
	return receipt, nil
}

// RenderPDF builds the receipt and renders it as a PDF document
func (s *ReceiptService) RenderPDF(ctx context.Context, orderID uuid.UUID) ([]byte, string, error) {
	receipt, err := s.BuildReceipt(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	data, err := pdf.RenderReceipt(receipt)
	if err != nil {
		return nil, "", err
	}
	filename := "receipt-" + receipt.OrderNumber + ".pdf"
	return data, filename, nil
}
