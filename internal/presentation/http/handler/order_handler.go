package handler

import (
	"time"

	"github.com/dquispe/pos-backoffice/internal/application/service"
	"github.com/dquispe/pos-backoffice/internal/domain/enum"
	"github.com/dquispe/pos-backoffice/internal/domain/repository"
	"github.com/dquispe/pos-backoffice/internal/presentation/http/dto/request"
	"github.com/dquispe/pos-backoffice/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles checkout and order lifecycle HTTP requests
type OrderHandler struct {
	checkoutService *service.CheckoutService
	receiptService  *service.ReceiptService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(checkoutService *service.CheckoutService, receiptService *service.ReceiptService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		receiptService:  receiptService,
	}
}

// Checkout converts the user's cart into an order
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.checkoutService.Checkout(c.Request.Context(), *userID, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// List handles listing orders with filters
func (h *OrderHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: bindPagination(c),
		Search:     c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		var status enum.OrderStatus
		if err := status.UnmarshalJSON([]byte(`"` + statusStr + `"`)); err == nil && status.IsValid() {
			params.Status = &status
		}
	}
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}
	if startStr := c.Query("start_date"); startStr != "" {
		if start, err := time.Parse("2006-01-02", startStr); err == nil {
			params.StartDate = &start
		}
	}
	if endStr := c.Query("end_date"); endStr != "" {
		if end, err := time.Parse("2006-01-02", endStr); err == nil {
			params.EndDate = &end
		}
	}

	result, err := h.checkoutService.ListOrders(c.Request.Context(), params, *userID, IsStaff(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get handles retrieving a single order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.checkoutService.GetOrder(c.Request.Context(), id, *userID, IsStaff(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Cancel cancels a Pending order and restores its stock
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.checkoutService.CancelOrder(c.Request.Context(), id, *userID, IsStaff(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", order)
}

// UpdateStatus moves an order along its lifecycle (staff only)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.checkoutService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", order)
}

// RecomputeTotal re-derives the order total from its line items (staff only)
func (h *OrderHandler) RecomputeTotal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.checkoutService.RecomputeTotal(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order total recomputed successfully", order)
}

// Receipt returns the order receipt as JSON
func (h *OrderHandler) Receipt(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	// Permission check rides on GetOrder
	if _, err := h.checkoutService.GetOrder(c.Request.Context(), id, *userID, IsStaff(c)); err != nil {
		response.Error(c, err)
		return
	}

	receipt, err := h.receiptService.BuildReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt built successfully", receipt)
}

// ReceiptPDF streams the order receipt as a PDF document
func (h *OrderHandler) ReceiptPDF(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if _, err := h.checkoutService.GetOrder(c.Request.Context(), id, *userID, IsStaff(c)); err != nil {
		response.Error(c, err)
		return
	}

	data, filename, err := h.receiptService.RenderPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/pdf", data)
}
