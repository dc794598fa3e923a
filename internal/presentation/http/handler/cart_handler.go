package handler

import (
	"github.com/dquispe/pos-backoffice/internal/application/service"
	"github.com/dquispe/pos-backoffice/internal/presentation/http/dto/request"
	"github.com/dquispe/pos-backoffice/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CartHandler handles session cart HTTP requests
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the authenticated user's cart
func (h *CartHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved successfully", cart)
}

// AddItem adds an article to the cart or updates its quantity
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), *userID, req.ArticleID, req.Quantity, req.Replace)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added to cart", cart)
}

// RemoveItem removes an article from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	articleID, ok := parseIDParam(c, "article_id")
	if !ok {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), *userID, articleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed from cart", cart)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), *userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
