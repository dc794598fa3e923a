package request

import "github.com/google/uuid"

// CreateGroupRequest creates a catalog group
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateGroupRequest updates a catalog group
type UpdateGroupRequest struct {
	Name   string `json:"name" binding:"omitempty,min=1,max=100"`
	Active *bool  `json:"active"`
}

// CreateLineRequest creates a product line under a group
type CreateLineRequest struct {
	Name    string    `json:"name" binding:"required,min=1,max=100"`
	GroupID uuid.UUID `json:"group_id" binding:"required"`
}

// UpdateLineRequest updates a product line
type UpdateLineRequest struct {
	Name    string     `json:"name" binding:"omitempty,min=1,max=100"`
	GroupID *uuid.UUID `json:"group_id"`
	Active  *bool      `json:"active"`
}

// CreateArticleRequest creates an article with its initial price
type CreateArticleRequest struct {
	Code          string    `json:"code" binding:"required,max=50"`
	Barcode       *string   `json:"barcode"`
	Description   string    `json:"description" binding:"required,max=200"`
	Presentation  *string   `json:"presentation"`
	GroupID       uuid.UUID `json:"group_id" binding:"required"`
	LineID        uuid.UUID `json:"line_id" binding:"required"`
	Stock         int       `json:"stock" binding:"gte=0"`
	ReorderLevel  int       `json:"reorder_level" binding:"gte=0"`
	Price1        float64   `json:"price_1" binding:"required,gt=0"`
	Price2        *float64  `json:"price_2"`
	PurchasePrice *float64  `json:"purchase_price"`
	CostPrice     *float64  `json:"cost_price"`
}

// UpdateArticleRequest updates an article and optionally its prices
type UpdateArticleRequest struct {
	Barcode       *string  `json:"barcode"`
	Description   string   `json:"description" binding:"omitempty,max=200"`
	Presentation  *string  `json:"presentation"`
	Stock         *int     `json:"stock"`
	ReorderLevel  *int     `json:"reorder_level"`
	Active        *bool    `json:"active"`
	Price1        *float64 `json:"price_1"`
	Price2        *float64 `json:"price_2"`
	PurchasePrice *float64 `json:"purchase_price"`
	CostPrice     *float64 `json:"cost_price"`
}
