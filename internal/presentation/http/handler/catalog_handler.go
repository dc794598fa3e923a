package handler

import (
	"github.com/dquispe/pos-backoffice/internal/application/service"
	"github.com/dquispe/pos-backoffice/internal/domain/repository"
	"github.com/dquispe/pos-backoffice/internal/presentation/http/dto/request"
	"github.com/dquispe/pos-backoffice/internal/presentation/http/dto/response"
	"github.com/dquispe/pos-backoffice/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles group, line and article HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func bindPagination(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	_ = c.ShouldBindQuery(params)
	params.Validate()
	return params
}

// --- Groups ---

// CreateGroup handles creating a catalog group
func (h *CatalogHandler) CreateGroup(c *gin.Context) {
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.catalogService.CreateGroup(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Group created successfully", group)
}

// ListGroups handles listing catalog groups
func (h *CatalogHandler) ListGroups(c *gin.Context) {
	params := bindPagination(c)

	result, err := h.catalogService.ListGroups(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Groups retrieved successfully", result)
}

// UpdateGroup handles updating a catalog group
func (h *CatalogHandler) UpdateGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid group ID")
		return
	}

	var req request.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.catalogService.UpdateGroup(c.Request.Context(), id, req.Name, req.Active)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Group updated successfully", group)
}

// DeleteGroup handles deactivating a catalog group
func (h *CatalogHandler) DeleteGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid group ID")
		return
	}

	if err := h.catalogService.DeactivateGroup(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// LinesByGroup returns the active lines of a group as {id, name} pairs
func (h *CatalogHandler) LinesByGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid group ID")
		return
	}

	lines, err := h.catalogService.ActiveLinesByGroup(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lines retrieved successfully", lines)
}

// --- Lines ---

// CreateLine handles creating a product line
func (h *CatalogHandler) CreateLine(c *gin.Context) {
	var req request.CreateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	line, err := h.catalogService.CreateLine(c.Request.Context(), req.GroupID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Line created successfully", line)
}

// ListLines handles listing product lines
func (h *CatalogHandler) ListLines(c *gin.Context) {
	params := bindPagination(c)

	result, err := h.catalogService.ListLines(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Lines retrieved successfully", result)
}

// UpdateLine handles updating a product line
func (h *CatalogHandler) UpdateLine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	var req request.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	line, err := h.catalogService.UpdateLine(c.Request.Context(), id, &service.UpdateLineInput{
		Name:    req.Name,
		GroupID: req.GroupID,
		Active:  req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line updated successfully", line)
}

// --- Articles ---

// CreateArticle handles creating an article with its initial price
func (h *CatalogHandler) CreateArticle(c *gin.Context) {
	var req request.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	article, err := h.catalogService.CreateArticle(c.Request.Context(), &service.CreateArticleInput{
		Code:          req.Code,
		Barcode:       req.Barcode,
		Description:   req.Description,
		Presentation:  req.Presentation,
		GroupID:       req.GroupID,
		LineID:        req.LineID,
		Stock:         req.Stock,
		ReorderLevel:  req.ReorderLevel,
		Price1:        req.Price1,
		Price2:        req.Price2,
		PurchasePrice: req.PurchasePrice,
		CostPrice:     req.CostPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Article created successfully", article)
}

// ListArticles handles listing articles with filters
func (h *CatalogHandler) ListArticles(c *gin.Context) {
	params := &repository.ArticleFilterParams{
		Pagination: bindPagination(c),
		Search:     c.Query("search"),
		LowStock:   c.Query("low_stock") == "true",
		OnlyActive: c.Query("include_inactive") != "true",
	}

	if groupIDStr := c.Query("group_id"); groupIDStr != "" {
		if groupID, err := uuid.Parse(groupIDStr); err == nil {
			params.GroupID = &groupID
		}
	}
	if lineIDStr := c.Query("line_id"); lineIDStr != "" {
		if lineID, err := uuid.Parse(lineIDStr); err == nil {
			params.LineID = &lineID
		}
	}

	result, err := h.catalogService.ListArticles(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Articles retrieved successfully", result)
}

// GetArticle handles retrieving a single article with related articles
func (h *CatalogHandler) GetArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	article, err := h.catalogService.GetArticle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	related, err := h.catalogService.RelatedArticles(c.Request.Context(), article)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Article retrieved successfully", gin.H{
		"article": article,
		"related": related,
	})
}

// UpdateArticle handles updating an article
func (h *CatalogHandler) UpdateArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	var req request.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	article, err := h.catalogService.UpdateArticle(c.Request.Context(), id, &service.UpdateArticleInput{
		Barcode:       req.Barcode,
		Description:   req.Description,
		Presentation:  req.Presentation,
		Stock:         req.Stock,
		ReorderLevel:  req.ReorderLevel,
		Active:        req.Active,
		Price1:        req.Price1,
		Price2:        req.Price2,
		PurchasePrice: req.PurchasePrice,
		CostPrice:     req.CostPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Article updated successfully", article)
}

// DeleteArticle handles deactivating an article
func (h *CatalogHandler) DeleteArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	if err := h.catalogService.DeactivateArticle(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
