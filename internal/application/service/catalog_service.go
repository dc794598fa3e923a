package service

import (
	"context"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	"github.com/dquispe/pos-backoffice/internal/domain/repository"
	"github.com/dquispe/pos-backoffice/pkg/apperror"
	"github.com/dquispe/pos-backoffice/pkg/pagination"
	"github.com/google/uuid"
)

// CatalogService handles group, line, article and price list management
type CatalogService struct {
	groupRepo   repository.ArticleGroupRepository
	lineRepo    repository.ArticleLineRepository
	articleRepo repository.ArticleRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	groupRepo repository.ArticleGroupRepository,
	lineRepo repository.ArticleLineRepository,
	articleRepo repository.ArticleRepository,
) *CatalogService {
	return &CatalogService{
		groupRepo:   groupRepo,
		lineRepo:    lineRepo,
		articleRepo: articleRepo,
	}
}

// --- Groups ---

// CreateGroup creates a new article group
func (s *CatalogService) CreateGroup(ctx context.Context, name string) (*entity.ArticleGroup, error) {
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "name is required"},
		})
	}

	existing, err := s.groupRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Group name already exists")
	}

	group := &entity.ArticleGroup{Name: name, Active: true}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups lists groups with search and pagination
func (s *CatalogService) ListGroups(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.ArticleGroup], error) {
	groups, total, err := s.groupRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(groups, pag), nil
}

// UpdateGroup renames or re-activates/deactivates a group
func (s *CatalogService) UpdateGroup(ctx context.Context, id uuid.UUID, name string, active *bool) (*entity.ArticleGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperror.NewNotFoundError("Group")
	}

	if name != "" && name != group.Name {
		existing, err := s.groupRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Group name already exists")
		}
		group.Name = name
	}
	if active != nil {
		group.Active = *active
	}

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeactivateGroup soft-deletes a group by flipping its active flag
func (s *CatalogService) DeactivateGroup(ctx context.Context, id uuid.UUID) error {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if group == nil {
		return apperror.NewNotFoundError("Group")
	}
	group.Active = false
	return s.groupRepo.Update(ctx, group)
}

// --- Lines ---

// LineOption is the {id, name} pair returned by the lines-by-group endpoint
type LineOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ActiveLinesByGroup returns the active lines belonging to a group as
// {id, name} pairs. Unknown groups and groups without active lines yield
// an empty list, not an error.
func (s *CatalogService) ActiveLinesByGroup(ctx context.Context, groupID uuid.UUID) ([]LineOption, error) {
	lines, err := s.lineRepo.ActiveByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	options := make([]LineOption, 0, len(lines))
	for _, line := range lines {
		options = append(options, LineOption{ID: line.ID, Name: line.Name})
	}
	return options, nil
}

// CreateLine creates a new line under a group
func (s *CatalogService) CreateLine(ctx context.Context, groupID uuid.UUID, name string) (*entity.ArticleLine, error) {
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "name is required"},
		})
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil || !group.Active {
		return nil, apperror.NewNotFoundError("Group")
	}

	line := &entity.ArticleLine{Name: name, GroupID: groupID, Active: true}
	if err := s.lineRepo.Create(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// ListLines lists lines with search and pagination
func (s *CatalogService) ListLines(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.ArticleLine], error) {
	lines, total, err := s.lineRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(lines, pag), nil
}

// UpdateLineInput represents the update line input
type UpdateLineInput struct {
	Name    string
	GroupID *uuid.UUID
	Active  *bool
}

// UpdateLine updates a line. The owning group is immutable once any
// article references the line.
func (s *CatalogService) UpdateLine(ctx context.Context, id uuid.UUID, input *UpdateLineInput) (*entity.ArticleLine, error) {
	line, err := s.lineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, apperror.NewNotFoundError("Line")
	}

	if input.GroupID != nil && *input.GroupID != line.GroupID {
		count, err := s.lineRepo.CountArticles(ctx, line.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperror.NewInvalidStateError("Line group cannot change once articles reference the line")
		}

		group, err := s.groupRepo.GetByID(ctx, *input.GroupID)
		if err != nil {
			return nil, err
		}
		if group == nil || !group.Active {
			return nil, apperror.NewNotFoundError("Group")
		}
		line.GroupID = *input.GroupID
	}

	if input.Name != "" {
		line.Name = input.Name
	}
	if input.Active != nil {
		line.Active = *input.Active
	}

	if err := s.lineRepo.Update(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// --- Articles ---

// CreateArticleInput represents the create article input. Prices are
// decimal values converted to cents on write.
type CreateArticleInput struct {
	Code          string
	Barcode       *string
	Description   string
	Presentation  *string
	GroupID       uuid.UUID
	LineID        uuid.UUID
	Stock         int
	ReorderLevel  int
	Price1        float64
	Price2        *float64
	PurchasePrice *float64
	CostPrice     *float64
}

func (in *CreateArticleInput) validate() error {
	var fields []apperror.FieldError
	if in.Code == "" {
		fields = append(fields, apperror.FieldError{Field: "code", Message: "code is required"})
	}
	if in.Description == "" {
		fields = append(fields, apperror.FieldError{Field: "description", Message: "description is required"})
	}
	if in.Stock < 0 {
		fields = append(fields, apperror.FieldError{Field: "stock", Message: "stock cannot be negative"})
	}
	if in.Price1 <= 0 {
		fields = append(fields, apperror.FieldError{Field: "price_1", Message: "sale price must be greater than zero"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// CreateArticle creates a new article together with its price list entry
func (s *CatalogService) CreateArticle(ctx context.Context, input *CreateArticleInput) (*entity.Article, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.articleRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Article code already exists")
	}

	line, err := s.lineRepo.GetByID(ctx, input.LineID)
	if err != nil {
		return nil, err
	}
	if line == nil || !line.Active {
		return nil, apperror.NewNotFoundError("Line")
	}
	if line.GroupID != input.GroupID {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "line_id", Message: "line does not belong to the given group"},
		})
	}

	reorder := input.ReorderLevel
	if reorder == 0 {
		reorder = 10
	}

	article := &entity.Article{
		Code:         input.Code,
		Barcode:      input.Barcode,
		Description:  input.Description,
		Presentation: input.Presentation,
		GroupID:      input.GroupID,
		LineID:       input.LineID,
		Stock:        input.Stock,
		ReorderLevel: reorder,
		Active:       true,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	price := &entity.PriceList{
		ArticleID:     article.ID,
		Price1:        toCents(input.Price1),
		Price2:        toCentsPtr(input.Price2),
		PurchasePrice: toCentsPtr(input.PurchasePrice),
		CostPrice:     toCentsPtr(input.CostPrice),
	}
	if err := s.articleRepo.SavePrice(ctx, price); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(ctx, article.ID)
}

// UpdateArticleInput represents the update article input
type UpdateArticleInput struct {
	Barcode       *string
	Description   string
	Presentation  *string
	Stock         *int
	ReorderLevel  *int
	Active        *bool
	Price1        *float64
	Price2        *float64
	PurchasePrice *float64
	CostPrice     *float64
}

// UpdateArticle updates an article and, when prices are given, its price
// list entry
func (s *CatalogService) UpdateArticle(ctx context.Context, id uuid.UUID, input *UpdateArticleInput) (*entity.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperror.NewNotFoundError("Article")
	}

	if input.Description != "" {
		article.Description = input.Description
	}
	if input.Barcode != nil {
		article.Barcode = input.Barcode
	}
	if input.Presentation != nil {
		article.Presentation = input.Presentation
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "stock", Message: "stock cannot be negative"},
			})
		}
		article.Stock = *input.Stock
	}
	if input.ReorderLevel != nil {
		article.ReorderLevel = *input.ReorderLevel
	}
	if input.Active != nil {
		article.Active = *input.Active
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	if input.Price1 != nil {
		if *input.Price1 <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "price_1", Message: "sale price must be greater than zero"},
			})
		}
		price := &entity.PriceList{
			ArticleID:     article.ID,
			Price1:        toCents(*input.Price1),
			Price2:        toCentsPtr(input.Price2),
			PurchasePrice: toCentsPtr(input.PurchasePrice),
			CostPrice:     toCentsPtr(input.CostPrice),
		}
		if err := s.articleRepo.SavePrice(ctx, price); err != nil {
			return nil, err
		}
	}

	return s.articleRepo.GetByID(ctx, article.ID)
}

// DeactivateArticle soft-deletes an article by flipping its active flag
func (s *CatalogService) DeactivateArticle(ctx context.Context, id uuid.UUID) error {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article == nil {
		return apperror.NewNotFoundError("Article")
	}
	article.Active = false
	return s.articleRepo.Update(ctx, article)
}

// GetArticle retrieves an active article by ID
func (s *CatalogService) GetArticle(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil || !article.Active {
		return nil, apperror.NewNotFoundError("Article")
	}
	return article, nil
}

// RelatedArticles returns up to four other active articles on the same line
func (s *CatalogService) RelatedArticles(ctx context.Context, article *entity.Article) ([]entity.Article, error) {
	return s.articleRepo.RelatedByLine(ctx, article.LineID, article.ID, 4)
}

// ListArticles lists articles with filtering
func (s *CatalogService) ListArticles(ctx context.Context, params *repository.ArticleFilterParams) (*pagination.PaginatedResult[entity.Article], error) {
	articles, total, err := s.articleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(articles, pag), nil
}

func toCents(v float64) int64 {
	return int64(v*100 + 0.5)
}

func toCentsPtr(v *float64) *int64 {
	if v == nil {
		return nil
	}
	c := toCents(*v)
	return &c
}
