package repository

import (
	"context"
	"errors"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	domainRepo "github.com/dquispe/pos-backoffice/internal/domain/repository"
	"github.com/dquispe/pos-backoffice/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type articleGroupRepository struct {
	db *gorm.DB
}

// NewArticleGroupRepository creates a new article group repository
func NewArticleGroupRepository(db *gorm.DB) domainRepo.ArticleGroupRepository {
	return &articleGroupRepository{db: db}
}

func (r *articleGroupRepository) Create(ctx context.Context, group *entity.ArticleGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *articleGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ArticleGroup, error) {
	var group entity.ArticleGroup
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

func (r *articleGroupRepository) GetByName(ctx context.Context, name string) (*entity.ArticleGroup, error) {
	var group entity.ArticleGroup
	err := r.db.WithContext(ctx).First(&group, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

func (r *articleGroupRepository) Update(ctx context.Context, group *entity.ArticleGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *articleGroupRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.ArticleGroup, int64, error) {
	var groups []entity.ArticleGroup
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ArticleGroup{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&groups).Error

	return groups, total, err
}

type articleLineRepository struct {
	db *gorm.DB
}

// NewArticleLineRepository creates a new article line repository
func NewArticleLineRepository(db *gorm.DB) domainRepo.ArticleLineRepository {
	return &articleLineRepository{db: db}
}

func (r *articleLineRepository) Create(ctx context.Context, line *entity.ArticleLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *articleLineRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ArticleLine, error) {
	var line entity.ArticleLine
	err := r.db.WithContext(ctx).Preload("Group").First(&line, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &line, err
}

func (r *articleLineRepository) Update(ctx context.Context, line *entity.ArticleLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *articleLineRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.ArticleLine, int64, error) {
	var lines []entity.ArticleLine
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ArticleLine{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Group").
		Order("name ASC").
		Find(&lines).Error

	return lines, total, err
}

func (r *articleLineRepository) ActiveByGroup(ctx context.Context, groupID uuid.UUID) ([]entity.ArticleLine, error) {
	lines := make([]entity.ArticleLine, 0)
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND active = ?", groupID, true).
		Order("name ASC").
		Find(&lines).Error
	return lines, err
}

func (r *articleLineRepository) CountArticles(ctx context.Context, lineID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Article{}).
		Where("line_id = ?", lineID).
		Count(&count).Error
	return count, err
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *gorm.DB) domainRepo.ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	var article entity.Article
	err := r.db.WithContext(ctx).
		Preload("Group").Preload("Line").Preload("Price").
		First(&article, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &article, err
}

func (r *articleRepository) GetByCode(ctx context.Context, code string) (*entity.Article, error) {
	var article entity.Article
	err := r.db.WithContext(ctx).
		Preload("Price").
		First(&article, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &article, err
}

// GetByIDs retrieves multiple articles by their IDs in a single query
func (r *articleRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Article, error) {
	if len(ids) == 0 {
		return []entity.Article{}, nil
	}
	var articles []entity.Article
	err := r.db.WithContext(ctx).
		Preload("Price").
		Where("id IN ?", ids).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) Update(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

func (r *articleRepository) List(ctx context.Context, params *domainRepo.ArticleFilterParams) ([]entity.Article, int64, error) {
	var articles []entity.Article
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Article{})
	if params.OnlyActive {
		query = query.Where("active = ?", true)
	}

	if params.Search != "" {
		query = query.Where("description ILIKE ? OR code ILIKE ? OR barcode ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.GroupID != nil {
		query = query.Where("group_id = ?", *params.GroupID)
	}

	if params.LineID != nil {
		query = query.Where("line_id = ?", *params.LineID)
	}

	if params.LowStock {
		query = query.Where("stock <= reorder_level")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Group").Preload("Line").Preload("Price").
		Order("created_at DESC").
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) RelatedByLine(ctx context.Context, lineID, excludeID uuid.UUID, limit int) ([]entity.Article, error) {
	articles := make([]entity.Article, 0, limit)
	err := r.db.WithContext(ctx).
		Where("line_id = ? AND active = ? AND id <> ?", lineID, true, excludeID).
		Preload("Price").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) SavePrice(ctx context.Context, price *entity.PriceList) error {
	var existing entity.PriceList
	err := r.db.WithContext(ctx).First(&existing, "article_id = ?", price.ArticleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(price).Error
	}
	if err != nil {
		return err
	}
	price.ID = existing.ID
	price.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(price).Error
}

// AtomicDecrementBatch atomically decrements stock for multiple articles in
// a single transaction using conditional updates:
//
//	UPDATE articles SET stock = stock - n WHERE id = ? AND stock >= n
//
// If any article has insufficient stock the whole transaction is rolled
// back and the failed IDs are reported.
func (r *articleRepository) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	if len(decrements) == 0 {
		return nil, nil
	}

	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range decrements {
			result := tx.Model(&entity.Article{}).
				Where("id = ? AND stock >= ?", id, amount).
				Update("stock", gorm.Expr("stock - ?", amount))

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}

		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		return nil
	})

	// Rolled back due to insufficient stock: report the failed IDs without
	// surfacing the sentinel transaction error
	if err == gorm.ErrInvalidTransaction && len(failedIDs) > 0 {
		return failedIDs, nil
	}

	return failedIDs, err
}

// AtomicIncrementBatch atomically increments stock for multiple articles
// (cancellations/returns).
func (r *articleRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	if len(increments) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range increments {
			if err := tx.Model(&entity.Article{}).
				Where("id = ?", id).
				Update("stock", gorm.Expr("stock + ?", amount)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *articleRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Article{}).
		Where("active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *articleRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Article{}).
		Where("active = ? AND stock <= reorder_level", true).
		Count(&count).Error
	return count, err
}
