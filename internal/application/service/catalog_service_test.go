package service

import (
	"context"
	"testing"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	infraRepo "github.com/dquispe/pos-backoffice/internal/infrastructure/repository"
	"github.com/dquispe/pos-backoffice/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewCatalogService(
		infraRepo.NewArticleGroupRepository(db),
		infraRepo.NewArticleLineRepository(db),
		infraRepo.NewArticleRepository(db),
	)
	return svc, db
}

func TestCreateGroupRejectsDuplicateName(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateGroup(ctx, "Beverages")
	require.NoError(t, err)

	_, err = svc.CreateGroup(ctx, "Beverages")
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestActiveLinesByGroup(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "Beverages")
	require.NoError(t, err)

	sodas, err := svc.CreateLine(ctx, group.ID, "Sodas")
	require.NoError(t, err)
	juices, err := svc.CreateLine(ctx, group.ID, "Juices")
	require.NoError(t, err)

	// Deactivated lines must not show up
	inactive, err := svc.CreateLine(ctx, group.ID, "Discontinued")
	require.NoError(t, err)
	require.NoError(t, db.Model(&entity.ArticleLine{}).
		Where("id = ?", inactive.ID).Update("active", false).Error)

	options, err := svc.ActiveLinesByGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, options, 2)

	// Alphabetical by name
	assert.Equal(t, juices.ID, options[0].ID)
	assert.Equal(t, "Juices", options[0].Name)
	assert.Equal(t, sodas.ID, options[1].ID)
	assert.Equal(t, "Sodas", options[1].Name)
}

func TestActiveLinesByGroupUnknownGroupIsEmpty(t *testing.T) {
	svc, _ := newCatalogService(t)

	options, err := svc.ActiveLinesByGroup(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, options)
	assert.Empty(t, options)
}

func TestCreateArticleWithPrice(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "Beverages")
	require.NoError(t, err)
	line, err := svc.CreateLine(ctx, group.ID, "Sodas")
	require.NoError(t, err)

	article, err := svc.CreateArticle(ctx, &CreateArticleInput{
		Code:        "SODA-1",
		Description: "Cola 500ml",
		GroupID:     group.ID,
		LineID:      line.ID,
		Stock:       12,
		Price1:      9.99,
	})
	require.NoError(t, err)
	require.NotNil(t, article.Price)
	assert.Equal(t, int64(999), article.Price.Price1)
	assert.Equal(t, int64(999), article.CurrentPrice())
	assert.Equal(t, 10, article.ReorderLevel)

	// Same code again is a conflict
	_, err = svc.CreateArticle(ctx, &CreateArticleInput{
		Code:        "SODA-1",
		Description: "Another",
		GroupID:     group.ID,
		LineID:      line.ID,
		Price1:      1,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCreateArticleRejectsLineFromOtherGroup(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	beverages, err := svc.CreateGroup(ctx, "Beverages")
	require.NoError(t, err)
	snacks, err := svc.CreateGroup(ctx, "Snacks")
	require.NoError(t, err)
	line, err := svc.CreateLine(ctx, snacks.ID, "Chips")
	require.NoError(t, err)

	_, err = svc.CreateArticle(ctx, &CreateArticleInput{
		Code:        "X-1",
		Description: "Mismatched",
		GroupID:     beverages.ID,
		LineID:      line.ID,
		Price1:      1,
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestUpdateLineGroupLockedOnceReferenced(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	groupA, err := svc.CreateGroup(ctx, "Group A")
	require.NoError(t, err)
	groupB, err := svc.CreateGroup(ctx, "Group B")
	require.NoError(t, err)
	line, err := svc.CreateLine(ctx, groupA.ID, "Line 1")
	require.NoError(t, err)

	// Without articles, moving the line between groups is fine
	moved, err := svc.UpdateLine(ctx, line.ID, &UpdateLineInput{GroupID: &groupB.ID})
	require.NoError(t, err)
	assert.Equal(t, groupB.ID, moved.GroupID)

	_, err = svc.CreateArticle(ctx, &CreateArticleInput{
		Code:        "A-1",
		Description: "Anchor",
		GroupID:     groupB.ID,
		LineID:      line.ID,
		Price1:      1,
	})
	require.NoError(t, err)

	_, err = svc.UpdateLine(ctx, line.ID, &UpdateLineInput{GroupID: &groupA.ID})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestUpdateArticlePriceReplacesEntry(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "Beverages")
	require.NoError(t, err)
	line, err := svc.CreateLine(ctx, group.ID, "Sodas")
	require.NoError(t, err)
	article, err := svc.CreateArticle(ctx, &CreateArticleInput{
		Code:        "SODA-1",
		Description: "Cola",
		GroupID:     group.ID,
		LineID:      line.ID,
		Price1:      2.50,
	})
	require.NoError(t, err)

	newPrice := 3.75
	updated, err := svc.UpdateArticle(ctx, article.ID, &UpdateArticleInput{Price1: &newPrice})
	require.NoError(t, err)
	require.NotNil(t, updated.Price)
	assert.Equal(t, int64(375), updated.Price.Price1)

	// Still a single price row per article
	var count int64
	require.NoError(t, db.Model(&entity.PriceList{}).
		Where("article_id = ?", article.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeactivateArticleHidesIt(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "Beverages")
	require.NoError(t, err)
	line, err := svc.CreateLine(ctx, group.ID, "Sodas")
	require.NoError(t, err)
	article, err := svc.CreateArticle(ctx, &CreateArticleInput{
		Code:        "SODA-1",
		Description: "Cola",
		GroupID:     group.ID,
		LineID:      line.ID,
		Price1:      1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateArticle(ctx, article.ID))

	_, err = svc.GetArticle(ctx, article.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
