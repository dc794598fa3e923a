package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupIdempotencyDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.IdempotencyKey{}))
	return db
}

func TestIdempotencyDeleteExpired(t *testing.T) {
	db := setupIdempotencyDB(t)
	repo := NewIdempotencyRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	now := time.Now()

	expired := &entity.IdempotencyKey{
		Key:          "key-expired",
		UserID:       userID,
		Endpoint:     "POST /checkout",
		ResponseCode: 201,
		ExpiresAt:    now.Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, expired))

	live := &entity.IdempotencyKey{
		Key:          "key-live",
		UserID:       userID,
		Endpoint:     "POST /checkout",
		ResponseCode: 201,
		ExpiresAt:    now.Add(24 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, live))

	require.NoError(t, repo.DeleteExpired(ctx, now))

	gone, err := repo.GetByKey(ctx, "key-expired", userID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := repo.GetByKey(ctx, "key-live", userID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, "key-live", kept.Key)
	assert.False(t, kept.IsExpired())
}
