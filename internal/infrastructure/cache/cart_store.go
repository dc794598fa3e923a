package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	domainRepo "github.com/dquispe/pos-backoffice/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// cartTTL bounds how long an abandoned cart survives in Redis.
const cartTTL = 7 * 24 * time.Hour

type redisCartStore struct {
	rdb *redis.Client
}

// NewRedisCartStore creates a cart store backed by Redis. Carts are
// serialized as JSON under one key per user and expire after cartTTL.
func NewRedisCartStore(rdb *redis.Client) domainRepo.CartStore {
	return &redisCartStore{rdb: rdb}
}

func (s *redisCartStore) key(userID uuid.UUID) string {
	return fmt.Sprintf("cart:%s", userID)
}

func (s *redisCartStore) Get(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	data, err := s.rdb.Get(ctx, s.key(userID)).Bytes()
	if err == redis.Nil {
		return entity.NewCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart store: get %s: %w", userID, err)
	}

	var cart entity.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("cart store: decode %s: %w", userID, err)
	}
	if cart.Items == nil {
		cart.Items = []entity.CartItem{}
	}
	return &cart, nil
}

func (s *redisCartStore) Save(ctx context.Context, userID uuid.UUID, cart *entity.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cart store: encode %s: %w", userID, err)
	}
	if err := s.rdb.Set(ctx, s.key(userID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("cart store: save %s: %w", userID, err)
	}
	return nil
}

func (s *redisCartStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.rdb.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("cart store: delete %s: %w", userID, err)
	}
	return nil
}
