package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kislikjeka/bookkeeper/internal/platform/account"
	"github.com/kislikjeka/bookkeeper/pkg/logger"
)

const (
	// DefaultTTL bounds how long an account list may be served without a refresh
	DefaultTTL = 10 * time.Minute

	// KeyPrefix is the prefix for account list keys
	KeyPrefix = "accounts:"
)

// AccountCache is a Redis-backed per-owner account list cache
type AccountCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewAccountCache creates a new account list cache with the default TTL
func NewAccountCache(client *redis.Client, log *logger.Logger) *AccountCache {
	return NewAccountCacheWithTTL(client, DefaultTTL, log)
}

// NewAccountCacheWithTTL creates a new account list cache with a custom TTL
func NewAccountCacheWithTTL(client *redis.Client, ttl time.Duration, log *logger.Logger) *AccountCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &AccountCache{
		client: client,
		ttl:    ttl,
		logger: log.WithField("component", "cache"),
	}
}

// cachedAccounts is the stored form of an owner's account list
type cachedAccounts struct {
	OwnerID  string             `json:"owner_id"`
	Accounts []*account.Account `json:"accounts"`
	CachedAt time.Time          `json:"cached_at"`
}

func key(ownerID uuid.UUID) string {
	return KeyPrefix + ownerID.String()
}

// GetAccounts returns the cached list; ok is false on a miss
func (c *AccountCache) GetAccounts(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, bool, error) {
	val, err := c.client.Get(ctx, key(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("cache miss", "owner_id", ownerID.String())
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("cache error", "operation", "get", "owner_id", ownerID.String(), "error", err)
		return nil, false, fmt.Errorf("failed to get cached accounts: %w", err)
	}

	var cached cachedAccounts
	if err := json.Unmarshal(val, &cached); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached accounts: %w", err)
	}

	c.logger.Debug("cache hit", "owner_id", ownerID.String(), "accounts", len(cached.Accounts))
	return cached.Accounts, true, nil
}

// SetAccounts stores the owner's list with the cache TTL
func (c *AccountCache) SetAccounts(ctx context.Context, ownerID uuid.UUID, accounts []*account.Account) error {
	if accounts == nil {
		accounts = []*account.Account{}
	}

	data, err := json.Marshal(cachedAccounts{
		OwnerID:  ownerID.String(),
		Accounts: accounts,
		CachedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}

	if err := c.client.Set(ctx, key(ownerID), data, c.ttl).Err(); err != nil {
		c.logger.Error("cache error", "operation", "set", "owner_id", ownerID.String(), "error", err)
		return fmt.Errorf("failed to set cached accounts: %w", err)
	}

	return nil
}

// Invalidate drops the owner's cached list
func (c *AccountCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	if err := c.client.Del(ctx, key(ownerID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached accounts: %w", err)
	}
	return nil
}

// Clear removes every cached account list
func (c *AccountCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 0).Iterator()

	pipe := c.client.Pipeline()
	count := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		count++
		if count >= 100 {
			if _, err := pipe.Exec(ctx); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			pipe = c.client.Pipeline()
			count = 0
		}
	}

	if count > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}

	return iter.Err()
}
