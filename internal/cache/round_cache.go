package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"sudooom.mahjong.sim/internal/config"
	"sudooom.mahjong.sim/internal/game/mahjong/core"
)

// NewRedisClient 创建 Redis 客户端
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// RoundCache 按种子缓存牌局结果
// 相同规则与种子的牌局结果完全确定，命中后无需重新模拟
type RoundCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRoundCache 创建牌局缓存
func NewRoundCache(client *redis.Client, ttl time.Duration) *RoundCache {
	if ttl <= 0 {
		ttl = DefaultRoundTTL
	}
	return &RoundCache{
		client: client,
		ttl:    ttl,
		logger: slog.Default(),
	}
}

// Name 存储名称
func (c *RoundCache) Name() string {
	return "redis"
}

// Get 读取缓存，未命中时返回 (nil, false, nil)
func (c *RoundCache) Get(ctx context.Context, gameType string, seed int64) (*core.RoundResult, bool, error) {
	key := BuildRoundSeedKey(gameType, seed)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get round: %w", err)
	}

	var result core.RoundResult
	if err := json.Unmarshal(data, &result); err != nil {
		// 无法解析的旧数据直接删除
		c.logger.Warn("Invalid cached round, deleting", "key", key, "error", err)
		if err := c.Delete(ctx, gameType, seed); err != nil {
			c.logger.Warn("Failed to delete cached round", "key", key, "error", err)
		}
		return nil, false, nil
	}
	return &result, true, nil
}

// Save 写入缓存，未指定种子的牌局不可复现，直接跳过
func (c *RoundCache) Save(ctx context.Context, result *core.RoundResult) error {
	if !result.HasSeed {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %w", err)
	}

	key := BuildRoundSeedKey(result.GameType, result.Seed)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set round: %w", err)
	}

	c.logger.Debug("Cached round", "key", key, "ttl", c.ttl)
	return nil
}

// Delete 删除缓存
func (c *RoundCache) Delete(ctx context.Context, gameType string, seed int64) error {
	return c.client.Del(ctx, BuildRoundSeedKey(gameType, seed)).Err()
}
