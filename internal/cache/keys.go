package cache

import (
	"fmt"
	"time"
)

const (
	// RoundSeedKeyPrefix 按种子缓存牌局结果的 Key 前缀
	// 完整格式: mahjong:round:seed:{gameType}:{seed}
	RoundSeedKeyPrefix = "mahjong:round:seed:"

	// DefaultRoundTTL 牌局结果默认 TTL
	DefaultRoundTTL = 24 * time.Hour
)

// BuildRoundSeedKey 构建牌局缓存 Key
func BuildRoundSeedKey(gameType string, seed int64) string {
	return fmt.Sprintf("%s%s:%d", RoundSeedKeyPrefix, gameType, seed)
}
