package simplemj

import (
	"sudooom.mahjong.sim/internal/game/mahjong/core"
)

// DeckGenerator 简化规则牌墙生成器 (136张: 万筒条各36张 + 字牌28张)
type DeckGenerator struct{}

// NewDeckGenerator 创建牌墙生成器
func NewDeckGenerator() *DeckGenerator {
	return &DeckGenerator{}
}

// Generate 生成洗好的牌墙
func (d *DeckGenerator) Generate(seed *int64) *core.Wall {
	return core.CreateWall(seed)
}
