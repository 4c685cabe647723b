package simplemj

import (
	"slices"

	"sudooom.mahjong.sim/internal/game/mahjong/core"
)

// 出牌评分参数
const (
	// DuplicateWeight 每张相同牌的权重
	DuplicateWeight = 3
	// NeighbourReach 邻近牌的最大间距
	NeighbourReach = 2
)

// DiscardStrategy 简单出牌策略：打出评分最低的牌，同分取规范顺序靠前者
type DiscardStrategy struct{}

// NewDiscardStrategy 创建出牌策略
func NewDiscardStrategy() *DiscardStrategy {
	return &DiscardStrategy{}
}

// Score 计算单张牌的评分：3 × 相同张数 + 数牌 ±2 范围内存在的邻牌种数
func (d *DiscardStrategy) Score(t core.Tile, counts core.TileCounts) int {
	score := DuplicateWeight * counts.Count(t)
	if t.IsHonor() {
		return score
	}
	for offset := -NeighbourReach; offset <= NeighbourReach; offset++ {
		if offset == 0 {
			continue
		}
		if n, ok := t.Next(offset); ok && counts.Count(n) > 0 {
			score++
		}
	}
	return score
}

// Rank 按出牌优先级列出每种牌及评分，非法的牌不参与
func (d *DiscardStrategy) Rank(hand []core.Tile) []core.ScoredTile {
	counts := core.CountsOf(hand)
	ranked := make([]core.ScoredTile, 0, len(hand))
	counts.Each(func(t core.Tile, _ int) {
		ranked = append(ranked, core.ScoredTile{Tile: t, Score: d.Score(t, counts)})
	})
	// Each 已按规范顺序，稳定排序保证同分时顺序不变
	slices.SortStableFunc(ranked, func(a, b core.ScoredTile) int {
		return a.Score - b.Score
	})
	return ranked
}

// ChooseDiscard 选出要打出的牌，不修改手牌
func (d *DiscardStrategy) ChooseDiscard(hand []core.Tile) (core.Tile, error) {
	if len(hand) == 0 {
		return core.Tile{}, core.ErrEmptyHand
	}
	for _, t := range hand {
		if !t.IsValid() {
			return core.Tile{}, core.ErrInvalidTile.WithContext("tile", t)
		}
	}
	return d.Rank(hand)[0].Tile, nil
}
