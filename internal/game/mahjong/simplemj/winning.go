package simplemj

import (
	"sudooom.mahjong.sim/internal/game/mahjong/core"
)

// 国士无双所需的 13 种幺九字牌
var orphanTiles = buildOrphanTiles()

func buildOrphanTiles() []core.Tile {
	var tiles []core.Tile
	for _, t := range core.AllTiles() {
		if t.IsTerminalOrHonor() {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// WinningAlgorithm 简化规则胡牌算法：四面子一将或国士无双
type WinningAlgorithm struct{}

// NewWinningAlgorithm 创建胡牌算法
func NewWinningAlgorithm() *WinningAlgorithm {
	return &WinningAlgorithm{}
}

// IsWinningHand 检查是否胡牌，张数不是 14 或单种超过 4 张时直接返回 false
func (w *WinningAlgorithm) IsWinningHand(hand []core.Tile) bool {
	return w.Classify(hand) != core.WinShapeNone
}

// Classify 获取胡牌牌型
func (w *WinningAlgorithm) Classify(hand []core.Tile) core.WinShape {
	counts, ok := handCounts(hand)
	if !ok {
		return core.WinShapeNone
	}
	if isThirteenOrphans(counts) {
		return core.WinShapeThirteenOrphans
	}
	if _, ok := decomposeStandard(counts); ok {
		return core.WinShapeStandard
	}
	return core.WinShapeNone
}

// Decompose 返回第一种成功的四面子一将拆分
func (w *WinningAlgorithm) Decompose(hand []core.Tile) (core.Decomposition, bool) {
	counts, ok := handCounts(hand)
	if !ok {
		return core.Decomposition{}, false
	}
	return decomposeStandard(counts)
}

// handCounts 前置检查：必须 14 张、每种不超过 4 张且都是合法的牌
func handCounts(hand []core.Tile) (core.TileCounts, bool) {
	if len(hand) != core.FullHandSize {
		return core.TileCounts{}, false
	}
	for _, t := range hand {
		if !t.IsValid() {
			return core.TileCounts{}, false
		}
	}
	counts := core.CountsOf(hand)
	if counts.Max() > core.CopiesPerKind {
		return core.TileCounts{}, false
	}
	return counts, true
}

// isThirteenOrphans 13 种幺九字牌齐全，无其他牌，其中一种成对
func isThirteenOrphans(counts core.TileCounts) bool {
	if counts.Total() != core.FullHandSize {
		return false
	}
	pair := false
	for _, t := range orphanTiles {
		n := counts.Count(t)
		if n == 0 {
			return false
		}
		if n >= 2 {
			pair = true
		}
	}
	if !pair {
		return false
	}
	// 不允许出现幺九字牌以外的牌
	clean := true
	counts.Each(func(t core.Tile, _ int) {
		if !t.IsTerminalOrHonor() {
			clean = false
		}
	})
	return clean
}

// decomposeStandard 按规范顺序尝试每个对子，剩余部分拆成面子
func decomposeStandard(counts core.TileCounts) (core.Decomposition, bool) {
	for _, pair := range counts.Distinct() {
		if counts.Count(pair) < 2 {
			continue
		}
		rest := counts
		rest[pair.Index()] -= 2
		if melds, ok := formMelds(rest, nil); ok {
			return core.Decomposition{Pair: pair, Melds: melds}, true
		}
	}
	return core.Decomposition{}, false
}

// formMelds 回溯拆分：总是处理规范顺序中最小的牌，先试刻子再试顺子
// counts 按值传递，每个分支拿到的是缩减后的副本，无需回退
func formMelds(counts core.TileCounts, melds []core.Meld) ([]core.Meld, bool) {
	first, ok := counts.First()
	if !ok {
		return melds, true
	}

	// 刻子
	if counts.Count(first) >= 3 {
		rest := counts
		rest[first.Index()] -= 3
		meld := core.Meld{Kind: core.MeldTriplet, Tiles: []core.Tile{first, first, first}}
		if result, ok := formMelds(rest, appendMeld(melds, meld)); ok {
			return result, true
		}
	}

	// 顺子：仅数牌，且值不超过 7
	if first.IsSuited() && first.Value <= core.SuitedValues-2 {
		second, _ := first.Next(1)
		third, _ := first.Next(2)
		if counts.Count(second) > 0 && counts.Count(third) > 0 {
			rest := counts
			rest[first.Index()]--
			rest[second.Index()]--
			rest[third.Index()]--
			meld := core.Meld{Kind: core.MeldRun, Tiles: []core.Tile{first, second, third}}
			if result, ok := formMelds(rest, appendMeld(melds, meld)); ok {
				return result, true
			}
		}
	}

	return nil, false
}

// appendMeld 复制后追加，避免不同分支共享底层数组
func appendMeld(melds []core.Meld, meld core.Meld) []core.Meld {
	next := make([]core.Meld, len(melds), len(melds)+1)
	copy(next, melds)
	return append(next, meld)
}
