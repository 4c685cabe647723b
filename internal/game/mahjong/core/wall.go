package core

import (
	"math/rand/v2"
)

// Wall 牌墙，从末尾摸牌，不会补牌
type Wall struct {
	tiles   *TileCollection
	seed    int64
	hasSeed bool
}

// FullSet 按规范顺序生成整副牌（每种 4 张）
func FullSet() []Tile {
	tiles := make([]Tile, 0, TotalTiles)
	for _, t := range tileOrder {
		for range CopiesPerKind {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// CreateWall 生成洗好的牌墙
// 洗牌使用 PCG(seed, seed) 驱动的 Fisher-Yates，相同种子得到相同排列；seed 为 nil 时随机
func CreateWall(seed *int64) *Wall {
	tiles := FullSet()

	var rng *rand.Rand
	if seed != nil {
		s := uint64(*seed)
		rng = rand.New(rand.NewPCG(s, s))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	w := &Wall{tiles: &TileCollection{tiles: tiles}}
	if seed != nil {
		w.seed = *seed
		w.hasSeed = true
	}
	return w
}

// NewWall 按给定顺序构建牌墙，最后一张最先被摸到
func NewWall(tiles []Tile) (*Wall, error) {
	if err := validateTiles(tiles); err != nil {
		return nil, err
	}
	return &Wall{tiles: NewTileCollection(tiles)}, nil
}

// Draw 摸一张牌
func (w *Wall) Draw() (Tile, error) {
	t, err := w.tiles.Pop()
	if err != nil {
		return Tile{}, ErrEmptyWall
	}
	return t, nil
}

// Len 剩余张数
func (w *Wall) Len() int {
	return w.tiles.Len()
}

// Tiles 剩余的牌（副本，末尾为下一张）
func (w *Wall) Tiles() []Tile {
	return w.tiles.Tiles()
}

// Counts 剩余牌的计数
func (w *Wall) Counts() TileCounts {
	return w.tiles.Counts()
}

// Seed 洗牌种子
func (w *Wall) Seed() (int64, bool) {
	return w.seed, w.hasSeed
}
