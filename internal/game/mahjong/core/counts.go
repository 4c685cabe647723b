package core

// TileCounts 牌的多重集合，按规范下标计数
// 值类型：赋值即复制，胡牌算法依赖这一点在递归中传递缩减后的副本
type TileCounts [TileKinds]uint8

// CountsOf 统计牌组
func CountsOf(tiles []Tile) TileCounts {
	var c TileCounts
	for _, t := range tiles {
		c.Inc(t)
	}
	return c
}

// Inc 增加一张牌，非法的牌不计入
func (c *TileCounts) Inc(t Tile) {
	if !t.IsValid() {
		return
	}
	c[t.Index()]++
}

// Dec 减少一张牌
func (c *TileCounts) Dec(t Tile) error {
	if !t.IsValid() {
		return ErrInvalidTile.WithContext("tile", t)
	}
	idx := t.Index()
	if c[idx] == 0 {
		return ErrTileNotFound.WithContext("tile", t.String())
	}
	c[idx]--
	return nil
}

// Count 查询数量，不存在时为 0
func (c TileCounts) Count(t Tile) int {
	if !t.IsValid() {
		return 0
	}
	return int(c[t.Index()])
}

// Total 总张数
func (c TileCounts) Total() int {
	total := 0
	for _, n := range c {
		total += int(n)
	}
	return total
}

// Max 单种牌的最大数量
func (c TileCounts) Max() int {
	m := 0
	for _, n := range c {
		if int(n) > m {
			m = int(n)
		}
	}
	return m
}

// IsEmpty 是否为空
func (c TileCounts) IsEmpty() bool {
	return c == TileCounts{}
}

// Each 按规范顺序遍历非零项
func (c TileCounts) Each(fn func(t Tile, count int)) {
	for i, n := range c {
		if n > 0 {
			fn(tileOrder[i], int(n))
		}
	}
}

// Distinct 出现过的牌种（规范顺序）
func (c TileCounts) Distinct() []Tile {
	tiles := make([]Tile, 0, TileKinds)
	c.Each(func(t Tile, _ int) {
		tiles = append(tiles, t)
	})
	return tiles
}

// First 规范顺序中最小的牌
func (c TileCounts) First() (Tile, bool) {
	for i, n := range c {
		if n > 0 {
			return tileOrder[i], true
		}
	}
	return Tile{}, false
}

// Tiles 展开为排好序的牌组
func (c TileCounts) Tiles() []Tile {
	tiles := make([]Tile, 0, c.Total())
	c.Each(func(t Tile, count int) {
		for range count {
			tiles = append(tiles, t)
		}
	})
	return tiles
}
