package core

// TileCollection 有序牌组，末尾视为"顶部"
type TileCollection struct {
	tiles []Tile
}

// NewTileCollection 创建牌组（复制传入的牌）
func NewTileCollection(tiles []Tile) *TileCollection {
	return &TileCollection{tiles: CloneTiles(tiles)}
}

// Len 牌数量
func (c *TileCollection) Len() int {
	return len(c.tiles)
}

// Tiles 获取牌列表（返回副本）
func (c *TileCollection) Tiles() []Tile {
	return CloneTiles(c.tiles)
}

// Append 追加一张牌
func (c *TileCollection) Append(t Tile) {
	c.tiles = append(c.tiles, t)
}

// Extend 追加多张牌
func (c *TileCollection) Extend(tiles []Tile) {
	c.tiles = append(c.tiles, tiles...)
}

// Pop 取出末尾的牌
func (c *TileCollection) Pop() (Tile, error) {
	if len(c.tiles) == 0 {
		return Tile{}, ErrEmptyWall
	}
	last := len(c.tiles) - 1
	t := c.tiles[last]
	c.tiles = c.tiles[:last]
	return t, nil
}

// Remove 移除第一张相同的牌
func (c *TileCollection) Remove(t Tile) error {
	tiles, err := RemoveTile(c.tiles, t)
	if err != nil {
		return err
	}
	c.tiles = tiles
	return nil
}

// Contains 是否包含指定的牌
func (c *TileCollection) Contains(t Tile) bool {
	return CountTile(c.tiles, t) > 0
}

// Sort 按规范顺序排序
func (c *TileCollection) Sort() {
	SortTiles(c.tiles)
}

// Counts 统计各牌数量
func (c *TileCollection) Counts() TileCounts {
	return CountsOf(c.tiles)
}

// Clear 清空
func (c *TileCollection) Clear() {
	c.tiles = c.tiles[:0]
}

// Clone 克隆牌组
func (c *TileCollection) Clone() *TileCollection {
	return NewTileCollection(c.tiles)
}

// String 排序后的显示串
func (c *TileCollection) String() string {
	return FormatTiles(c.tiles)
}
