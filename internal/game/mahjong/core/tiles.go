package core

// DiscardPile 出牌堆管理器，只追加
type DiscardPile struct {
	tiles []Tile // 出牌列表
}

// NewDiscardPile 创建出牌堆
func NewDiscardPile() *DiscardPile {
	return &DiscardPile{
		tiles: make([]Tile, 0, 32),
	}
}

// Add 添加出牌
func (d *DiscardPile) Add(t Tile) {
	d.tiles = append(d.tiles, t)
}

// Tiles 获取所有出牌（按出牌顺序）
func (d *DiscardPile) Tiles() []Tile {
	return CloneTiles(d.tiles)
}

// Size 获取出牌数量
func (d *DiscardPile) Size() int {
	return len(d.tiles)
}

// Clear 清空出牌堆
func (d *DiscardPile) Clear() {
	d.tiles = d.tiles[:0]
}

// String 排序后的显示串
func (d *DiscardPile) String() string {
	return FormatTiles(d.tiles)
}
