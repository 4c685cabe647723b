package core

// 手牌张数
const (
	// StandardHandSize 标准手牌数量（不包括摸到的牌）
	StandardHandSize = 13
	// FullHandSize 完整手牌数量（包括摸到的牌）
	FullHandSize = 14
)

// Hand 手牌管理器，始终保持规范顺序
type Hand struct {
	tiles  []Tile     // 手牌列表
	counts TileCounts // 牌数量缓存
}

// NewHand 创建新的手牌管理器
func NewHand() *Hand {
	return &Hand{
		tiles: make([]Tile, 0, FullHandSize),
	}
}

// Add 添加牌到手牌
func (h *Hand) Add(t Tile) error {
	if !t.IsValid() {
		return ErrInvalidTile.WithContext("tile", t)
	}
	h.tiles = append(h.tiles, t)
	h.counts.Inc(t)
	SortTiles(h.tiles)
	return nil
}

// Remove 移除指定的牌
func (h *Hand) Remove(t Tile) error {
	// 先检查 counts，快速判断是否存在
	if h.counts.Count(t) == 0 {
		return ErrTileNotFound.WithContext("tile", t.String())
	}
	tiles, err := RemoveTile(h.tiles, t)
	if err != nil {
		return err
	}
	h.tiles = tiles
	return h.counts.Dec(t)
}

// SetTiles 设置手牌（用于发牌），含非法的牌时手牌不变
func (h *Hand) SetTiles(tiles []Tile) error {
	if err := validateTiles(tiles); err != nil {
		return err
	}
	h.tiles = append(h.tiles[:0], tiles...)
	SortTiles(h.tiles)
	h.counts = CountsOf(h.tiles)
	return nil
}

// Count 统计指定牌的数量
func (h *Hand) Count(t Tile) int {
	return h.counts.Count(t)
}

// Counts 手牌计数（值拷贝）
func (h *Hand) Counts() TileCounts {
	return h.counts
}

// Size 获取手牌数量
func (h *Hand) Size() int {
	return len(h.tiles)
}

// IsEmpty 判断手牌是否为空
func (h *Hand) IsEmpty() bool {
	return len(h.tiles) == 0
}

// Clear 清空手牌
func (h *Hand) Clear() {
	h.tiles = h.tiles[:0]
	h.counts = TileCounts{}
}

// Tiles 获取手牌列表（返回副本，防止外部修改）
func (h *Hand) Tiles() []Tile {
	return CloneTiles(h.tiles)
}

// String 显示串
func (h *Hand) String() string {
	return joinTiles(h.tiles)
}
