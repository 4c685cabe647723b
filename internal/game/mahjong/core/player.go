package core

// Player 玩家
type Player struct {
	Name     string       // 玩家名称
	Seat     int          // 座位索引
	hand     *Hand        // 手牌
	discards *DiscardPile // 弃牌
}

// NewPlayer 创建玩家
func NewPlayer(name string, seat int) *Player {
	return &Player{
		Name:     name,
		Seat:     seat,
		hand:     NewHand(),
		discards: NewDiscardPile(),
	}
}

// Hand 获取手牌
func (p *Player) Hand() *Hand {
	return p.hand
}

// Discards 获取弃牌堆
func (p *Player) Discards() *DiscardPile {
	return p.discards
}

// Reset 清空手牌与弃牌
func (p *Player) Reset() {
	p.hand.Clear()
	p.discards.Clear()
}

// TakeInitialHand 接收起手牌
func (p *Player) TakeInitialHand(tiles []Tile) error {
	return p.hand.SetTiles(tiles)
}

// Draw 摸牌
func (p *Player) Draw(t Tile) error {
	if !t.IsValid() {
		return ErrInvalidTile.WithContext("player", p.Name).WithContext("tile", t)
	}
	return p.hand.Add(t)
}

// Discard 按策略出牌：从手牌移除并放入弃牌堆
func (p *Player) Discard(strategy DiscardStrategy) (Tile, error) {
	if p.hand.IsEmpty() {
		return Tile{}, ErrEmptyHand.WithContext("player", p.Name)
	}
	t, err := strategy.ChooseDiscard(p.hand.Tiles())
	if err != nil {
		return Tile{}, err
	}
	if err := p.hand.Remove(t); err != nil {
		return Tile{}, err
	}
	p.discards.Add(t)
	return t, nil
}

// DescribeHand 手牌显示串
func (p *Player) DescribeHand() string {
	return p.hand.String()
}

// DescribeDiscards 弃牌显示串
func (p *Player) DescribeDiscards() string {
	return p.discards.String()
}
