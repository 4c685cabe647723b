package core

// WallGenerator 牌墙生成器接口
type WallGenerator interface {
	// Generate 生成洗好的牌墙，seed 为 nil 时随机
	Generate(seed *int64) *Wall
}

// WinningAlgorithm 胡牌算法接口
type WinningAlgorithm interface {
	// IsWinningHand 检查 14 张手牌是否胡牌
	IsWinningHand(hand []Tile) bool

	// Classify 获取胡牌牌型
	Classify(hand []Tile) WinShape

	// Decompose 标准胡牌的一种拆分，不是四面子一将时返回 false
	Decompose(hand []Tile) (Decomposition, bool)
}

// DiscardStrategy 出牌策略接口
type DiscardStrategy interface {
	// ChooseDiscard 选出要打出的牌，不修改手牌
	ChooseDiscard(hand []Tile) (Tile, error)
}

// DiscardRanker 可列出出牌优先级的策略，引擎在调试日志中输出
type DiscardRanker interface {
	Rank(hand []Tile) []ScoredTile
}
