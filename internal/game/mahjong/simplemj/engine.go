package simplemj

import (
	"context"

	"sudooom.mahjong.sim/internal/game/mahjong/core"
)

// Engine 简化规则牌局引擎
type Engine struct {
	*core.Engine
	winningAlgo *WinningAlgorithm
	discarder   *DiscardStrategy
}

// NewEngine 创建简化规则牌局引擎
func NewEngine(opts ...core.EngineOption) *Engine {
	deckGen := NewDeckGenerator()
	winningAlgo := NewWinningAlgorithm()
	discarder := NewDiscardStrategy()

	coreEngine := core.NewEngine(
		deckGen,
		winningAlgo,
		discarder,
		opts...,
	)

	return &Engine{
		Engine:      coreEngine,
		winningAlgo: winningAlgo,
		discarder:   discarder,
	}
}

// PlayRound 进行一局 (重写以补充规则类型)
func (e *Engine) PlayRound(ctx context.Context, playerNames []string, config core.GameConfig) (*core.RoundResult, error) {
	if config.GameType == "" {
		config.GameType = GameType
	}
	return e.Engine.PlayRound(ctx, playerNames, config)
}

// WinningAlgorithm 胡牌算法
func (e *Engine) WinningAlgorithm() *WinningAlgorithm {
	return e.winningAlgo
}

// DiscardStrategy 出牌策略
func (e *Engine) DiscardStrategy() *DiscardStrategy {
	return e.discarder
}

// GameType 规则类型名称
const GameType = "simple"
