package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Engine 通用牌局引擎：发牌、轮流摸打、判胡
// 单局内同步执行，不可在多个 goroutine 间共享
type Engine struct {
	wallGenerator WallGenerator
	winningAlgo   WinningAlgorithm
	discarder     DiscardStrategy
	logger        *slog.Logger
	turnHook      func(*Engine)

	wall     *Wall
	players  []*Player
	discards *DiscardPile // 全局弃牌（各玩家弃牌的合并顺序）
	state    *RoundState
}

// EngineOption 引擎选项
type EngineOption func(*Engine)

// WithLogger 设置日志
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTurnHook 每次摸牌和出牌后回调
func WithTurnHook(hook func(*Engine)) EngineOption {
	return func(e *Engine) {
		e.turnHook = hook
	}
}

// NewEngine 创建牌局引擎
func NewEngine(
	wallGen WallGenerator,
	winningAlgo WinningAlgorithm,
	discarder DiscardStrategy,
	opts ...EngineOption,
) *Engine {
	e := &Engine{
		wallGenerator: wallGen,
		winningAlgo:   winningAlgo,
		discarder:     discarder,
		logger:        slog.Default(),
		discards:      NewDiscardPile(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetupRound 重置所有状态并发牌，每人 13 张，按座位顺序
func (e *Engine) SetupRound(ctx context.Context, playerNames []string, config GameConfig) error {
	if len(playerNames) != PlayerCount {
		return ErrInvalidPlayerCount.
			WithContext("expected", PlayerCount).
			WithContext("actual", len(playerNames))
	}

	e.state = nil
	e.wall = e.wallGenerator.Generate(config.Seed)
	e.discards.Clear()
	e.resetPlayers(playerNames)

	for _, p := range e.players {
		hand := make([]Tile, 0, StandardHandSize)
		for range StandardHandSize {
			t, err := e.wall.Draw()
			if err != nil {
				return fmt.Errorf("发牌失败: %w", err)
			}
			hand = append(hand, t)
		}
		if err := p.TakeInitialHand(hand); err != nil {
			return fmt.Errorf("发牌失败: %w", err)
		}
	}
	e.state = &RoundState{}

	e.logger.Debug("牌局初始化成功",
		"wallRemaining", e.wall.Len(),
		"gameType", config.GameType)
	return nil
}

// resetPlayers 复用上一局的玩家并清空手牌与弃牌，人数变化时重新创建
func (e *Engine) resetPlayers(playerNames []string) {
	if len(e.players) != len(playerNames) {
		e.players = make([]*Player, len(playerNames))
		for i, name := range playerNames {
			e.players[i] = NewPlayer(name, i)
		}
		return
	}
	for i, p := range e.players {
		p.Name = playerNames[i]
		p.Reset()
	}
}

// PlayRound 进行一局：摸牌后立即判胡，否则按策略出牌，直到有人胡牌、牌墙摸空或达到回合上限
func (e *Engine) PlayRound(ctx context.Context, playerNames []string, config GameConfig) (*RoundResult, error) {
	if err := e.SetupRound(ctx, playerNames, config); err != nil {
		return nil, err
	}

	maxTurns := config.MaxTurns
	if maxTurns <= 0 {
		maxTurns = e.wall.Len()
	}

	var logs []string
	addLog := func(format string, args ...any) {
		if config.Log {
			logs = append(logs, fmt.Sprintf(format, args...))
		}
	}

	for e.wall.Len() > 0 && e.state.Turn < maxTurns {
		player := e.players[e.state.CurrentPlayer]

		drawn, err := e.wall.Draw()
		if err != nil {
			return nil, err
		}
		if err := player.Draw(drawn); err != nil {
			return nil, err
		}
		e.state.Turn++
		addLog("Turn %d: %s draws %s -> %s", e.state.Turn, player.Name, drawn, player.DescribeHand())
		e.fireHook()

		hand := player.Hand().Tiles()
		if e.winningAlgo.IsWinningHand(hand) {
			addLog("%s wins!", player.Name)
			e.state.IsOver = true
			winning := drawn
			result := e.newResult(config, logs)
			result.Winner = player.Name
			result.WinnerSeat = player.Seat
			result.WinningTile = &winning
			result.WinningHand = hand
			result.Shape = e.winningAlgo.Classify(hand)
			if result.Shape == WinShapeStandard {
				if d, ok := e.winningAlgo.Decompose(hand); ok {
					pair := d.Pair
					result.Pair = &pair
					result.Melds = d.Melds
				}
			}
			e.logger.Debug("玩家胡牌",
				"player", player.Name,
				"tile", drawn.String(),
				"shape", result.Shape,
				"decomposition", result.Decomposition(),
				"turn", e.state.Turn)
			return result, nil
		}

		e.logDiscardRank(ctx, player, hand)

		discard, err := player.Discard(e.discarder)
		if err != nil {
			return nil, fmt.Errorf("出牌失败: %w", err)
		}
		e.discards.Add(discard)
		addLog("%s discards %s. Discards: %s", player.Name, discard, player.DescribeDiscards())
		e.fireHook()

		e.state.CurrentPlayer = (e.state.CurrentPlayer + 1) % len(e.players)
	}

	e.state.IsOver = true
	result := e.newResult(config, logs)
	result.Draw = true
	e.logger.Debug("流局", "turns", e.state.Turn, "wallRemaining", e.wall.Len())
	return result, nil
}

// logDiscardRank 调试级别下输出出牌评分
func (e *Engine) logDiscardRank(ctx context.Context, player *Player, hand []Tile) {
	ranker, ok := e.discarder.(DiscardRanker)
	if !ok || !e.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	ranked := ranker.Rank(hand)
	parts := make([]string, len(ranked))
	for i, st := range ranked {
		parts[i] = fmt.Sprintf("%s:%d", st.Tile, st.Score)
	}
	e.logger.Debug("出牌评分",
		"player", player.Name,
		"turn", e.state.Turn,
		"rank", strings.Join(parts, " "))
}

func (e *Engine) newResult(config GameConfig, logs []string) *RoundResult {
	seed, hasSeed := e.wall.Seed()
	return &RoundResult{
		GameType:   config.GameType,
		Seed:       seed,
		HasSeed:    hasSeed,
		WinnerSeat: -1,
		Shape:      WinShapeNone,
		Turns:      e.state.Turn,
		Logs:       logs,
	}
}

func (e *Engine) fireHook() {
	if e.turnHook != nil {
		e.turnHook(e)
	}
}

// Wall 当前牌墙
func (e *Engine) Wall() *Wall {
	return e.wall
}

// Players 当前玩家
func (e *Engine) Players() []*Player {
	return e.players
}

// Discards 全局弃牌
func (e *Engine) Discards() []Tile {
	return e.discards.Tiles()
}

// State 牌局状态
func (e *Engine) State() (RoundState, error) {
	if e.state == nil {
		return RoundState{}, ErrRoundNotStarted
	}
	return *e.state, nil
}

// TileTotal 牌墙 + 所有手牌 + 所有弃牌的总张数，牌局中应始终为 136
func (e *Engine) TileTotal() int {
	if e.wall == nil {
		return 0
	}
	total := e.wall.Len()
	for _, p := range e.players {
		total += p.Hand().Size() + p.Discards().Size()
	}
	return total
}

// TileCounts 场上所有牌的计数
func (e *Engine) TileCounts() TileCounts {
	var counts TileCounts
	if e.wall == nil {
		return counts
	}
	add := func(tiles []Tile) {
		for _, t := range tiles {
			counts.Inc(t)
		}
	}
	add(e.wall.Tiles())
	for _, p := range e.players {
		add(p.Hand().Tiles())
		add(p.Discards().Tiles())
	}
	return counts
}
