package simplemj

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sudooom.mahjong.sim/internal/game/mahjong/core"
)

type wallFunc func(seed *int64) *core.Wall

func (f wallFunc) Generate(seed *int64) *core.Wall { return f(seed) }

// stackedWall East 起手 13 张、其余三家起手牌、East 第一次摸牌依次被摸到
func stackedWall(t *testing.T, east []core.Tile, draw core.Tile) *core.Wall {
	t.Helper()
	counts := core.CountsOf(core.FullSet())
	take := func(tile core.Tile) {
		require.NoError(t, counts.Dec(tile))
	}
	for _, tile := range east {
		take(tile)
	}
	take(draw)

	others := 3 * core.StandardHandSize
	filler := make([]core.Tile, 0, others)
	for _, tile := range counts.Tiles() {
		if len(filler) == others {
			break
		}
		if !tile.IsTerminalOrHonor() {
			filler = append(filler, tile)
		}
	}
	for _, tile := range filler {
		take(tile)
	}

	first := append(append(slices.Clone(east), filler...), draw)
	order := counts.Tiles()
	for i := len(first) - 1; i >= 0; i-- {
		order = append(order, first[i])
	}
	require.Len(t, order, core.TotalTiles)
	wall, err := core.NewWall(order)
	require.NoError(t, err)
	return wall
}

func newStackedEngine(t *testing.T, east string, draw string, opts ...core.EngineOption) *core.Engine {
	t.Helper()
	drawn, err := core.ParseTile(draw)
	require.NoError(t, err)
	wall := stackedWall(t, parse(t, east), drawn)
	return core.NewEngine(
		wallFunc(func(*int64) *core.Wall { return wall }),
		NewWinningAlgorithm(),
		NewDiscardStrategy(),
		opts...,
	)
}

// TestPlayRoundDeterministic 测试相同种子结果完全一致
func TestPlayRoundDeterministic(t *testing.T) {
	seed := int64(20240601)
	config := core.GameConfig{Seed: &seed, Log: true}

	first, err := NewEngine().PlayRound(context.Background(), core.DefaultPlayerNames, config)
	require.NoError(t, err)
	second, err := NewEngine().PlayRound(context.Background(), core.DefaultPlayerNames, config)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, GameType, first.GameType)
	assert.NotEmpty(t, first.Logs)
}

// TestPlayRoundInvariants 测试多个种子下全程保持 136 张且结果自洽
func TestPlayRoundInvariants(t *testing.T) {
	algo := NewWinningAlgorithm()

	for seed := int64(0); seed < 25; seed++ {
		hookCalls := 0
		engine := NewEngine(core.WithTurnHook(func(e *core.Engine) {
			hookCalls++
			require.Equal(t, core.TotalTiles, e.TileTotal())
			counts := e.TileCounts()
			for _, tile := range core.AllTiles() {
				require.Equal(t, core.CopiesPerKind, counts.Count(tile))
			}
			for _, p := range e.Players() {
				size := p.Hand().Size()
				require.True(t, size == core.StandardHandSize || size == core.FullHandSize)
			}
		}))

		result, err := engine.PlayRound(context.Background(), core.DefaultPlayerNames, core.GameConfig{Seed: &seed})
		require.NoError(t, err)
		assert.Positive(t, hookCalls)

		if result.Draw {
			assert.Equal(t, 0, engine.Wall().Len())
			assert.Equal(t, core.WinShapeNone, result.Shape)
			continue
		}
		require.NotNil(t, result.WinningTile)
		assert.True(t, algo.IsWinningHand(result.WinningHand))
		assert.Contains(t, result.WinningHand, *result.WinningTile)
		assert.Equal(t, core.DefaultPlayerNames[result.WinnerSeat], result.Winner)
		assert.NotEqual(t, core.WinShapeNone, result.Shape)
	}
}

// TestPlayRoundStandardWin 测试起手听牌、第一次摸牌即胡
func TestPlayRoundStandardWin(t *testing.T) {
	engine := newStackedEngine(t, "123m 456p 789s 123m C", "C")

	result, err := engine.PlayRound(context.Background(), core.DefaultPlayerNames, core.GameConfig{Log: true})
	require.NoError(t, err)

	require.False(t, result.Draw)
	assert.Equal(t, "East", result.Winner)
	assert.Equal(t, 1, result.Turns)
	assert.Equal(t, core.WinShapeStandard, result.Shape)
	assert.Equal(t, []string{
		"Turn 1: East draws C -> 1m 1m 2m 2m 3m 3m 4p 5p 6p 7s 8s 9s C C",
		"East wins!",
	}, result.Logs)
	assert.Equal(t,
		"East wins after 1 turns with hand: 1m 1m 2m 2m 3m 3m 4p 5p 6p 7s 8s 9s C C (winning tile C)",
		result.Summary())

	require.NotNil(t, result.Pair)
	assert.Equal(t, "C", result.Pair.String())
	require.Len(t, result.Melds, 4)
	assert.Equal(t, "[C C] | 1m 2m 3m | 1m 2m 3m | 4p 5p 6p | 7s 8s 9s", result.Decomposition())
}

// TestPlayRoundThirteenOrphans 测试国士无双
func TestPlayRoundThirteenOrphans(t *testing.T) {
	engine := newStackedEngine(t, "19m 19p 19s E S W N P F C", "9s")

	result, err := engine.PlayRound(context.Background(), core.DefaultPlayerNames, core.GameConfig{})
	require.NoError(t, err)

	require.False(t, result.Draw)
	assert.Equal(t, "East", result.Winner)
	assert.Equal(t, core.WinShapeThirteenOrphans, result.Shape)
	assert.Equal(t, "9s", result.WinningTile.String())
	assert.Empty(t, result.Logs)
	assert.Nil(t, result.Pair)
	assert.Empty(t, result.Melds)
	assert.Empty(t, result.Decomposition())
}

// TestPlayRoundDiscardFlow 测试未胡时按策略出牌并轮转
func TestPlayRoundDiscardFlow(t *testing.T) {
	engine := newStackedEngine(t, "123m 456p 789s 123m C", "N")

	result, err := engine.PlayRound(context.Background(), core.DefaultPlayerNames, core.GameConfig{MaxTurns: 1, Log: true})
	require.NoError(t, err)

	assert.True(t, result.Draw)
	assert.Equal(t, 1, result.Turns)
	assert.Equal(t, []string{
		"Turn 1: East draws N -> 1m 1m 2m 2m 3m 3m 4p 5p 6p 7s 8s 9s N C",
		"East discards N. Discards: N",
	}, result.Logs)
	assert.Equal(t, []core.Tile{core.MustTile(core.SuitHonor, int(core.HonorNorth))}, engine.Discards())
}

// TestPlayRoundLogsDiscardRank 测试调试日志中输出出牌评分
func TestPlayRoundLogsDiscardRank(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	engine := newStackedEngine(t, "123m 456p 789s 123m C", "N", core.WithLogger(logger))

	_, err := engine.PlayRound(context.Background(), core.DefaultPlayerNames, core.GameConfig{MaxTurns: 1})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "出牌评分")
	assert.Contains(t, out, "player=East")
	assert.Contains(t, out, `rank="N:3 C:3 `)

	// info 级别不计算评分
	buf.Reset()
	quiet := newStackedEngine(t, "123m 456p 789s 123m C", "N",
		core.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	_, err = quiet.PlayRound(context.Background(), core.DefaultPlayerNames, core.GameConfig{MaxTurns: 1})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "出牌评分")
}
