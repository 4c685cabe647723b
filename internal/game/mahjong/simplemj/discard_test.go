package simplemj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sudooom.mahjong.sim/internal/game/mahjong/core"
)

// TestScore 测试出牌评分
func TestScore(t *testing.T) {
	d := NewDiscardStrategy()
	counts := core.CountsOf(parse(t, "1m 2m 3m 5m E E 4p 4p 9s"))

	tests := []struct {
		tile string
		want int
	}{
		{tile: "1m", want: 3 + 2}, // 2m 3m
		{tile: "2m", want: 3 + 2}, // 1m 3m
		{tile: "3m", want: 3 + 3}, // 1m 2m 5m
		{tile: "5m", want: 3 + 1}, // 3m
		{tile: "E", want: 6},      // 字牌没有邻牌加分
		{tile: "4p", want: 6},
		{tile: "9s", want: 3},
		{tile: "7s", want: 1}, // 不在手牌中：只计邻牌 9s
	}

	for _, tt := range tests {
		t.Run(tt.tile, func(t *testing.T) {
			tile, err := core.ParseTile(tt.tile)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Score(tile, counts))
		})
	}
}

// TestScoreCountsNeighbourIdentities 测试邻牌按种类计数，不按张数
func TestScoreCountsNeighbourIdentities(t *testing.T) {
	d := NewDiscardStrategy()
	counts := core.CountsOf(parse(t, "4m 5m 5m 5m"))
	assert.Equal(t, 3+1, d.Score(core.MustTile(core.SuitMan, 4), counts))
	assert.Equal(t, 9+1, d.Score(core.MustTile(core.SuitMan, 5), counts))
}

// TestChooseDiscard 测试选出评分最低的牌，同分取规范顺序靠前者
func TestChooseDiscard(t *testing.T) {
	tests := []struct {
		name string
		hand string
		want string
	}{
		{name: "isolated_suited_before_honor", hand: "123m 456p 789s E E N 9m", want: "9m"},
		{name: "tie_prefers_lower_rank", hand: "123m 456p 789s E E 9p 1s", want: "9p"},
		{name: "honor_tie", hand: "S E", want: "E"},
		{name: "keep_pairs", hand: "1m 1m 5p", want: "5p"},
		{name: "single_tile", hand: "C", want: "C"},
	}

	d := NewDiscardStrategy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := parse(t, tt.hand)
			before := core.CloneTiles(hand)

			tile, err := d.ChooseDiscard(hand)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tile.String())
			assert.Equal(t, before, hand)

			again, err := d.ChooseDiscard(hand)
			require.NoError(t, err)
			assert.Equal(t, tile, again)
		})
	}
}

// TestChooseDiscardOrderIndependent 测试结果与手牌顺序无关
func TestChooseDiscardOrderIndependent(t *testing.T) {
	d := NewDiscardStrategy()
	a, err := d.ChooseDiscard(parse(t, "9p 5s 123m 456p 789s E E"))
	require.NoError(t, err)
	b, err := d.ChooseDiscard(parse(t, "E 5s 3m E 9p 2m 1m 789s 654p"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// TestChooseDiscardErrors 测试空手牌与非法牌
func TestChooseDiscardErrors(t *testing.T) {
	d := NewDiscardStrategy()

	_, err := d.ChooseDiscard(nil)
	assert.ErrorIs(t, err, core.ErrEmptyHand)

	_, err = d.ChooseDiscard([]core.Tile{{}})
	assert.ErrorIs(t, err, core.ErrInvalidTile)
}

// TestRank 测试出牌优先级列表
func TestRank(t *testing.T) {
	ranked := NewDiscardStrategy().Rank(parse(t, "1m 2m 3m E E 9s"))
	require.Len(t, ranked, 5)

	got := make([]string, len(ranked))
	for i, r := range ranked {
		got[i] = r.Tile.String()
	}
	assert.Equal(t, []string{"9s", "1m", "2m", "3m", "E"}, got)
	assert.Equal(t, 3, ranked[0].Score)
	assert.Equal(t, 6, ranked[4].Score)
}

// TestRankSkipsInvalidTiles 测试非法的牌不参与评分
func TestRankSkipsInvalidTiles(t *testing.T) {
	d := NewDiscardStrategy()
	assert.Empty(t, d.Rank([]core.Tile{{}}))

	ranked := d.Rank([]core.Tile{{}, core.MustTile(core.SuitMan, 5), {Suit: core.SuitPin, Value: 12}})
	require.Len(t, ranked, 1)
	assert.Equal(t, core.MustTile(core.SuitMan, 5), ranked[0].Tile)
	assert.Equal(t, 3, ranked[0].Score)
}
