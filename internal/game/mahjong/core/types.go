package core

import (
	"fmt"
	"strings"
)

// PlayerCount 每局玩家数量
const PlayerCount = 4

// DefaultPlayerNames 默认座位名称（按发牌顺序）
var DefaultPlayerNames = []string{"East", "South", "West", "North"}

// WinShape 胡牌牌型
type WinShape string

const (
	WinShapeNone            WinShape = "none"             // 未胡
	WinShapeStandard        WinShape = "standard"         // 四面子一将
	WinShapeThirteenOrphans WinShape = "thirteen_orphans" // 国士无双
)

// MeldKind 面子类型
type MeldKind string

const (
	MeldTriplet MeldKind = "triplet" // 刻子
	MeldRun     MeldKind = "run"     // 顺子
)

// Meld 面子
type Meld struct {
	Kind  MeldKind `json:"kind"`
	Tiles []Tile   `json:"tiles"`
}

// String 显示串
func (m Meld) String() string {
	return joinTiles(m.Tiles)
}

// Decomposition 标准胡牌的拆分结果
type Decomposition struct {
	Pair  Tile   `json:"pair"`
	Melds []Meld `json:"melds"`
}

// ScoredTile 带出牌评分的牌，分数越低越先打出
type ScoredTile struct {
	Tile  Tile `json:"tile"`
	Score int  `json:"score"`
}

// GameConfig 单局配置
type GameConfig struct {
	Seed     *int64 `json:"seed,omitempty"` // 洗牌种子，nil 表示随机
	MaxTurns int    `json:"maxTurns"`       // 最大回合数，0 表示发牌后牌墙张数
	Log      bool   `json:"log"`            // 是否记录逐回合日志
	GameType string `json:"gameType"`       // 规则类型
}

// RoundState 牌局状态
type RoundState struct {
	Turn          int  `json:"turn"`          // 已进行回合数
	CurrentPlayer int  `json:"currentPlayer"` // 当前玩家索引
	IsOver        bool `json:"isOver"`        // 是否结束
}

// RoundResult 单局结果
type RoundResult struct {
	RoundID     int64    `json:"roundId"`               // 牌局ID
	GameType    string   `json:"gameType"`              // 规则类型
	Seed        int64    `json:"seed"`                  // 洗牌种子
	HasSeed     bool     `json:"hasSeed"`               // 是否指定了种子
	Winner      string   `json:"winner,omitempty"`      // 赢家名称
	WinnerSeat  int      `json:"winnerSeat"`            // 赢家座位，流局为 -1
	WinningTile *Tile    `json:"winningTile,omitempty"` // 和牌张
	WinningHand []Tile   `json:"winningHand,omitempty"` // 和牌时的手牌
	Shape       WinShape `json:"shape"`                 // 牌型
	Pair        *Tile    `json:"pair,omitempty"`        // 标准胡牌的将
	Melds       []Meld   `json:"melds,omitempty"`       // 标准胡牌的面子
	Draw        bool     `json:"draw"`                  // 是否流局
	Turns       int      `json:"turns"`                 // 回合数
	Logs        []string `json:"logs,omitempty"`        // 逐回合日志
}

// Decomposition 标准胡牌拆分的显示串，如 "[1m 1m] | 2m 3m 4m | ..."，无拆分时为空
func (r *RoundResult) Decomposition() string {
	if r.Pair == nil {
		return ""
	}
	parts := make([]string, 0, len(r.Melds)+1)
	parts = append(parts, "["+r.Pair.String()+" "+r.Pair.String()+"]")
	for _, m := range r.Melds {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, " | ")
}

// Summary 结果摘要
func (r *RoundResult) Summary() string {
	if r.Draw || r.WinningTile == nil {
		return "The round ended in an exhaustive draw."
	}
	return fmt.Sprintf("%s wins after %d turns with hand: %s (winning tile %s)",
		r.Winner, r.Turns, FormatTiles(r.WinningHand), r.WinningTile)
}
