package mahjong

import (
	"sync"

	"sudooom.mahjong.sim/internal/game/mahjong/core"
)

// BatchStats 批量模拟统计，可并发累加
type BatchStats struct {
	mu sync.Mutex

	Rounds          int                   `json:"rounds"`
	Draws           int                   `json:"draws"`
	WinsBySeat      [core.PlayerCount]int `json:"winsBySeat"`
	WinsByName      map[string]int        `json:"winsByName"`
	ThirteenOrphans int                   `json:"thirteenOrphans"`
	TotalTurns      int                   `json:"totalTurns"`
}

// NewBatchStats 创建统计
func NewBatchStats() *BatchStats {
	return &BatchStats{WinsByName: make(map[string]int)}
}

// Add 累加一局结果
func (s *BatchStats) Add(result *core.RoundResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Rounds++
	s.TotalTurns += result.Turns
	if result.Draw {
		s.Draws++
		return
	}
	if result.WinnerSeat >= 0 && result.WinnerSeat < core.PlayerCount {
		s.WinsBySeat[result.WinnerSeat]++
	}
	s.WinsByName[result.Winner]++
	if result.Shape == core.WinShapeThirteenOrphans {
		s.ThirteenOrphans++
	}
}

// Wins 胡牌局数
func (s *BatchStats) Wins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Rounds - s.Draws
}

// AverageTurns 平均回合数
func (s *BatchStats) AverageTurns() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Rounds)
}

// WinRate 胡牌率
func (s *BatchStats) WinRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Rounds-s.Draws) / float64(s.Rounds)
}
