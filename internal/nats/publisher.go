package nats

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"sudooom.mahjong.sim/internal/game/mahjong/core"
)

// RoundEvent 牌局结束事件，不含完整日志
type RoundEvent struct {
	RoundID     int64         `json:"roundId"`
	GameType    string        `json:"gameType"`
	Seed        int64         `json:"seed"`
	HasSeed     bool          `json:"hasSeed"`
	Winner      string        `json:"winner,omitempty"`
	WinnerSeat  int           `json:"winnerSeat"`
	WinningTile string        `json:"winningTile,omitempty"`
	Shape       core.WinShape `json:"shape"`
	Draw        bool          `json:"draw"`
	Turns       int           `json:"turns"`
}

// NewRoundEvent 从牌局结果构建事件
func NewRoundEvent(result *core.RoundResult) *RoundEvent {
	event := &RoundEvent{
		RoundID:    result.RoundID,
		GameType:   result.GameType,
		Seed:       result.Seed,
		HasSeed:    result.HasSeed,
		Winner:     result.Winner,
		WinnerSeat: result.WinnerSeat,
		Shape:      result.Shape,
		Draw:       result.Draw,
		Turns:      result.Turns,
	}
	if result.WinningTile != nil {
		event.WinningTile = result.WinningTile.String()
	}
	return event
}

// RoundPublisher 牌局事件发布器
type RoundPublisher struct {
	nc     *nats.Conn
	logger *slog.Logger
}

// NewRoundPublisher 创建牌局事件发布器
func NewRoundPublisher(nc *nats.Conn) *RoundPublisher {
	return &RoundPublisher{
		nc:     nc,
		logger: slog.Default(),
	}
}

// Name 存储名称
func (p *RoundPublisher) Name() string {
	return "nats"
}

// Save 发布牌局结束事件
func (p *RoundPublisher) Save(ctx context.Context, result *core.RoundResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := BuildRoundFinishedSubject(result.GameType)
	data, err := json.Marshal(NewRoundEvent(result))
	if err != nil {
		p.logger.Error("Failed to marshal round event", "error", err)
		return err
	}

	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish round event", "roundId", result.RoundID, "error", err)
		return err
	}

	p.logger.Debug("Published round event", "roundId", result.RoundID, "subject", subject)
	return nil
}
