package mahjong

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"sudooom.mahjong.sim/internal/game/mahjong/core"
)

// RoundSink 牌局结果的外部存储
type RoundSink interface {
	Name() string
	Save(ctx context.Context, result *core.RoundResult) error
}

// Recorder 将牌局结果并发写入所有存储
type Recorder struct {
	sinks  []RoundSink
	logger *slog.Logger
}

// NewRecorder 创建记录器，nil 的存储会被忽略
func NewRecorder(sinks ...RoundSink) *Recorder {
	r := &Recorder{logger: slog.Default()}
	for _, sink := range sinks {
		if sink != nil {
			r.sinks = append(r.sinks, sink)
		}
	}
	return r
}

// Names 已配置的存储名称
func (r *Recorder) Names() []string {
	names := make([]string, len(r.sinks))
	for i, sink := range r.sinks {
		names[i] = sink.Name()
	}
	return names
}

// Record 写入所有存储，单个存储失败不影响其他存储，返回第一个错误
func (r *Recorder) Record(ctx context.Context, result *core.RoundResult) error {
	if len(r.sinks) == 0 {
		return nil
	}

	var g errgroup.Group
	for _, sink := range r.sinks {
		g.Go(func() error {
			if err := sink.Save(ctx, result); err != nil {
				r.logger.Warn("Failed to record round",
					"sink", sink.Name(),
					"roundId", result.RoundID,
					"error", err)
				return fmt.Errorf("%s: %w", sink.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
