package mahjong

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"sudooom.mahjong.sim/internal/game/mahjong/core"
	"sudooom.mahjong.sim/internal/game/mahjong/simplemj"
	"sudooom.mahjong.sim/internal/snowflake"
	"sudooom.mahjong.sim/internal/workerpool"
)

// GameType 麻将规则类型
type GameType string

const (
	GameTypeSimple GameType = simplemj.GameType // 简化规则：只摸打，不吃碰杠
)

// ErrUnsupportedGameType 不支持的规则类型
var ErrUnsupportedGameType = errors.New("unsupported game type")

// RoundEngine 单局引擎，每局使用独立实例
type RoundEngine interface {
	PlayRound(ctx context.Context, playerNames []string, config core.GameConfig) (*core.RoundResult, error)
}

// RoundStore 按种子复用牌局结果的缓存
type RoundStore interface {
	Get(ctx context.Context, gameType string, seed int64) (*core.RoundResult, bool, error)
	Save(ctx context.Context, result *core.RoundResult) error
}

// RoundRequest 单局请求
type RoundRequest struct {
	GameType GameType
	Players  []string // 为空时使用默认座位名
	Seed     *int64   // nil 表示随机洗牌
	MaxTurns int
	Log      bool
}

// BatchRequest 批量请求，指定种子时第 i 局使用 Seed+i
type BatchRequest struct {
	RoundRequest
	Rounds  int
	Workers int
}

// MahjongService 麻将模拟服务
type MahjongService struct {
	cache    RoundStore
	recorder *Recorder
	idGen    *snowflake.Node
	logger   *slog.Logger
}

// ServiceOption 服务选项
type ServiceOption func(*MahjongService)

// WithCache 设置结果缓存
func WithCache(cache RoundStore) ServiceOption {
	return func(s *MahjongService) {
		s.cache = cache
	}
}

// WithSinks 设置结果存储
func WithSinks(sinks ...RoundSink) ServiceOption {
	return func(s *MahjongService) {
		s.recorder = NewRecorder(sinks...)
	}
}

// WithServiceLogger 设置日志
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *MahjongService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewMahjongService 创建麻将模拟服务
func NewMahjongService(idGen *snowflake.Node, opts ...ServiceOption) *MahjongService {
	s := &MahjongService{
		recorder: NewRecorder(),
		idGen:    idGen,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.idGen == nil {
		s.idGen = snowflake.NewNode(1)
	}
	return s
}

// CreateEngine 创建牌局引擎
func (s *MahjongService) CreateEngine(gameType GameType) (RoundEngine, error) {
	switch gameType {
	case GameTypeSimple, "":
		return simplemj.NewEngine(core.WithLogger(s.logger)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGameType, gameType)
	}
}

// PlayRound 进行一局
// 默认座位且不限回合的有种子牌局可由缓存直接返回，缓存命中时不再重复记录
func (s *MahjongService) PlayRound(ctx context.Context, req RoundRequest) (*core.RoundResult, error) {
	if req.GameType == "" {
		req.GameType = GameTypeSimple
	}
	players := req.Players
	if len(players) == 0 {
		players = core.DefaultPlayerNames
	}

	engine, err := s.CreateEngine(req.GameType)
	if err != nil {
		return nil, err
	}

	cacheable := s.cache != nil && req.Seed != nil && req.MaxTurns == 0 &&
		slices.Equal(players, core.DefaultPlayerNames)
	if cacheable {
		cached, ok, err := s.cache.Get(ctx, string(req.GameType), *req.Seed)
		if err != nil {
			s.logger.Warn("Failed to read round cache", "seed", *req.Seed, "error", err)
		} else if ok {
			s.logger.Debug("Round cache hit", "seed", *req.Seed, "roundId", cached.RoundID)
			// 复制一份，缓存实现可能返回共享的结果
			hit := *cached
			if !req.Log {
				hit.Logs = nil
			}
			return &hit, nil
		}
	}

	result, err := engine.PlayRound(ctx, players, core.GameConfig{
		Seed:     req.Seed,
		MaxTurns: req.MaxTurns,
		Log:      req.Log,
		GameType: string(req.GameType),
	})
	if err != nil {
		return nil, err
	}
	result.RoundID = s.idGen.Generate().Int64()

	// 存储失败只记录日志，不影响模拟结果
	if err := s.recorder.Record(ctx, result); err != nil {
		s.logger.Warn("Round recorded partially", "roundId", result.RoundID, "error", err)
	}

	// 缓存中的结果需要完整日志，才能满足之后任意请求
	if cacheable && req.Log {
		if err := s.cache.Save(ctx, result); err != nil {
			s.logger.Warn("Failed to write round cache", "seed", *req.Seed, "error", err)
		}
	}

	return result, nil
}

// RunBatch 在 worker pool 中并发进行多局并汇总统计
// ctx 取消时停止提交新牌局，返回已完成部分的统计和 ctx 的错误
func (s *MahjongService) RunBatch(ctx context.Context, req BatchRequest) (*BatchStats, error) {
	if req.Rounds < 1 {
		return nil, fmt.Errorf("rounds must be positive, got %d", req.Rounds)
	}
	if _, err := s.CreateEngine(req.GameType); err != nil {
		return nil, err
	}

	pool := workerpool.New(req.Workers, req.Workers*2, s.logger)
	stats := NewBatchStats()

	var (
		mu   sync.Mutex
		errs []error
	)

	for i := range req.Rounds {
		if ctx.Err() != nil {
			break
		}
		round := req.RoundRequest
		if req.Seed != nil {
			seed := *req.Seed + int64(i)
			round.Seed = &seed
		}

		submitted := pool.Submit(ctx, func() {
			result, err := s.PlayRound(ctx, round)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("round %d: %w", i, err))
				mu.Unlock()
				return
			}
			stats.Add(result)
		})
		if !submitted {
			break
		}
	}
	// 取消时丢弃队列中尚未开始的牌局
	if ctx.Err() != nil {
		pool.Stop()
	} else {
		pool.Shutdown()
	}

	s.logger.Info("Batch finished",
		"rounds", stats.Rounds,
		"draws", stats.Draws,
		"workers", pool.Workers())

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, errors.Join(errs...)
}
