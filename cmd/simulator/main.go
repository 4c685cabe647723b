package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	"sudooom.mahjong.sim/internal/cache"
	"sudooom.mahjong.sim/internal/config"
	"sudooom.mahjong.sim/internal/game/mahjong"
	"sudooom.mahjong.sim/internal/health"
	mjNats "sudooom.mahjong.sim/internal/nats"
	"sudooom.mahjong.sim/internal/repository"
	"sudooom.mahjong.sim/internal/snowflake"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("simulator", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "configs/config.yaml", "配置文件路径")
	quiet := flags.BoolP("quiet", "q", false, "只输出结果，不输出逐回合日志")
	flags.Int64("seed", 0, "洗牌种子，不指定时随机")
	flags.Int("max-turns", 0, "最大回合数，0 表示直到牌墙摸空")
	flags.Int("rounds", 1, "模拟局数，大于 1 时输出汇总统计")
	flags.Int("workers", 4, "批量模拟的并发数")
	flags.String("game-type", string(mahjong.GameTypeSimple), "规则类型")
	flags.String("log-level", "info", "日志级别: debug, info, warn, error")
	flags.String("health-addr", "", "健康检查 HTTP 监听地址，如 :8081，为空时不启动")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}

	// 初始化日志，写到 stderr，stdout 只输出牌局
	logger := slog.New(slog.NewTextHandler(stderr, nil))
	slog.SetDefault(logger)

	// 加载配置
	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		return 1
	}
	logger = newLogger(stderr, cfg.App)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	deps, err := connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to connect dependencies", "error", err)
		return 1
	}
	defer deps.Close()

	if cfg.App.HealthAddr != "" {
		server := startHealthServer(cfg.App.HealthAddr, deps.checker, logger)
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer shutdownCancel()
			server.Shutdown(shutdownCtx)
		}()
	}

	svc := mahjong.NewMahjongService(
		snowflake.NewNode(cfg.App.NodeID),
		append(deps.options, mahjong.WithServiceLogger(logger))...,
	)

	req := mahjong.RoundRequest{
		GameType: mahjong.GameType(cfg.Game.Type),
		Players:  cfg.Game.Players,
		Seed:     cfg.Game.Seed,
		MaxTurns: cfg.Game.MaxTurns,
		Log:      cfg.Game.Log && !*quiet,
	}

	if cfg.Game.Rounds == 1 {
		result, err := svc.PlayRound(ctx, req)
		if err != nil {
			logger.Error("Failed to play round", "error", err)
			return 1
		}
		for _, line := range result.Logs {
			fmt.Fprintln(stdout, line)
		}
		fmt.Fprintln(stdout, result.Summary())
		return 0
	}

	req.Log = false
	stats, err := svc.RunBatch(ctx, mahjong.BatchRequest{
		RoundRequest: req,
		Rounds:       cfg.Game.Rounds,
		Workers:      cfg.Game.Workers,
	})
	if err != nil {
		logger.Error("Batch failed", "error", err)
		if stats == nil || stats.Rounds == 0 {
			return 1
		}
	}
	printStats(stdout, stats, req.Players)
	if err != nil {
		return 1
	}
	return 0
}

// newLogger 按配置创建日志
func newLogger(w io.Writer, cfg config.AppConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// printStats 输出批量统计
func printStats(w io.Writer, stats *mahjong.BatchStats, players []string) {
	fmt.Fprintf(w, "Rounds: %d\n", stats.Rounds)
	fmt.Fprintf(w, "Wins: %d (%.1f%%)\n", stats.Wins(), stats.WinRate()*100)
	fmt.Fprintf(w, "Draws: %d\n", stats.Draws)
	fmt.Fprintf(w, "Thirteen orphans: %d\n", stats.ThirteenOrphans)
	fmt.Fprintf(w, "Average turns: %.2f\n", stats.AverageTurns())
	for seat, wins := range stats.WinsBySeat {
		name := fmt.Sprintf("seat %d", seat)
		if seat < len(players) {
			name = players[seat]
		}
		fmt.Fprintf(w, "  %s: %d\n", name, wins)
	}
}

// newHealthMux 健康检查路由
func newHealthMux(checker *health.Checker) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/health", checker)
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if checker.IsHealthy(r.Context()) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Not Ready"))
		}
	})
	return mux
}

// startHealthServer 启动健康检查 HTTP 服务
func startHealthServer(addr string, checker *health.Checker, logger *slog.Logger) *http.Server {
	server := &http.Server{
		Addr:              addr,
		Handler:           newHealthMux(checker),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Health check server started", "addr", server.Addr)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed", "error", err)
		}
	}()
	return server
}

// dependencies 按配置启用的外部存储
type dependencies struct {
	options []mahjong.ServiceOption
	closers []func()
	checker *health.Checker
}

// Close 按创建的逆序关闭
func (d *dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// connect 连接配置中启用的 Redis、PostgreSQL 和 NATS
func connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	var (
		redisClient *redis.Client
		db          *pgxpool.Pool
		natsClient  *mjNats.Client
		sinks       []mahjong.RoundSink
	)

	// 连接 Redis
	if cfg.Sinks.Cache {
		redisClient = cache.NewRedisClient(cfg.Redis)
		deps.closers = append(deps.closers, func() { redisClient.Close() })
		deps.options = append(deps.options, mahjong.WithCache(cache.NewRoundCache(redisClient, cfg.Sinks.CacheTTL)))
		logger.Info("Round cache enabled", "addr", cfg.Redis.Addr())
	}

	// 连接数据库
	if cfg.Sinks.Database {
		pool, err := repository.Connect(ctx, cfg.Database)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("connect database: %w", err)
		}
		db = pool
		deps.closers = append(deps.closers, db.Close)

		repo := repository.NewRoundRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			deps.Close()
			return nil, err
		}
		sinks = append(sinks, repo)
		logger.Info("Connected to PostgreSQL", "host", cfg.Database.Host)
	}

	// 连接 NATS
	if cfg.Sinks.NATS {
		client, err := mjNats.NewClient(cfg.NATS)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		natsClient = client
		deps.closers = append(deps.closers, natsClient.Close)
		sinks = append(sinks, mjNats.NewRoundPublisher(natsClient.Conn()))
		logger.Info("Connected to NATS", "url", cfg.NATS.URL)
	}

	if len(sinks) > 0 {
		deps.options = append(deps.options, mahjong.WithSinks(sinks...))
	}

	var nc *nats.Conn
	if natsClient != nil {
		nc = natsClient.Conn()
	}
	deps.checker = health.NewChecker(nc, redisClient, db)

	if redisClient == nil && db == nil && natsClient == nil {
		return deps, nil
	}

	// 启动前检查已启用的依赖
	checkCtx, checkCancel := context.WithTimeout(ctx, 5*time.Second)
	defer checkCancel()
	status := deps.checker.Check(checkCtx)
	logger.Info("Dependency status",
		"nats", status.NATS,
		"redis", status.Redis,
		"database", status.Database)
	if !status.Healthy() {
		deps.Close()
		return nil, errors.New("dependency unavailable")
	}
	return deps, nil
}
