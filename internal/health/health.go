package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

// 依赖状态
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusDisabled     = "disabled"
)

// Status 健康状态
type Status struct {
	NATS     string `json:"nats"`
	Redis    string `json:"redis"`
	Database string `json:"database"`
}

// Healthy 没有任何已启用的依赖断开
func (s *Status) Healthy() bool {
	return s.NATS != StatusDisconnected &&
		s.Redis != StatusDisconnected &&
		s.Database != StatusDisconnected
}

// Checker 健康检查器，未启用的依赖传 nil
type Checker struct {
	nc          *nats.Conn
	redisClient *redis.Client
	db          *pgxpool.Pool
	timeout     time.Duration
}

// NewChecker 创建健康检查器
func NewChecker(nc *nats.Conn, redisClient *redis.Client, db *pgxpool.Pool) *Checker {
	return &Checker{
		nc:          nc,
		redisClient: redisClient,
		db:          db,
		timeout:     2 * time.Second,
	}
}

// Check 执行健康检查
func (h *Checker) Check(ctx context.Context) *Status {
	status := &Status{
		NATS:     StatusDisabled,
		Redis:    StatusDisabled,
		Database: StatusDisabled,
	}

	// 检查 NATS
	if h.nc != nil {
		status.NATS = connected(h.nc.IsConnected())
	}

	// 检查 Redis
	if h.redisClient != nil {
		redisCtx, redisCancel := context.WithTimeout(ctx, h.timeout)
		status.Redis = connected(h.redisClient.Ping(redisCtx).Err() == nil)
		redisCancel()
	}

	// 检查 PostgreSQL
	if h.db != nil {
		dbCtx, dbCancel := context.WithTimeout(ctx, h.timeout)
		status.Database = connected(h.db.Ping(dbCtx) == nil)
		dbCancel()
	}

	return status
}

func connected(ok bool) string {
	if ok {
		return StatusConnected
	}
	return StatusDisconnected
}

// IsHealthy 检查是否健康
func (h *Checker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx).Healthy()
}

// ServeHTTP HTTP 健康检查端点
func (h *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := h.Check(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if status.Healthy() {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(status)
}
