package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"sudooom.mahjong.sim/internal/config"
	"sudooom.mahjong.sim/internal/game/mahjong/core"
	"sudooom.mahjong.sim/internal/snowflake"
)

// RoundRecord 牌局记录
type RoundRecord struct {
	ID          int64         `json:"id"`
	GameType    string        `json:"gameType"`
	Seed        int64         `json:"seed"`
	HasSeed     bool          `json:"hasSeed"`
	Winner      *string       `json:"winner"`
	WinnerSeat  *int          `json:"winnerSeat"`
	WinningTile *string       `json:"winningTile"`
	Shape       core.WinShape `json:"shape"`
	IsDraw      bool          `json:"isDraw"`
	Turns       int           `json:"turns"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// NewRoundRecord 从牌局结果构建记录，创建时间取自牌局 ID 中的时间戳
func NewRoundRecord(result *core.RoundResult) *RoundRecord {
	record := &RoundRecord{
		ID:        result.RoundID,
		GameType:  result.GameType,
		Seed:      result.Seed,
		HasSeed:   result.HasSeed,
		Shape:     result.Shape,
		IsDraw:    result.Draw,
		Turns:     result.Turns,
		CreatedAt: snowflake.ID(result.RoundID).Time(),
	}
	if !result.Draw && result.WinningTile != nil {
		winner := result.Winner
		seat := result.WinnerSeat
		tile := result.WinningTile.String()
		record.Winner = &winner
		record.WinnerSeat = &seat
		record.WinningTile = &tile
	}
	return record
}

var schema = []string{`
	CREATE TABLE IF NOT EXISTS mahjong_rounds (
		id           BIGINT PRIMARY KEY,
		game_type    VARCHAR(32)  NOT NULL,
		seed         BIGINT       NOT NULL DEFAULT 0,
		has_seed     BOOLEAN      NOT NULL DEFAULT FALSE,
		winner       VARCHAR(64),
		winner_seat  SMALLINT,
		winning_tile VARCHAR(4),
		shape        VARCHAR(32)  NOT NULL,
		is_draw      BOOLEAN      NOT NULL,
		turns        INTEGER      NOT NULL,
		created_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mahjong_rounds_game_seed ON mahjong_rounds (game_type, seed)`,
}

// Connect 连接 PostgreSQL
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = 10 * time.Minute

	return pgxpool.NewWithConfig(ctx, poolConfig)
}

// RoundRepository 牌局仓库
type RoundRepository struct {
	db *pgxpool.Pool
}

// NewRoundRepository 创建牌局仓库
func NewRoundRepository(db *pgxpool.Pool) *RoundRepository {
	return &RoundRepository{db: db}
}

// Name 存储名称
func (r *RoundRepository) Name() string {
	return "postgres"
}

// EnsureSchema 建表
func (r *RoundRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// Save 保存牌局结果，重复的 ID 忽略
func (r *RoundRepository) Save(ctx context.Context, result *core.RoundResult) error {
	_, err := r.Create(ctx, NewRoundRecord(result))
	return err
}

// Create 创建牌局记录
func (r *RoundRepository) Create(ctx context.Context, record *RoundRecord) (bool, error) {
	query := `
		INSERT INTO mahjong_rounds (id, game_type, seed, has_seed, winner, winner_seat, winning_tile, shape, is_draw, turns, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query,
		record.ID,
		record.GameType,
		record.Seed,
		record.HasSeed,
		record.Winner,
		record.WinnerSeat,
		record.WinningTile,
		string(record.Shape),
		record.IsDraw,
		record.Turns,
		record.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert round: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
