package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，如 MAHJONG_GAME_SEED
const EnvPrefix = "MAHJONG"

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Game     GameConfig     `mapstructure:"game"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Sinks    SinksConfig    `mapstructure:"sinks"`
}

type AppConfig struct {
	Name       string `mapstructure:"name"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
	NodeID     int64  `mapstructure:"node_id"`
	HealthAddr string `mapstructure:"health_addr"` // 为空时不启动健康检查服务
}

type GameConfig struct {
	Type     string   `mapstructure:"type"`
	Players  []string `mapstructure:"players"`
	Seed     *int64   `mapstructure:"seed"`
	MaxTurns int      `mapstructure:"max_turns"`
	Log      bool     `mapstructure:"log"`
	Rounds   int      `mapstructure:"rounds"`
	Workers  int      `mapstructure:"workers"`
}

type NATSConfig struct {
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN 生成 PostgreSQL 连接串
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Addr Redis 地址
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SinksConfig 牌局结果的外部存储开关，默认全部关闭
type SinksConfig struct {
	Cache    bool          `mapstructure:"cache"`
	Database bool          `mapstructure:"database"`
	NATS     bool          `mapstructure:"nats"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// SetDefaults 设置默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "mahjong-simulator")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")
	v.SetDefault("app.node_id", 1)
	v.SetDefault("app.health_addr", "")

	v.SetDefault("game.type", "simple")
	v.SetDefault("game.players", []string{"East", "South", "West", "North"})
	v.SetDefault("game.max_turns", 0)
	v.SetDefault("game.log", true)
	v.SetDefault("game.rounds", 1)
	v.SetDefault("game.workers", 4)

	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", 2*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "mahjong")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("sinks.cache", false)
	v.SetDefault("sinks.database", false)
	v.SetDefault("sinks.nats", false)
	v.SetDefault("sinks.cache_ttl", 24*time.Hour)
}

// Load 从指定路径加载配置，configPath 为空或文件不存在时只使用默认值、环境变量和命令行参数
// flags 中的参数按名称覆盖配置，映射关系见 FlagKeys
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
		}
	}

	if flags != nil {
		for key, name := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("绑定命令行参数失败: %w", err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 种子只有显式设置时才生效，0 也是合法种子
	cfg.Game.Seed = nil
	if v.IsSet("game.seed") {
		seed := v.GetInt64("game.seed")
		cfg.Game.Seed = &seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FlagKeys 配置键到命令行参数名的映射
var FlagKeys = map[string]string{
	"game.seed":       "seed",
	"game.max_turns":  "max-turns",
	"game.rounds":     "rounds",
	"game.workers":    "workers",
	"game.type":       "game-type",
	"app.log_level":   "log-level",
	"app.health_addr": "health-addr",
}

// Validate 校验配置
func (c *Config) Validate() error {
	if len(c.Game.Players) != 4 {
		return fmt.Errorf("game.players 需要 4 名玩家, 实际 %d", len(c.Game.Players))
	}
	if c.Game.Rounds < 1 {
		return fmt.Errorf("game.rounds 必须大于 0, 实际 %d", c.Game.Rounds)
	}
	if c.Game.Workers < 1 {
		return fmt.Errorf("game.workers 必须大于 0, 实际 %d", c.Game.Workers)
	}
	if c.Game.MaxTurns < 0 {
		return fmt.Errorf("game.max_turns 不能为负数, 实际 %d", c.Game.MaxTurns)
	}
	return nil
}
