package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"` // 为空时允许所有来源
	MaxConnections int      `yaml:"max_connections"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	LobbyTTL         int `yaml:"lobby_ttl"`         // 大厅代码占用时长（分钟）
	SnapshotInterval int `yaml:"snapshot_interval"` // 大厅快照间隔（秒）
	MaxSeats         int `yaml:"max_seats"`         // 每个大厅最多座位数
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`  // debug/info/warn/error
	Format string `yaml:"format"` // text/json
	File   string `yaml:"file"`   // 为空时输出到 stderr
}

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 1780
	defaultMaxConnections   = 1000
	defaultRedisAddr        = "localhost:6379"
	defaultLobbyTTL         = 30
	defaultSnapshotInterval = 60
	maxSeats                = 4
)

// LobbyTTLDuration 返回大厅代码占用时长
func (c *GameConfig) LobbyTTLDuration() time.Duration {
	return time.Duration(c.LobbyTTL) * time.Minute
}

// SnapshotIntervalDuration 返回大厅快照间隔
func (c *GameConfig) SnapshotIntervalDuration() time.Duration {
	return time.Duration(c.SnapshotInterval) * time.Second
}

// Load 加载配置：YAML 文件（可选）→ .env → 环境变量
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("读取 .env 失败: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           defaultHost,
			Port:           defaultPort,
			MaxConnections: defaultMaxConnections,
		},
		Redis: RedisConfig{
			Addr: defaultRedisAddr,
		},
		Game: GameConfig{
			LobbyTTL:         defaultLobbyTTL,
			SnapshotInterval: defaultSnapshotInterval,
			MaxSeats:         maxSeats,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyEnv 环境变量覆盖文件中的值
func (c *Config) applyEnv() error {
	if v := os.Getenv("RUMMY_SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("RUMMY_SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RUMMY_SERVER_PORT 无效: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("RUMMY_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("RUMMY_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("RUMMY_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("RUMMY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// fillDefaults 文件里写成 0 的字段回落到默认值
func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = def.Server.MaxConnections
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = def.Redis.Addr
	}
	if c.Game.LobbyTTL == 0 {
		c.Game.LobbyTTL = def.Game.LobbyTTL
	}
	if c.Game.SnapshotInterval == 0 {
		c.Game.SnapshotInterval = def.Game.SnapshotInterval
	}
	if c.Game.MaxSeats == 0 {
		c.Game.MaxSeats = def.Game.MaxSeats
	}
}

// Validate 检查取值范围
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d 超出范围", c.Server.Port)
	}
	if c.Server.MaxConnections < 1 {
		return fmt.Errorf("server.max_connections 必须为正数")
	}
	if c.Game.MaxSeats < 2 || c.Game.MaxSeats > maxSeats {
		return fmt.Errorf("game.max_seats 必须在 2 到 %d 之间", maxSeats)
	}
	if c.Game.LobbyTTL < 1 || c.Game.SnapshotInterval < 1 {
		return fmt.Errorf("game.lobby_ttl 和 game.snapshot_interval 必须为正数")
	}
	return nil
}
