package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database    DatabaseConfigs    `toml:"database"`
	ApiServer   ServerConfigs      `toml:"api_server"`
	Redis       RedisConfigs       `toml:"redis"`
	Kafka       KafkaConfigs       `toml:"kafka"`
	Reward      RewardConfigs      `toml:"reward"`
	Leaderboard LeaderboardConfigs `toml:"leaderboard"`
	RateLimit   RateLimitConfigs   `toml:"rate_limit"`
}

type DatabaseConfigs struct {
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User,
			d.Password,
			d.Host,
			d.Port,
			d.Database,
		)
	case "sqlite":
		return d.Database
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Database,
	)
}

type ServerConfigs struct {
	Host           string   `toml:"host"`
	Port           string   `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr              string `toml:"addr"`
	NotificationTopic string `toml:"notification_topic"`
}

type RewardConfigs struct {
	MaxXP         int64   `toml:"max_xp"`
	MaxCommission float64 `toml:"max_commission"`
	Milestones    []int64 `toml:"milestones"`
}

type LeaderboardConfigs struct {
	SnapshotTTL time.Duration `toml:"snapshot_ttl"`
}

type RateLimitConfigs struct {
	RequestsPerSecond float64       `toml:"requests_per_second"`
	Burst             int           `toml:"burst"`
	IdleTTL           time.Duration `toml:"idle_ttl"`
	CleanupInterval   time.Duration `toml:"cleanup_interval"`
}

func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     "5432",
			Database: "questboard",
			User:     "postgres",
		},
		ApiServer: ServerConfigs{Port: "8080", AllowedOrigins: []string{"*"}},
		Redis:     RedisConfigs{Addr: "localhost:6379"},
		Kafka: KafkaConfigs{
			Addr:              "localhost:9092",
			NotificationTopic: "notification",
		},
		Reward: RewardConfigs{
			MaxXP:         5000,
			MaxCommission: 500,
			Milestones:    []int64{1000, 5000, 10000, 50000},
		},
		Leaderboard: LeaderboardConfigs{SnapshotTTL: 24 * time.Hour},
		RateLimit: RateLimitConfigs{
			RequestsPerSecond: 10,
			Burst:             20,
			IdleTTL:           10 * time.Minute,
			CleanupInterval:   time.Minute,
		},
	}
}

// Load reads .env (if any), then the TOML file at path (if not empty) on top
// of the defaults, then applies environment overrides.
func Load(path string) (Configs, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Configs{}, err
	}

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.Database.Driver, "DB_DRIVER")
	overrideString(&cfg.Database.Host, "DB_HOST")
	overrideString(&cfg.Database.Port, "DB_PORT")
	overrideString(&cfg.Database.Database, "DB_NAME")
	overrideString(&cfg.Database.User, "DB_USER")
	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.ApiServer.Port, "API_PORT")
	overrideString(&cfg.Redis.Addr, "REDIS_ADDR")
	overrideString(&cfg.Kafka.Addr, "KAFKA_ADDR")

	return cfg, nil
}

func overrideString(field *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*field = v
	}
}
