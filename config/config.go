package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	GRPC       GRPCConfig       `yaml:"grpc"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Auth       AuthConfig       `yaml:"auth"`
	Booking    BookingConfig    `yaml:"booking"`
	Pagination PaginationConfig `yaml:"pagination"`
	Media      MediaConfig      `yaml:"media"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Log        LogConfig        `yaml:"log"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
	Swagger bool   `yaml:"swagger"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	Migrate  bool   `yaml:"migrate"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers     []string `yaml:"brokers"`
	OrdersTopic string   `yaml:"orders_topic"`
	GroupID     string   `yaml:"group_id"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer"`
	TokenTTL  int    `yaml:"token_ttl_minutes"`
}

type BookingConfig struct {
	SeatGuardTTL    int `yaml:"seat_guard_ttl_seconds"`
	FlightsCacheTTL int `yaml:"flights_cache_ttl_seconds"`
}

type PaginationConfig struct {
	PageSize    int `yaml:"page_size"`
	MaxPageSize int `yaml:"max_page_size"`
}

type MediaConfig struct {
	Dir          string   `yaml:"dir"`
	URLPrefix    string   `yaml:"url_prefix"`
	MaxSizeBytes int64    `yaml:"max_size_bytes"`
	AllowedTypes []string `yaml:"allowed_types"`
}

type RateLimitConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Requests int    `yaml:"requests"`
	Window   int    `yaml:"window_seconds"`
	Prefix   string `yaml:"prefix"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (b BookingConfig) GuardTTL() time.Duration {
	return time.Duration(b.SeatGuardTTL) * time.Second
}

func (b BookingConfig) CacheTTL() time.Duration {
	return time.Duration(b.FlightsCacheTTL) * time.Second
}

func (r RateLimitConfig) WindowDuration() time.Duration {
	return time.Duration(r.Window) * time.Second
}

func (a AuthConfig) TokenDuration() time.Duration {
	return time.Duration(a.TokenTTL) * time.Minute
}

func LoadConfig(path string) (*Config, error) {
	// .env is optional; values already present in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

// Validate fills defaults and rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 60
	}
	if c.Pagination.PageSize <= 0 {
		c.Pagination.PageSize = 10
	}
	if c.Pagination.MaxPageSize <= 0 {
		c.Pagination.MaxPageSize = 100
	}
	if c.Pagination.PageSize > c.Pagination.MaxPageSize {
		c.Pagination.PageSize = c.Pagination.MaxPageSize
	}
	if c.Booking.SeatGuardTTL <= 0 {
		c.Booking.SeatGuardTTL = 30
	}
	if c.Media.Dir == "" {
		c.Media.Dir = "./media"
	}
	if c.Media.URLPrefix == "" {
		c.Media.URLPrefix = "/media"
	}
	if c.Media.MaxSizeBytes <= 0 {
		c.Media.MaxSizeBytes = 5 * 1024 * 1024
	}
	if len(c.Media.AllowedTypes) == 0 {
		c.Media.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	}
	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = 120
	}
	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = 60
	}
	if c.RateLimit.Prefix == "" {
		c.RateLimit.Prefix = "rl"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	return nil
}
