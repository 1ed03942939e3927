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

// Corpus source kinds.
const (
	CorpusSourceBuiltin = "builtin"
	CorpusSourceFile    = "file"
	CorpusSourceS3      = "s3"
)

var validModes = map[string]struct{}{
	"exact":         {},
	"similarity":    {},
	"semantic_hash": {},
	"keyword":       {},
	"hybrid":        {},
}

// Config aggregates runtime configuration used across the bot.
type Config struct {
	HTTP HTTPConfig `yaml:"http"`
	Log  LogConfig  `yaml:"log"`
	Chat ChatConfig `yaml:"chat"`
	FAQ  FAQConfig  `yaml:"faq"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	AllowedOrigins  []string        `yaml:"allowedOrigins"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
	Retry           RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for POST requests that fail with a 5xx.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// LogConfig selects the log level and output encoding.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ChatConfig overrides the phrases of the interactive loop. Empty values keep the defaults.
type ChatConfig struct {
	QuitWords     []string `yaml:"quitWords"`
	Greetings     []string `yaml:"greetings"`
	Farewells     []string `yaml:"farewells"`
	GreetingReply string   `yaml:"greetingReply"`
	FarewellReply string   `yaml:"farewellReply"`
	FallbackReply string   `yaml:"fallbackReply"`
}

// FAQConfig controls matching and storage of the FAQ corpus.
type FAQConfig struct {
	Mode                string         `yaml:"mode"`
	SimilarityThreshold float64        `yaml:"similarityThreshold"`
	TopRecommendations  int            `yaml:"topRecommendations"`
	Corpus              CorpusConfig   `yaml:"corpus"`
	Redis               RedisConfig    `yaml:"redis"`
	Postgres            PostgresConfig `yaml:"postgres"`
}

// CorpusConfig selects where the question/answer pairs come from.
type CorpusConfig struct {
	Source        string              `yaml:"source"`
	Path          string              `yaml:"path"`
	Watch         bool                `yaml:"watch"`
	ObjectStorage ObjectStorageConfig `yaml:"objectStorage"`
}

// ObjectStorageConfig points at a corpus document in an S3-compatible bucket.
type ObjectStorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Key       string `yaml:"key"`
	UseSSL    bool   `yaml:"useSSL"`
}

// RedisConfig contains connection information for trending counters.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file, a .env file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(os.Getenv("ENV_FILE")); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadDotEnv fills unset variables from path, or from ./.env when path is empty.
// Variables already present in the environment win.
func loadDotEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("FAQ_MODE"); v != "" {
		cfg.FAQ.Mode = v
	}
	if v := os.Getenv("FAQ_SIMILARITY_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FAQ.SimilarityThreshold = parsed
		}
	}
	if v := os.Getenv("FAQ_RECOMMENDATIONS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.TopRecommendations = parsed
		}
	}
	if v := os.Getenv("FAQ_CORPUS_SOURCE"); v != "" {
		cfg.FAQ.Corpus.Source = v
	}
	if v := os.Getenv("FAQ_CORPUS_PATH"); v != "" {
		cfg.FAQ.Corpus.Path = v
	}
	if v := os.Getenv("FAQ_CORPUS_WATCH"); v != "" {
		cfg.FAQ.Corpus.Watch = parseBool(v)
	}
	if v := os.Getenv("FAQ_S3_ENDPOINT"); v != "" {
		cfg.FAQ.Corpus.ObjectStorage.Endpoint = v
	}
	if v := os.Getenv("FAQ_S3_ACCESS_KEY"); v != "" {
		cfg.FAQ.Corpus.ObjectStorage.AccessKey = v
	}
	if v := os.Getenv("FAQ_S3_SECRET_KEY"); v != "" {
		cfg.FAQ.Corpus.ObjectStorage.SecretKey = v
	}
	if v := os.Getenv("FAQ_S3_BUCKET"); v != "" {
		cfg.FAQ.Corpus.ObjectStorage.Bucket = v
	}
	if v := os.Getenv("FAQ_S3_REGION"); v != "" {
		cfg.FAQ.Corpus.ObjectStorage.Region = v
	}
	if v := os.Getenv("FAQ_S3_KEY"); v != "" {
		cfg.FAQ.Corpus.ObjectStorage.Key = v
	}
	if v := os.Getenv("FAQ_S3_USE_SSL"); v != "" {
		cfg.FAQ.Corpus.ObjectStorage.UseSSL = parseBool(v)
	}
	if v := os.Getenv("FAQ_REDIS_ENABLED"); v != "" {
		cfg.FAQ.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("FAQ_REDIS_ADDR"); v != "" {
		cfg.FAQ.Redis.Addr = v
	}
	if v := os.Getenv("FAQ_REDIS_PREFIX"); v != "" {
		cfg.FAQ.Redis.Prefix = v
	}
	if v := os.Getenv("FAQ_POSTGRES_DSN"); v != "" {
		cfg.FAQ.Postgres.DSN = v
	}
	if v := os.Getenv("FAQ_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("FAQ_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Postgres.MinConns = int32(parsed)
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/chat",
				},
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		FAQ: FAQConfig{
			Mode:               "similarity",
			TopRecommendations: 5,
			Corpus: CorpusConfig{
				Source: CorpusSourceBuiltin,
				ObjectStorage: ObjectStorageConfig{
					Region: "auto",
					Key:    "faq.yaml",
					UseSSL: true,
				},
			},
			Redis: RedisConfig{
				Prefix: "faqbot",
			},
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("log.format %q must be json or text", c.Log.Format)
	}
	if _, ok := validModes[c.FAQ.Mode]; !ok {
		return fmt.Errorf("faq.mode %q is not a known search mode", c.FAQ.Mode)
	}
	if c.FAQ.SimilarityThreshold < 0 || c.FAQ.SimilarityThreshold > 1 {
		return errors.New("faq.similarityThreshold must be between 0 and 1")
	}
	if c.FAQ.TopRecommendations < 0 {
		return errors.New("faq.topRecommendations cannot be negative")
	}
	switch c.FAQ.Corpus.Source {
	case CorpusSourceBuiltin:
	case CorpusSourceFile:
		if strings.TrimSpace(c.FAQ.Corpus.Path) == "" {
			return errors.New("faq.corpus.path cannot be empty when source is file")
		}
	case CorpusSourceS3:
		store := c.FAQ.Corpus.ObjectStorage
		if store.Endpoint == "" || store.Bucket == "" || store.Key == "" {
			return errors.New("faq.corpus.objectStorage endpoint, bucket and key are required when source is s3")
		}
	default:
		return fmt.Errorf("faq.corpus.source %q must be builtin, file or s3", c.FAQ.Corpus.Source)
	}
	if c.FAQ.Corpus.Watch && c.FAQ.Corpus.Source != CorpusSourceFile {
		return errors.New("faq.corpus.watch requires a file source")
	}
	if c.FAQ.Redis.Enabled && strings.TrimSpace(c.FAQ.Redis.Addr) == "" {
		return errors.New("faq.redis.addr cannot be empty when redis is enabled")
	}
	if c.FAQ.Postgres.MaxConns < 0 || c.FAQ.Postgres.MinConns < 0 {
		return errors.New("faq.postgres connection limits cannot be negative")
	}
	return nil
}
