package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Redis    RedisConfig
	Matching MatchingConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
}

// StoreConfig describes the two document store projects: one holding
// users, one holding the skill directory.
type StoreConfig struct {
	Driver          string
	UsersDSN        string
	SkillsDSN       string
	PoolMaxConns    int32
	ConnectTimeout  time.Duration
	RequestTimeout  time.Duration
	MigrationsOnRun bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type MatchingConfig struct {
	Policy         string
	SearchDebounce time.Duration
	NameCacheMax   int
	NameCacheTTL   time.Duration
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		if ms, err := strconv.Atoi(raw); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optBool := func(key string) bool {
		v, err := strconv.ParseBool(opt(key))
		return err == nil && v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogLevel:    optDefault("LOG_LEVEL", "info"),
	}

	cfg.Store = StoreConfig{
		Driver:          strings.ToLower(optDefault("STORE_DRIVER", StoreDriverMemory)),
		UsersDSN:        opt("USERS_DB_DSN"),
		SkillsDSN:       opt("SKILLS_DB_DSN"),
		PoolMaxConns:    int32(optInt("DB_POOL_MAX_CONNS", 0)),
		ConnectTimeout:  optDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
		RequestTimeout:  optDuration("STORE_TIMEOUT", 0),
		MigrationsOnRun: optBool("DB_MIGRATE_ON_START"),
	}

	switch cfg.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if cfg.Store.UsersDSN == "" {
			missing = append(missing, "USERS_DB_DSN")
		}
		if cfg.Store.SkillsDSN == "" {
			missing = append(missing, "SKILLS_DB_DSN")
		}
	default:
		invalid = append(invalid, "STORE_DRIVER")
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      time.Duration(optInt("REDIS_TTL", 600)) * time.Second,
	}

	cfg.Matching = MatchingConfig{
		Policy:         optDefault("MATCH_POLICY", "union_then_filter"),
		SearchDebounce: optDuration("SEARCH_DEBOUNCE_MS", time.Second),
		NameCacheMax:   optInt("NAME_CACHE_MAX", 0),
		NameCacheTTL:   optDuration("NAME_CACHE_TTL", 0),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// RedisEnabled reports whether a Redis host was configured.
func (c Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Host) != ""
}
