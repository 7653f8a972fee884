package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "XCHANGER"

type Config struct {
	Log      LogConfig
	Scrape   ScrapeConfig
	Extract  ExtractConfig
	Cache    CacheConfig
	Server   ServerConfig
	Defaults DefaultsConfig
}

type LogConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"text"`
}

type ScrapeConfig struct {
	BaseURL   string        `envconfig:"BASE_URL" default:"https://www.xe.com"`
	IPEchoURL string        `envconfig:"IP_ECHO_URL" default:"https://api.ipify.org?format=json"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"30s"`
	UserAgent string        `envconfig:"USER_AGENT" default:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"`
}

// ExtractConfig locates the element holding the rendered rate.
type ExtractConfig struct {
	Tag   string `envconfig:"TAG" default:"p"`
	Class string `envconfig:"CLASS" default:"result__BigRate-sc-1bsijpp-1 iGrAod"`
}

type CacheConfig struct {
	Backend       string        `envconfig:"BACKEND" default:"sqlite"`
	Path          string        `envconfig:"PATH"`
	TTL           time.Duration `envconfig:"TTL" default:"3600s"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	RedisPrefix   string        `envconfig:"REDIS_PREFIX" default:"xchanger:"`
}

type ServerConfig struct {
	Port         int           `envconfig:"PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"15m"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"120s"`
}

type DefaultsConfig struct {
	Amount float64 `envconfig:"AMOUNT" default:"1"`
	From   string  `envconfig:"FROM" default:"USD"`
	To     string  `envconfig:"TO" default:"PKR"`
	Proxy  string  `envconfig:"PROXY"`
}

// LoadConfig reads XCHANGER_* variables, after loading the given .env files
// (or ./.env when none are given) if they exist.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	config := &Config{}
	if err := envconfig.Process(envPrefix, config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if config.Cache.Path == "" {
		config.Cache.Path = DefaultCachePath()
	}

	return config, nil
}

// DefaultCachePath places the cache file next to the running executable,
// falling back to the working directory.
func DefaultCachePath() string {
	const name = "url_cache.db"

	exe, err := os.Executable()
	if err != nil {
		return name
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), name)
}
