package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
	Log     LogConfig
	Login   LoginConfig
}

type AppConfig struct {
	Port         string
	Env          string
	SeedOnStart  bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DBConfig holds either a full DATABASE_URL or the discrete PostgreSQL fields.
type DBConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	LogLevel string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret string
	Store  string
	TTL    time.Duration
	Secure bool
}

type LogConfig struct {
	Level string
	File  string
}

type LoginConfig struct {
	RatePerMinute int
	Burst         int
}

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	DefaultSecretKey = "dev-secret-key"
)

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// The .env file is optional; plain environment variables are enough.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_READ_TIMEOUT", "15s")
	v.SetDefault("APP_WRITE_TIMEOUT", "15s")
	v.SetDefault("SEED_ON_START", false)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("SECRET_KEY", DefaultSecretKey)
	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_SECURE_COOKIE", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 30)
	v.SetDefault("LOGIN_BURST", 10)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Port:         v.GetString("APP_PORT"),
			Env:          v.GetString("APP_ENV"),
			SeedOnStart:  v.GetBool("SEED_ON_START"),
			ReadTimeout:  durationOr(v.GetString("APP_READ_TIMEOUT"), 15*time.Second),
			WriteTimeout: durationOr(v.GetString("APP_WRITE_TIMEOUT"), 15*time.Second),
		},
		DB: DBConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			LogLevel: v.GetString("DB_LOG_LEVEL"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Secret: v.GetString("SECRET_KEY"),
			Store:  strings.ToLower(v.GetString("SESSION_STORE")),
			TTL:    durationOr(v.GetString("SESSION_TTL"), 24*time.Hour),
			Secure: v.GetBool("SESSION_SECURE_COOKIE"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
			File:  v.GetString("LOG_FILE"),
		},
		Login: LoginConfig{
			RatePerMinute: v.GetInt("LOGIN_RATE_PER_MINUTE"),
			Burst:         v.GetInt("LOGIN_BURST"),
		},
	}
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}
