package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	TableName   string
	TopicArn    string
	IndexName   string
	AuthPoolURL string
	Endpoint    string
	Omdb        OmdbConfig
	Cache       CacheConfig
	Log         LogConfig
	Local       LocalConfig
}

type OmdbConfig struct {
	ApiKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries uint
}

type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
	Size      int
}

type LogConfig struct {
	Level string
	File  string
}

// LocalConfig holds settings only read by the local server and CLI.
type LocalConfig struct {
	ListenAddr string
	Username   string
	Email      string
}

var defaults = map[string]interface{}{
	"TABLE_NAME":       "MovieData",
	"INDEX_NAME_1":     "GS1",
	"OMDB_BASE_URL":    "https://www.omdbapi.com/",
	"OMDB_TIMEOUT":     "10s",
	"OMDB_MAX_RETRIES": 3,
	"CACHE_TTL":        "1h",
	"CACHE_SIZE":       512,
	"LOG_LEVEL":        "info",
	"LISTEN_ADDR":      ":8080",
	"LOCAL_USERNAME":   "local",
	"LOCAL_EMAIL":      "local@example.com",
}

var keys = []string{
	"TOPIC_ARN",
	"AUTH_POOL_URL",
	"AWS_ENDPOINT",
	"OMDB_API_KEY",
	"REDIS_ADDR",
	"LOG_FILE",
	"CONFIG_FILE",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
	return v
}

// Load reads configuration from the process environment, layered over
// the file named by CONFIG_FILE when one is set.
func Load() (AppConfig, error) {
	v := newViper()
	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}
	cfg := FromViper(v)
	if cfg.TableName == "" {
		return cfg, fmt.Errorf("TABLE_NAME must not be empty")
	}
	return cfg, nil
}

func FromViper(v *viper.Viper) AppConfig {
	return AppConfig{
		TableName:   v.GetString("TABLE_NAME"),
		TopicArn:    v.GetString("TOPIC_ARN"),
		IndexName:   v.GetString("INDEX_NAME_1"),
		AuthPoolURL: strings.TrimSuffix(v.GetString("AUTH_POOL_URL"), "/"),
		Endpoint:    v.GetString("AWS_ENDPOINT"),
		Omdb: OmdbConfig{
			ApiKey:     v.GetString("OMDB_API_KEY"),
			BaseURL:    v.GetString("OMDB_BASE_URL"),
			Timeout:    v.GetDuration("OMDB_TIMEOUT"),
			MaxRetries: v.GetUint("OMDB_MAX_RETRIES"),
		},
		Cache: CacheConfig{
			RedisAddr: v.GetString("REDIS_ADDR"),
			TTL:       v.GetDuration("CACHE_TTL"),
			Size:      v.GetInt("CACHE_SIZE"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
			File:  v.GetString("LOG_FILE"),
		},
		Local: LocalConfig{
			ListenAddr: v.GetString("LISTEN_ADDR"),
			Username:   v.GetString("LOCAL_USERNAME"),
			Email:      v.GetString("LOCAL_EMAIL"),
		},
	}
}
