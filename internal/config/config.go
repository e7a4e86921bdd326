// Package config loads serviq settings from defaults, an optional config file,
// SERVIQ_* environment variables and bound command line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "SERVIQ"

const (
	BackendMemory   = "memory"
	BackendBadger   = "badger"
	BackendPostgres = "postgres"
)

type HTTP struct {
	Addr string `mapstructure:"addr"`
}

type Storage struct {
	Backend     string `mapstructure:"backend"`
	DataDir     string `mapstructure:"data_dir"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

type Export struct {
	Dir         string        `mapstructure:"dir"`
	SettleDelay time.Duration `mapstructure:"settle_delay"`
	// Format is png or pdf.
	Format string `mapstructure:"format"`
}

type AI struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type Log struct {
	Level string `mapstructure:"level"`
	// File redirects logs away from stderr; the tui command needs that.
	File string `mapstructure:"file"`
}

type Share struct {
	AppURL string `mapstructure:"app_url"`
}

type Config struct {
	HTTP    HTTP    `mapstructure:"http"`
	Storage Storage `mapstructure:"storage"`
	Export  Export  `mapstructure:"export"`
	AI      AI      `mapstructure:"ai"`
	Log     Log     `mapstructure:"log"`
	Share   Share   `mapstructure:"share"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":9091")
	v.SetDefault("storage.backend", BackendBadger)
	v.SetDefault("storage.data_dir", "./data")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("export.dir", "./exports")
	v.SetDefault("export.settle_delay", 500*time.Millisecond)
	v.SetDefault("export.format", "png")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("share.app_url", "http://localhost:9091")
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file when given, otherwise looks for serviq.{yaml,toml,json} in
// the working directory and $HOME/.serviq. A missing default file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("serviq")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.serviq")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendBadger:
		if c.Storage.DataDir == "" {
			return errors.New("storage.data_dir is required for the badger backend")
		}
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("storage.postgres_dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	switch c.Export.Format {
	case "png", "pdf":
	default:
		return fmt.Errorf("unknown export.format %q", c.Export.Format)
	}
	if c.Export.SettleDelay < 0 {
		return errors.New("export.settle_delay must not be negative")
	}
	return nil
}
