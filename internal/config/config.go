package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	StoreHTTP   = "http"
	StoreMemory = "memory"
)

type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Widget  WidgetConfig  `mapstructure:"widget"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type StoreConfig struct {
	Type    string        `mapstructure:"type" validate:"oneof=http memory"`
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type WidgetConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gt=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

type MetricsConfig struct {
	Listen string `mapstructure:"listen" validate:"omitempty,hostname_port"`
}

// flagKeys - соответствие флагов командной строки ключам конфига
var flagKeys = map[string]string{
	"store":          "store.type",
	"base-url":       "store.base_url",
	"timeout":        "store.timeout",
	"poll-interval":  "widget.poll_interval",
	"log-level":      "log.level",
	"log-file":       "log.file",
	"metrics-listen": "metrics.listen",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.type", StoreHTTP)
	v.SetDefault("store.base_url", "http://localhost:8080")
	v.SetDefault("store.timeout", 10*time.Second)
	v.SetDefault("widget.poll_interval", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("metrics.listen", "")
}

// Load читает config.yaml (или path), затем переменные окружения COMMENTS_*,
// затем явно заданные флаги
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("COMMENTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
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

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Store.Type == StoreHTTP && c.Store.BaseURL == "" {
		return errors.New("invalid config: store.base_url is required for the http store")
	}
	return nil
}
