package internal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "ROWSTORE"

type RowStoreConfig struct {
	AppName string `mapstructure:"app_name"`

	Storage struct {
		// Path of the table file; empty means an ephemeral file per session.
		Path    string `mapstructure:"path"`
		TempDir string `mapstructure:"temp_dir"`
	} `mapstructure:"storage"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"` // text | json
	} `mapstructure:"log"`

	REPL struct {
		Prompt      string `mapstructure:"prompt"`
		HistoryFile string `mapstructure:"history_file"`
	} `mapstructure:"repl"`

	level slog.Level
}

// Level is Log.Level parsed by LoadConfig.
func (c *RowStoreConfig) Level() slog.Level { return c.level }

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "rowstore")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.temp_dir", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("repl.prompt", "db> ")
	v.SetDefault("repl.history_file", "")
}

// LoadConfig reads defaults, then the YAML file at path (if any), then ROWSTORE_* env overrides.
func LoadConfig(path string) (*RowStoreConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg RowStoreConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format: %s", cfg.Log.Format)
	}
	lvl, err := ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	cfg.level = lvl

	return &cfg, nil
}
