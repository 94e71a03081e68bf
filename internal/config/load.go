package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the runtime configuration read from config.toml and APPLOCK_* env vars.
type Config struct {
	DataDir     string          `mapstructure:"data_dir"`
	DBFile      string          `mapstructure:"db_file"`
	Ephemeral   bool            `mapstructure:"ephemeral"`
	LogLevel    string          `mapstructure:"log_level"`
	LogFile     string          `mapstructure:"log_file"`
	PinHashCost int             `mapstructure:"pin_hash_cost"`
	Theme       string          `mapstructure:"theme"`
	Biometric   BiometricConfig `mapstructure:"biometric"`
}

type BiometricConfig struct {
	Provider    string `mapstructure:"provider"`
	Reason      string `mapstructure:"reason"`
	CancelLabel string `mapstructure:"cancel_label"`
}

// DBPath returns the database location, resolving relative names against DataDir.
func (c *Config) DBPath() string {
	if filepath.IsAbs(c.DBFile) {
		return c.DBFile
	}
	return filepath.Join(c.DataDir, c.DBFile)
}

// LogPath returns the log file location, or "" when logging is disabled.
func (c *Config) LogPath() string {
	if c.LogFile == "" || filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, c.LogFile)
}

// Load reads config.toml from dir (if present) and overlays the environment.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", dir)
	v.SetDefault("db_file", DBFileName)
	v.SetDefault("ephemeral", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", LogFileName)
	v.SetDefault("pin_hash_cost", 10)
	v.SetDefault("theme", DefaultTheme)
	v.SetDefault("biometric.provider", ProviderAuto)
	v.SetDefault("biometric.reason", DefaultAuthReason)
	v.SetDefault("biometric.cancel_label", DefaultCancelLabel)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Biometric.Provider {
	case ProviderAuto, ProviderNone, ProviderFprintd:
	default:
		return fmt.Errorf("unknown biometric provider %q", c.Biometric.Provider)
	}
	if c.PinHashCost < 4 || c.PinHashCost > 31 {
		return fmt.Errorf("pin_hash_cost must be between 4 and 31, got %d", c.PinHashCost)
	}
	return nil
}
