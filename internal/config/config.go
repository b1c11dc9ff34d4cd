package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/SteveYuOWO/token-tide/internal/dexscreener"
)

const (
	appDir       = "token-tide"
	storeFile    = "config.toml"
	settingsName = "settings"
	envPrefix    = "TOKENTIDE"
)

// Config holds configuration values loaded from flags, env, or a settings file.
type Config struct {
	APIURL    string
	StorePath string
	StoreDSN  string
	LogLevel  string
}

// UsePostgres reports whether pairs should be cached in Postgres instead of
// the local file.
func (c Config) UsePostgres() bool {
	return c.StoreDSN != ""
}

// Load merges a .env file, the settings file, environment variables, and
// flags into Config. Later sources win.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api-url", dexscreener.DefaultBaseURL)
	v.SetDefault("store", DefaultStorePath())
	v.SetDefault("store-dsn", "")
	v.SetDefault("log-level", "warn")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName(settingsName)
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		APIURL:    strings.TrimSpace(v.GetString("api-url")),
		StorePath: expandHome(strings.TrimSpace(v.GetString("store"))),
		StoreDSN:  strings.TrimSpace(v.GetString("store-dsn")),
		LogLevel:  strings.TrimSpace(v.GetString("log-level")),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = dexscreener.DefaultBaseURL
	}
	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStorePath()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	return cfg, nil
}

// DefaultStorePath is ~/.config/token-tide/config.toml, or config.toml in the
// working directory when the home directory is unknown.
func DefaultStorePath() string {
	dir, err := configDir()
	if err != nil {
		return storeFile
	}
	return filepath.Join(dir, storeFile)
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appDir), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// loadDotEnv exports variables from path without overriding ones already set.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
