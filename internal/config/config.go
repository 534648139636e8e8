// Package config loads the engine's runtime configuration, following
// go-mysql-server's plain-struct-plus-loader idiom rather than
// package-level globals.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// Config is the top-level configuration for a miniob server process.
type Config struct {
	// DataDir names a data directory. It is loaded but not read anywhere:
	// the catalog is in memory and persists nothing.
	DataDir string `toml:"data_dir"`
	// MaxConnections is a session limit. It is loaded but not read
	// anywhere; no limit on sessions is enforced.
	MaxConnections int `toml:"max_connections"`
	// TrxLockWaitMillis is a lock-wait time in milliseconds. It is loaded
	// but not read anywhere; transactions do not wait on row latches.
	TrxLockWaitMillis int `toml:"trx_lock_wait_millis"`
	// LogLevel controls the verbosity of the shared logrus logger.
	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DataDir:           "./data",
		MaxConnections:    64,
		TrxLockWaitMillis: 5000,
		LogLevel:          "info",
	}
}

// Load reads path as TOML, overlaying it onto Default(). A missing file is
// not an error; it simply yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NewLogger builds the shared logger used by the miniob engine, honoring
// cfg.LogLevel.
func NewLogger(cfg Config) *logrus.Logger {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
