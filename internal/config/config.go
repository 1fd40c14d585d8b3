// Package config resolves run settings from flags, environment variables
// and an optional config file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"docxcrack/internal/wordlist"
)

const (
	ConfigFileKey    = "config"
	WorkersKey       = "workers"
	ProgressEveryKey = "progress-every"
	LogLevelKey      = "log-level"
	LogFileKey       = "log-file"

	EnvPrefix = "DOCXCRACK"
)

type Config struct {
	Workers       int
	ProgressEvery int
	LogLevel      zapcore.Level
	LogFile       string
}

// AddFlags registers the settings on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(ConfigFileKey, "", "Path to a config file (json, yaml or toml)")
	fs.Int(WorkersKey, 1, "Number of goroutines verifying candidates; 1 scans strictly in order")
	fs.Int(ProgressEveryKey, wordlist.DefaultProgressEvery, "Attempts between progress reports")
	fs.String(LogLevelKey, "info", "Log level (debug, info, warn, error)")
	fs.String(LogFileKey, "", "Also write JSON logs to this file, rotated")
}

// Load reads fs after parsing. Precedence is flag, then environment
// (DOCXCRACK_WORKERS, ...), then config file, then default.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}
	if path := v.GetString(ConfigFileKey); path != "" {
		v.SetConfigFile(os.ExpandEnv(path))
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	level, err := zapcore.ParseLevel(v.GetString(LogLevelKey))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", LogLevelKey, err)
	}
	c := Config{
		Workers:       v.GetInt(WorkersKey),
		ProgressEvery: v.GetInt(ProgressEveryKey),
		LogLevel:      level,
		LogFile:       os.ExpandEnv(v.GetString(LogFileKey)),
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", WorkersKey, c.Workers)
	}
	if c.ProgressEvery < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", ProgressEveryKey, c.ProgressEvery)
	}
	return nil
}

func (c Config) ScanOptions() wordlist.Options {
	return wordlist.Options{
		Workers:       c.Workers,
		ProgressEvery: c.ProgressEvery,
	}
}
