// Package logging builds the zap logger used by the command line tools.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level zapcore.Level
	// File, when set, receives JSON logs through a rotating writer.
	File string
	Name string
}

// New returns a logger writing human readable lines to display and, if
// configured, JSON lines to a rotated file. The returned func flushes and
// closes the file.
func New(cfg Config, display io.Writer) (*zap.Logger, func()) {
	level := zap.NewAtomicLevelAt(cfg.Level)

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.TimeKey = ""
	consoleCfg.CallerKey = ""
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(display), level),
	}

	var file *lumberjack.Logger
	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    8, // MB
			MaxBackups: 7,
			MaxAge:     30,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(file),
			level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	if cfg.Name != "" {
		logger = logger.Named(cfg.Name)
	}
	stop := func() {
		_ = logger.Sync()
		if file != nil {
			_ = file.Close()
		}
	}
	return logger, stop
}
