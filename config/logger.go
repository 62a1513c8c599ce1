package config

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide structured logger. It is a no-op logger until
// InitLogger runs so packages can log from tests without setup.
var Log = zap.NewNop().Sugar()

// InitLogger builds the zap logger from APP_ENV and LOG_LEVEL.
func InitLogger() error {
	return InitLoggerTo("")
}

// InitLoggerTo is InitLogger with the output redirected to a file. An empty
// path keeps stderr.
func InitLoggerTo(path string) error {
	cfg := zap.NewProductionConfig()
	if os.Getenv("APP_ENV") != "production" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}

	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = logger.Sugar()
	return nil
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	_ = Log.Sync()
}
