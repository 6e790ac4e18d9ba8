package utils

import (
	"log"
	"sync"

	"lexmarket/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// InitializeLogger builds the process-wide logger. Production emits JSON at
// LOG_LEVEL; everything else gets the coloured console encoder at debug.
func InitializeLogger() {
	loggerOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		level := zapcore.DebugLevel
		if config.IsProduction() {
			cfg = zap.NewProductionConfig()
			level = parseLevel(config.AppConfig.LogLevel)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)

		built, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
		if err != nil {
			log.Fatalf("logger: %v", err)
		}
		logger = built
		zap.ReplaceGlobals(logger)
	})
}

func parseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// GetLogger returns the process-wide logger, building it on first use.
func GetLogger() *zap.Logger {
	InitializeLogger()
	return logger
}
