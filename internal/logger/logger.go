package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log *zap.Logger
	mu  sync.RWMutex
)

// New builds a zap logger for the given APP_ENV value.
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config

	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return cfg.Build(zap.AddCaller())
}

// Init replaces the global logger.
func Init(env string) error {
	l, err := New(env)
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set swaps the global logger and returns the previous one.
func Set(l *zap.Logger) *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	prev := log
	log = l
	return prev
}

// L returns the global logger, building one from APP_ENV on first use.
func L() *zap.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		return l
	}

	if err := Init(os.Getenv("APP_ENV")); err != nil {
		Set(zap.NewNop())
	}
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if log != nil {
		_ = log.Sync()
	}
}
