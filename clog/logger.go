//Package clog holds the logging setup shared by the goCryst packages.
package clog

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a wrapper around zap.SugaredLogger
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger creates a new Logger instance writing to stderr. development
// selects the human-readable encoder, debug lowers the level to Debug.
func NewLogger(development, debug bool) (*Logger, error) {
	var config zap.Config
	if development {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	if debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{zapLogger.Sugar()}, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.SugaredLogger.Sync()
}

var (
	defaultMu sync.RWMutex
	defaultL  *Logger
)

// Default returns the process-wide logger, building a production one on
// first use if SetDefault was never called.
func Default() *Logger {
	defaultMu.RLock()
	l := defaultL
	defaultMu.RUnlock()
	if l != nil {
		return l
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultL == nil {
		l, err := NewLogger(false, false)
		if err != nil {
			l = NewNop()
		}
		defaultL = l
	}
	return defaultL
}

// SetDefault replaces the process-wide logger used by the library packages.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defaultL = l
	defaultMu.Unlock()
}
