// Package logs hands out named zap loggers for the e2ee packages.
//
// Library code logs through loggers obtained from NewNamed. They discard
// everything until an application installs a real logger with SetDefault.
package logs

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	mu           sync.Mutex
	logger       = zap.NewNop()
	namedLoggers = make(map[string]*zap.Logger)
)

// SetDefault replaces the default logger. Named loggers already handed out
// are switched over as well; call it once at startup, before logging starts.
func SetDefault(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
	for name, nl := range namedLoggers {
		*nl = *l.Named(name)
	}
}

func Default() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// NewNamed returns the logger for name, creating it on first use.
func NewNamed(name string) *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if l, ok := namedLoggers[name]; ok {
		return l
	}
	l := logger.Named(name)
	namedLoggers[name] = l
	return l
}

// Format selects the zap encoder.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Build creates a logger writing to stderr at the given level
// ("debug", "info", "warn", "error").
func Build(level string, format Format) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	switch format {
	case FormatJSON:
		cfg = zap.NewProductionConfig()
	case FormatConsole, "":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("logs: unknown format %q", format)
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
