package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger that writes to stderr. Development mode switches to
// the console encoder; level is one of debug, info, warn, error.
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

// NewDiagnostics builds a logger fixed at info level for output that must
// appear whatever level the main logger is configured with.
func NewDiagnostics(development bool) (*zap.Logger, error) {
	return New("info", development)
}
