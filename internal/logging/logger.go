package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production writes JSON to stdout; every other
// environment gets the colored development console encoder.
func New(environment, level string) (*zap.Logger, error) {
	return NewWithOutput(environment, level, "stdout")
}

// NewWithOutput is New with a custom output path, used by CLI commands that
// print their result on stdout.
func NewWithOutput(environment, level, output string) (*zap.Logger, error) {
	var zapConfig zap.Config
	if strings.EqualFold(environment, "production") {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapConfig.OutputPaths = []string{output}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
