package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		wantLevel   zapcore.Level
		wantErr     bool
	}{
		{name: "production defaults to info", environment: "production", wantLevel: zapcore.InfoLevel},
		{name: "development defaults to debug", environment: "development", wantLevel: zapcore.DebugLevel},
		{name: "explicit level wins", environment: "production", level: "warn", wantLevel: zapcore.WarnLevel},
		{name: "bad level", environment: "development", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.environment, tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}
