package logging

import (
	"context"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		warnOn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(&Config{Level: tt.level, Format: "text", Output: "discard"})
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.debugOn, logger.Enabled(ctx, -4))
			assert.Equal(t, tt.warnOn, logger.Enabled(ctx, 4))
		})
	}
}

func TestLogger_WithContextAddsRequestID(t *testing.T) {
	logger := NewLogger(&Config{Output: "discard"})

	assert.Same(t, logger, logger.WithContext(context.Background()))

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	assert.NotSame(t, logger, logger.WithContext(ctx))
}

func TestDefault_IsLazilyCreated(t *testing.T) {
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })

	defaultLogger = nil
	assert.NotNil(t, Default())

	custom := NewLogger(&Config{Output: "discard"}).WithComponent("test")
	SetDefault(custom)
	assert.Same(t, custom, Default())
}
