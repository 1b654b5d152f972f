package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFieldsToMap(t *testing.T) {
	m := fieldsToMap([]zapcore.Field{
		zap.String("content_id", "ep-1"),
		zap.Int("items", 3),
		zap.Float64("amount", 12.5),
		zap.Bool("cached", true),
		zap.Duration("took", 1500*time.Millisecond),
	})

	assert.Equal(t, "ep-1", m["content_id"])
	assert.EqualValues(t, 3, m["items"])
	assert.Equal(t, 12.5, m["amount"])
	assert.Equal(t, true, m["cached"])
	assert.Equal(t, "1.5s", m["took"])
}

func TestZapLevelToSentry(t *testing.T) {
	assert.Equal(t, sentry.LevelWarning, zapLevelToSentry(zapcore.WarnLevel))
	assert.Equal(t, sentry.LevelError, zapLevelToSentry(zapcore.ErrorLevel))
	assert.Equal(t, sentry.LevelFatal, zapLevelToSentry(zapcore.PanicLevel))
}

func TestSentryCore_CheckOnlyErrors(t *testing.T) {
	core := newSentryCore(zapcore.DebugLevel)

	info := core.Check(zapcore.Entry{Level: zapcore.InfoLevel}, nil)
	assert.Nil(t, info)

	errEntry := core.Check(zapcore.Entry{Level: zapcore.ErrorLevel}, nil)
	assert.NotNil(t, errEntry)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "debug", Format: "json", Output: path}, SentryConfig{})
	require.NoError(t, err)

	log.With(zap.String("request_id", "r-1")).Info("resolved content", zap.String("content_id", "ep-1"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.True(t, strings.Contains(line, `"message":"resolved content"`))
	assert.True(t, strings.Contains(line, `"request_id":"r-1"`))
}
