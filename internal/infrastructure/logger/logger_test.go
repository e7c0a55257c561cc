package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	t.Run("creates console logger", func(t *testing.T) {
		log, err := New(DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("creates json logger", func(t *testing.T) {
		log, err := New(ProductionConfig())
		require.NoError(t, err)
		assert.NotNil(t, log)
	})
}

func TestNewForEnvironment(t *testing.T) {
	log, err := NewForEnvironment("production")
	require.NoError(t, err)
	assert.NotNil(t, log)

	log, err = NewForEnvironment("development")
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("ERROR"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("bogus"))
}
