package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func resetLogger(t *testing.T) {
	t.Helper()
	log = nil
	once = sync.Once{}
	t.Cleanup(func() {
		log = nil
		once = sync.Once{}
	})
}

func TestInitAndContextLogging(t *testing.T) {
	resetLogger(t)
	Init("development")
	require.NotNil(t, GetLogger())

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, InteractionIDKey, "int-1")
	require.NotNil(t, WithContext(ctx))

	Info(ctx, "info")
	Debug(ctx, "debug")
	Warn(ctx, "warn")
	Error(ctx, "error")
	LogRequest(ctx, "GET", "/health", 200, 10*time.Millisecond, "127.0.0.1")
}

func TestGetLogger_NopBeforeInit(t *testing.T) {
	resetLogger(t)
	require.NotNil(t, GetLogger())
	require.NotNil(t, WithContext(nil))
	Sync()
}

func TestInit_ProductionWithFileSink(t *testing.T) {
	resetLogger(t)
	path := filepath.Join(t.TempDir(), "studio.log")

	InitWithFile("production", FileConfig{Path: path, MaxBackups: 1, MaxAgeDays: 1})
	Info(context.Background(), "written to file", zap.String("k", "v"))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "written to file")
}

func TestNewRotatingWriter_DefaultSize(t *testing.T) {
	w := newRotatingWriter(FileConfig{Path: "x.log"})
	require.Equal(t, 50, w.MaxSize)
	require.Equal(t, "x.log", w.Filename)
}

func TestInit_PanicWhenLoggerBuildFails(t *testing.T) {
	resetLogger(t)
	origBuild := buildLogger
	t.Cleanup(func() { buildLogger = origBuild })

	buildLogger = func(zap.Config) (*zap.Logger, error) {
		return nil, errors.New("build failed")
	}

	require.Panics(t, func() { Init("production") })
}
