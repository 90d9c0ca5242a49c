package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *slog.Logger // Один глобальный slog логгер поверх zap
	zapLogger    *zap.Logger
)

// ParseLevel maps a config level string to slog and zap levels. Unknown values mean INFO.
func ParseLevel(levelStr string) (slog.Level, zapcore.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug, zapcore.DebugLevel, true
	case "INFO":
		return slog.LevelInfo, zapcore.InfoLevel, true
	case "WARN", "WARNING":
		return slog.LevelWarn, zapcore.WarnLevel, true
	case "ERROR":
		return slog.LevelError, zapcore.ErrorLevel, true
	default:
		return slog.LevelInfo, zapcore.InfoLevel, false
	}
}

// InitSlog builds a production zap logger at the given level and installs a slog
// handler on top of it as the global slog logger.
func InitSlog(levelStr string) {
	slogLevel, zapLevel, ok := ParseLevel(levelStr)

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapLevel)
	zl, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	install(zl, slogLevel)

	if !ok && levelStr != "" {
		globalLogger.Warn("Invalid log level string, defaulting to INFO", "input", levelStr)
	}
}

// Use installs an existing zap logger, e.g. zap.NewNop() in tests.
func Use(zl *zap.Logger, levelStr string) {
	slogLevel, _, _ := ParseLevel(levelStr)
	install(zl, slogLevel)
}

func install(zl *zap.Logger, level slog.Level) {
	zapLogger = zl
	handler := slogzap.Option{
		Level:  level,
		Logger: zl,
	}.NewZapHandler()
	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// ensureInitialized проверяет, инициализирован ли логгер.
func ensureInitialized() {
	if globalLogger == nil {
		InitSlog("INFO")
	}
}

// Zap returns the zap logger behind the global slog logger, for components that log through zap directly.
func Zap() *zap.Logger {
	ensureInitialized()
	return zapLogger
}

// Sync flushes buffered zap output.
func Sync() {
	if zapLogger != nil {
		_ = zapLogger.Sync()
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	ensureInitialized()
	if globalLogger.Enabled(context.Background(), slog.LevelDebug) {
		globalLogger.Debug(msg, args...)
	}
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	ensureInitialized()
	if globalLogger.Enabled(context.Background(), slog.LevelInfo) {
		globalLogger.Info(msg, args...)
	}
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	ensureInitialized()
	if globalLogger.Enabled(context.Background(), slog.LevelWarn) {
		globalLogger.Warn(msg, args...)
	}
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	ensureInitialized()
	if globalLogger.Enabled(context.Background(), slog.LevelError) {
		globalLogger.Error(msg, args...)
	}
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	ensureInitialized()
	// Логируем всегда перед выходом, независимо от Enabled
	globalLogger.Error(msg, args...)
	Sync()
	os.Exit(1)
}
