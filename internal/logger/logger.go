package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var log *slog.Logger

// Init инициализирует глобальный логгер.
// env "development" даёт текстовый вывод и уровень debug, иначе JSON.
// level переопределяет уровень, если задан ("debug", "info", "warn", "error").
func Init(env, level string) {
	InitWithWriter(os.Stdout, env, level)
}

// InitWithWriter делает то же, что Init, но с произвольным writer (используется в тестах и CLI)
func InitWithWriter(w io.Writer, env, level string) {
	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: env != "test",
	}

	var handler slog.Handler
	if env == "development" {
		opts.Level = slog.LevelDebug
		if level != "" {
			opts.Level = parseLevel(level)
		}
		handler = slog.NewTextHandler(w, opts)
	} else {
		if level != "" {
			opts.Level = parseLevel(level)
		}
		handler = slog.NewJSONHandler(w, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetLogger возвращает глобальный логгер
func GetLogger() *slog.Logger {
	if log == nil {
		// Fallback если Init не вызван
		Init("development", "")
	}
	return log
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal логирует ошибку и завершает программу с кодом 1
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// JobLog логирует шаг maintenance-задачи
func JobLog(job, operation string, err error, args ...any) {
	fields := append([]any{
		"job", job,
		"operation", operation,
	}, args...)

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("job operation failed", fields...)
		return
	}
	GetLogger().Info("job operation completed", fields...)
}
