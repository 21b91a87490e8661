package logger

import (
	"context"
	"log/slog"
	"strings"
)

// Fields структурированные данные для записи в лог
type Fields map[string]interface{}

// Logger абстрагирует сервисы от конкретной реализации логгера
type Logger interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)

	// WithFields создает новый логгер с уже добавленными полями
	WithFields(fields Fields) Logger
}

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// ContextWithLogger помещает логгер в контекст
func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext извлекает логгер из контекста.
// Если логгера нет, возвращается no-op логгер.
func FromContext(ctx context.Context) Logger {
	if l, ok := Lookup(ctx); ok {
		return l
	}
	return Nop()
}

// Lookup возвращает логгер из контекста, если он там есть
func Lookup(ctx context.Context) (Logger, bool) {
	l, ok := ctx.Value(loggerKey).(Logger)
	return l, ok
}

// Nop возвращает логгер, который ничего не пишет
func Nop() Logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Debug(string, Fields)        {}
func (noopLogger) Info(string, Fields)         {}
func (noopLogger) Warn(string, Fields)         {}
func (noopLogger) Error(string, error, Fields) {}
func (n noopLogger) WithFields(Fields) Logger  { return n }

// ParseLevel преобразует строку в уровень slog, по умолчанию info
func ParseLevel(level string) slog.Level {
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
