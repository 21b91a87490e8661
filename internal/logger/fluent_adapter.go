package logger

import (
	"errors"
	"log/slog"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// FluentAdapter отправляет записи лога в fluentd
type FluentAdapter struct {
	client   *fluent.Fluent
	fields   Fields
	minLevel slog.Level
}

// NewFluentClient подключается к fluentd
func NewFluentClient(host string, port int, tagPrefix string) (*fluent.Fluent, error) {
	return fluent.New(fluent.Config{
		FluentHost: host,
		FluentPort: port,
		TagPrefix:  tagPrefix,
		Async:      true,
	})
}

// NewFluentAdapter создает адаптер над готовым клиентом fluentd
func NewFluentAdapter(client *fluent.Fluent, minLevel slog.Leveler) (*FluentAdapter, error) {
	if client == nil {
		return nil, errors.New("fluent client cannot be nil")
	}

	level := slog.LevelInfo
	if minLevel != nil {
		level = minLevel.Level()
	}

	return &FluentAdapter{client: client, fields: Fields{}, minLevel: level}, nil
}

func (a *FluentAdapter) merge(fields Fields) Fields {
	merged := make(Fields, len(a.fields)+len(fields))
	for k, v := range a.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

func (a *FluentAdapter) post(level slog.Level, msg string, data Fields) {
	if level < a.minLevel {
		return
	}
	tag := level.String()
	data["level"] = tag
	data["message"] = msg
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)

	// ошибки доставки логов не должны ломать обработку запроса
	_ = a.client.Post(tag, data)
}

func (a *FluentAdapter) Debug(msg string, fields Fields) {
	a.post(slog.LevelDebug, msg, a.merge(fields))
}

func (a *FluentAdapter) Info(msg string, fields Fields) {
	a.post(slog.LevelInfo, msg, a.merge(fields))
}

func (a *FluentAdapter) Warn(msg string, fields Fields) {
	a.post(slog.LevelWarn, msg, a.merge(fields))
}

func (a *FluentAdapter) Error(msg string, err error, fields Fields) {
	data := a.merge(fields)
	if err != nil {
		data["error"] = err.Error()
	}
	a.post(slog.LevelError, msg, data)
}

func (a *FluentAdapter) WithFields(fields Fields) Logger {
	return &FluentAdapter{client: a.client, fields: a.merge(fields), minLevel: a.minLevel}
}

// Close закрывает соединение с fluentd
func (a *FluentAdapter) Close() error {
	return a.client.Close()
}
