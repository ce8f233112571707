package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type ctxKey string

const (
	actorKey ctxKey = AttrKeyActor
	taskKey  ctxKey = AttrKeyTask
)

// InitLogger installs the default logger writing to stdout.
func InitLogger(config Config) {
	InitLoggerWithWriter(config, os.Stdout)
}

// InitLoggerWithWriter installs the default logger writing to w.
func InitLoggerWithWriter(config Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     config.LogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	handler = handler.WithAttrs(config.BaseAttributes())

	slog.SetDefault(slog.New(handler))
}

// WithActor returns a new context tagged with the player the work is about.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// WithTask returns a new context tagged with the description of a queued task.
func WithTask(ctx context.Context, task string) context.Context {
	return context.WithValue(ctx, taskKey, task)
}

// ActorFromContext extracts the actor tag from the context, if present.
func ActorFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, actorKey)
}

// TaskFromContext extracts the task tag from the context, if present.
func TaskFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, taskKey)
}

func stringValue(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(key).(string)
	return v, ok && v != ""
}

// FromContext returns the default logger carrying the actor and task attributes when present.
func FromContext(ctx context.Context) *slog.Logger {
	log := slog.Default()
	if actor, ok := ActorFromContext(ctx); ok {
		log = log.With(AttrKeyActor, actor)
	}
	if task, ok := TaskFromContext(ctx); ok {
		log = log.With(AttrKeyTask, task)
	}
	return log
}

// Debug logs at debug level on the default logger.
func Debug(msg string, args ...any) { slog.Default().Debug(msg, args...) }

// Info logs at info level on the default logger.
func Info(msg string, args ...any) { slog.Default().Info(msg, args...) }

// Warn logs at warn level on the default logger.
func Warn(msg string, args ...any) { slog.Default().Warn(msg, args...) }

// Error logs at error level on the default logger.
func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }
