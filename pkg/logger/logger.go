package logger

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/formcraft/formcraft-backend/pkg/errors"
)

type ctxKey string

const fieldsKey ctxKey = "logger_fields"

// Logger wraps zerolog with request-scoped fields carried on the context.
type Logger struct {
	log zerolog.Logger
}

// New builds the process logger. LOG_FORMAT=console switches to the
// human-readable writer for local development.
func New(level string, format string) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if strings.EqualFold(format, "console") {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log = zerolog.New(os.Stderr)
	}

	log = log.Level(lvl).With().Timestamp().Logger()
	return &Logger{log: log}
}

func fieldsFrom(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey).(map[string]any)
	return fields
}

// WithField returns a context carrying the field for all later log calls.
func (l *Logger) WithField(ctx context.Context, key string, value any) context.Context {
	existing := fieldsFrom(ctx)
	merged := make(map[string]any, len(existing)+1)
	for k, v := range existing {
		merged[k] = v
	}
	merged[key] = value
	return context.WithValue(ctx, fieldsKey, merged)
}

// WithFields returns a context carrying every given field.
func (l *Logger) WithFields(ctx context.Context, fields map[string]any) context.Context {
	existing := fieldsFrom(ctx)
	merged := make(map[string]any, len(existing)+len(fields))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, fieldsKey, merged)
}

// WithRequestID tags the context with the inbound request id.
func (l *Logger) WithRequestID(ctx context.Context, requestID string) context.Context {
	return l.WithField(ctx, "request_id", requestID)
}

// WithSessionID tags the context with the cart session id.
func (l *Logger) WithSessionID(ctx context.Context, sessionID string) context.Context {
	return l.WithField(ctx, "session_id", sessionID)
}

func (l *Logger) event(ctx context.Context, ev *zerolog.Event) *zerolog.Event {
	for k, v := range fieldsFrom(ctx) {
		ev = ev.Interface(k, v)
	}
	return ev
}

// Debug logs at debug level with context fields attached.
func (l *Logger) Debug(ctx context.Context, msg string) {
	l.event(ctx, l.log.Debug()).Msg(msg)
}

// Info logs at info level with context fields attached.
func (l *Logger) Info(ctx context.Context, msg string) {
	l.event(ctx, l.log.Info()).Msg(msg)
}

// Warn logs at warn level; err may be nil.
func (l *Logger) Warn(ctx context.Context, msg string, errs ...error) {
	ev := l.event(ctx, l.log.Warn())
	if len(errs) > 0 && errs[0] != nil {
		ev = ev.Interface("error_dump", errors.Dump(errs[0]))
	}
	ev.Msg(msg)
}

// Error logs at error level with the full error dump attached.
func (l *Logger) Error(ctx context.Context, msg string, err error) {
	ev := l.event(ctx, l.log.Error())
	if err != nil {
		ev = ev.Interface("error_dump", errors.Dump(err))
	}
	ev.Msg(msg)
}
