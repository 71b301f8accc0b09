package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey int

const (
	fieldsKey contextKey = iota
)

// ZapLogger wraps zap with context-carried fields: middleware attaches
// request-scoped fields once and every *Ctx call picks them up.
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(level zapcore.Level) (*ZapLogger, error) {
	s := defaultSettings(zap.NewAtomicLevelAt(level))
	logger, err := s.config.Build(s.opts...)
	if err != nil {
		return nil, err
	}
	return &ZapLogger{
		logger: logger,
	}, nil
}

func NewNop() *ZapLogger {
	return &ZapLogger{
		logger: zap.NewNop(),
	}
}

func WithContextFields(ctx context.Context, fields ...zap.Field) context.Context {
	return context.WithValue(ctx, fieldsKey, append(fieldsFromCtx(ctx), fields...))
}

func fieldsFromCtx(ctx context.Context) []zap.Field {
	fields, ok := ctx.Value(fieldsKey).([]zap.Field)
	if !ok {
		return nil
	}
	return fields
}

func (l *ZapLogger) DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Debug(msg, append(fieldsFromCtx(ctx), fields...)...)
}

func (l *ZapLogger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Info(msg, append(fieldsFromCtx(ctx), fields...)...)
}

func (l *ZapLogger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Warn(msg, append(fieldsFromCtx(ctx), fields...)...)
}

func (l *ZapLogger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Error(msg, append(fieldsFromCtx(ctx), fields...)...)
}
