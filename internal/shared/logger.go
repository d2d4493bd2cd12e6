package shared

import (
	"context"
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppLogger wraps zap with otelzap so every log line carries the trace and
// span ids of the request it belongs to.
type AppLogger struct {
	Logger      *otelzap.Logger
	serviceName string
}

func NewAppLogger(serviceName string) (*AppLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return &AppLogger{
		Logger:      otelzap.New(zapLogger),
		serviceName: serviceName,
	}, nil
}

func (l *AppLogger) Sync() error {
	return l.Logger.Sync()
}

func (l *AppLogger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.Logger.Ctx(ctx).Info(msg, l.withService(fields)...)
}

func (l *AppLogger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.Logger.Ctx(ctx).Warn(msg, l.withService(fields)...)
}

func (l *AppLogger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.Logger.Ctx(ctx).Error(msg, l.withService(fields)...)
}

func (l *AppLogger) withService(fields []zap.Field) []zap.Field {
	return append(fields, zap.String("service", l.serviceName))
}

func LogError(ctx context.Context, logger *AppLogger, err error, msg string, fields ...zap.Field) {
	logger.Error(ctx, msg, append(fields, zap.Error(err))...)
}

func LogInfo(ctx context.Context, logger *AppLogger, msg string, fields ...zap.Field) {
	logger.Info(ctx, msg, fields...)
}
