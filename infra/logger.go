package infra

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/tdnghia/superhero-catalog/config"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// LoggerClient wraps slog. When an OTLP endpoint is configured, records are
// bridged to an OpenTelemetry log exporter; otherwise they go to stdout.
type LoggerClient struct {
	logger   *slog.Logger
	provider *sdklog.LoggerProvider
}

func InitLoggerClient(cfg *config.EnvConfig) *LoggerClient {
	if cfg.OTLP.Endpoint == "" {
		return &LoggerClient{
			logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
		}
	}

	exporter, err := otlploghttp.New(context.Background(),
		otlploghttp.WithEndpoint(cfg.OTLP.Endpoint),
	)
	if err != nil {
		log.Printf("OTLP log exporter init failed, falling back to stdout: %v", err)
		return &LoggerClient{
			logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
		}
	}

	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.OTLP.ServiceName),
		semconv.DeploymentEnvironment(cfg.Environment.Mode),
	))

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)

	handler := otelslog.NewHandler(cfg.OTLP.ServiceName, otelslog.WithLoggerProvider(provider))
	return &LoggerClient{
		logger:   slog.New(handler),
		provider: provider,
	}
}

// NewTestLogger returns a stderr-only client with no OTLP export. Used by
// tests and by the seed binary.
func NewTestLogger() *LoggerClient {
	return &LoggerClient{
		logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
}

func (l *LoggerClient) InfoWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.InfoContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) WarningWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.WarnContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{}) {
	if err != nil {
		l.logger.ErrorContext(ctx, fmt.Sprintf(format, args...), slog.Any("error", err))
		return
	}
	l.logger.ErrorContext(ctx, fmt.Sprintf(format, args...))
}

// Shutdown flushes buffered log records. No-op for the stdout logger.
func (l *LoggerClient) Shutdown(ctx context.Context) error {
	if l.provider == nil {
		return nil
	}
	return l.provider.Shutdown(ctx)
}
