package logging

import (
	"context"
	"os"

	"github.com/tech-arch1tect/compose-resource/config"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewLoggerFromConfig),
	fx.Invoke(RegisterLoggerShutdown),
)

func NewLoggerFromConfig(cfg *config.Config) (*Logger, error) {
	return NewLogger(cfg.LogLevel, os.Stderr)
}

func RegisterLoggerShutdown(lc fx.Lifecycle, logger *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync on a terminal stderr returns EINVAL on linux
			_ = logger.Sync()
			return nil
		},
	})
}
