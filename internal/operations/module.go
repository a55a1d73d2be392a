package operations

import (
	"github.com/tech-arch1tect/compose-resource/config"
	"github.com/tech-arch1tect/compose-resource/internal/connection"
	"github.com/tech-arch1tect/compose-resource/internal/docker"
	"github.com/tech-arch1tect/compose-resource/internal/logging"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewServiceWithConfig),
)

func NewServiceWithConfig(cfg *config.Config, executor docker.Executor, logger *logging.Logger) (*Service, error) {
	mode, err := connection.ParseMode(cfg.ConnectionMode)
	if err != nil {
		return nil, err
	}
	return NewService(cfg.ComposeBinary, mode, executor, logger), nil
}
