package resource

import (
	"github.com/tech-arch1tect/compose-resource/config"
	"github.com/tech-arch1tect/compose-resource/internal/logging"
	"github.com/tech-arch1tect/compose-resource/internal/operations"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewResourceWithConfig),
)

func NewResourceWithConfig(cfg *config.Config, ops *operations.Service, logger *logging.Logger) *Resource {
	return NewResource(ops, cfg.EchoOutput, logger)
}
