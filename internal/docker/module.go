package docker

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		fx.Annotate(NewCommandExecutor, fx.As(new(Executor))),
	),
)
