package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tech-arch1tect/compose-resource/config"
	"github.com/tech-arch1tect/compose-resource/internal/docker"
	"github.com/tech-arch1tect/compose-resource/internal/logging"
	"github.com/tech-arch1tect/compose-resource/internal/operations"
	"github.com/tech-arch1tect/compose-resource/internal/resource"

	"go.uber.org/fx"
)

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	var res *resource.Resource

	app := fx.New(
		config.Module,
		logging.Module,
		docker.Module,
		operations.Module,
		resource.Module,
		fx.NopLogger,
		fx.Populate(&res),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer app.Stop(ctx)

	return resource.Execute(ctx, res, argv, resource.StdStreams())
}
