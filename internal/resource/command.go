package resource

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	checkCommand = "check"
	inCommand    = "in"
	outCommand   = "out"
)

func NewRootCommand(res *Resource, streams Streams, exitCode *int) *cobra.Command {
	root := &cobra.Command{
		Use:           "compose-resource",
		Short:         "Run docker-compose lifecycle commands against a remote Docker host",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "check",
			Short: "Report available versions (always none)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				*exitCode = res.Check(cmd.Context(), streams)
				return nil
			},
		},
		&cobra.Command{
			Use:   "in <destination>",
			Short: "Echo the requested version",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				*exitCode = res.In(cmd.Context(), streams, args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "out <working-directory>",
			Short: "Run the configured docker-compose command",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				*exitCode = res.Out(cmd.Context(), streams, args[0])
				return nil
			},
		},
	)

	root.SetIn(streams.In)
	// stdout is reserved for the JSON result
	root.SetOut(streams.Err)
	root.SetErr(streams.Err)
	return root
}

// Execute runs the resource for the given argv and returns the exit code.
// When the binary is invoked through a check, in or out link the basename
// selects the subcommand.
func Execute(ctx context.Context, res *Resource, argv []string, streams Streams) int {
	exitCode := 0
	root := NewRootCommand(res, streams, &exitCode)
	root.SetArgs(commandArgs(argv))

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(streams.Err, err)
		return 1
	}
	return exitCode
}

func commandArgs(argv []string) []string {
	if len(argv) == 0 {
		return []string{}
	}
	switch name := filepath.Base(argv[0]); name {
	case checkCommand, inCommand, outCommand:
		return append([]string{name}, argv[1:]...)
	}
	return argv[1:]
}
