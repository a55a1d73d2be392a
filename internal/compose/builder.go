package compose

import (
	"errors"

	"github.com/tech-arch1tect/compose-resource/types"
)

const DefaultComposeFile = "docker-compose.yml"

var ErrMissingBinary = errors.New("compose binary must not be empty")

type BuildInput struct {
	Binary string
	// ConnectionArgs are emitted between the binary and "--no-ansi".
	ConnectionArgs []string
	ComposeFile    string
	Spec           CommandSpec
	Options        types.Object
	Services       []string
}

// VersionProbe is the first invocation of every run. It never carries
// connection flags.
func VersionProbe(binary string) []string {
	return []string{binary, "-v"}
}

func Build(in BuildInput) ([]string, error) {
	if in.Binary == "" {
		return nil, ErrMissingBinary
	}

	composeFile := in.ComposeFile
	if composeFile == "" {
		composeFile = DefaultComposeFile
	}

	optionArgs, err := in.Spec.Serialize(in.Options)
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, 6+len(in.ConnectionArgs)+len(optionArgs)+len(in.Services))
	args = append(args, in.Binary)
	args = append(args, in.ConnectionArgs...)
	args = append(args, "--no-ansi", "-f", composeFile, in.Spec.Name)

	if in.Spec.Detached {
		args = append(args, "-d", "--no-build")
	}

	args = append(args, optionArgs...)

	if in.Spec.AllowsServices {
		args = append(args, in.Services...)
	}

	return args, nil
}
