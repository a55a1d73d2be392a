package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
)

var ErrEmptyCommand = errors.New("invocation has no command")

// Invocation is a single external process run: argv, extra environment and
// working directory.
type Invocation struct {
	Args []string
	Env  map[string]string
	Dir  string
}

func (i Invocation) String() string {
	return strings.Join(i.Args, " ")
}

type Outcome struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

func (o Outcome) Success() bool {
	return o.ExitCode == 0
}

// Executor runs invocations to completion. A non-zero exit is reported in the
// Outcome, not as an error; the error is reserved for processes that could
// not be run at all.
type Executor interface {
	Execute(ctx context.Context, inv Invocation) (Outcome, error)
}

type CommandExecutor struct {
	baseEnv func() []string
}

func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{
		baseEnv: os.Environ,
	}
}

func (e *CommandExecutor) Execute(ctx context.Context, inv Invocation) (Outcome, error) {
	if len(inv.Args) == 0 {
		return Outcome{}, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, inv.Args[0], inv.Args[1:]...)
	cmd.Dir = inv.Dir
	cmd.Env = mergeEnvironment(e.baseEnv(), inv.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	outcome := Outcome{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
			return outcome, nil
		}
		return outcome, fmt.Errorf("failed to run %s: %w", inv.Args[0], err)
	}

	return outcome, nil
}

// mergeEnvironment overlays extra on base. Keys from extra replace any base
// entry with the same name and are appended in sorted order.
func mergeEnvironment(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}

	merged := make([]string, 0, len(base)+len(extra))
	for _, entry := range base {
		key, _, _ := strings.Cut(entry, "=")
		if _, override := extra[key]; override {
			continue
		}
		merged = append(merged, entry)
	}

	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		merged = append(merged, key+"="+extra[key])
	}
	return merged
}
