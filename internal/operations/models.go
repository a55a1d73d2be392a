package operations

import (
	"fmt"
	"strings"

	"github.com/tech-arch1tect/compose-resource/internal/docker"
	"github.com/tech-arch1tect/compose-resource/internal/protocol"
)

type State int

const (
	StateStart State = iota
	StateVersionProbe
	StateEnvMaterialize
	StateMainCommand
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateVersionProbe:
		return "version_probe"
	case StateEnvMaterialize:
		return "env_materialize"
	case StateMainCommand:
		return "main_command"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

type Request struct {
	Source  protocol.Source
	Params  protocol.Params
	WorkDir string
}

type Result struct {
	RunID string
	State State
	// Trace lists every state the run entered, in order, ending with the
	// terminal one.
	Trace          []State
	ComposeVersion string
	EnvWritten     bool
	Probe          *docker.Outcome
	Main           *docker.Outcome
}

type InvocationError struct {
	Step     string
	Args     []string
	ExitCode int
	Stderr   []byte
	Err      error
}

func (e *InvocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("%s `%s` exited with code %d", e.Step, strings.Join(e.Args, " "), e.ExitCode)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

func (e *InvocationError) ExitStatus() int {
	return e.ExitCode
}

func (e *InvocationError) Output() []byte {
	return e.Stderr
}
