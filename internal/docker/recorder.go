package docker

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// Recorder is an Executor that records every invocation and plays back
// scripted outcomes in order. Once the script runs out it answers with a
// zero exit code.
type Recorder struct {
	mu       sync.Mutex
	calls    []Invocation
	outcomes []Outcome
	errs     []error
}

func NewRecorder(outcomes ...Outcome) *Recorder {
	return &Recorder{outcomes: outcomes}
}

// FailWith makes the nth call (zero based) return err instead of an outcome.
func (r *Recorder) FailWith(n int, err error) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	for len(r.errs) <= n {
		r.errs = append(r.errs, nil)
	}
	r.errs[n] = err
	return r
}

func (r *Recorder) Execute(ctx context.Context, inv Invocation) (Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.calls)
	r.calls = append(r.calls, Invocation{
		Args: slices.Clone(inv.Args),
		Env:  maps.Clone(inv.Env),
		Dir:  inv.Dir,
	})

	if n < len(r.errs) && r.errs[n] != nil {
		return Outcome{ExitCode: -1}, r.errs[n]
	}
	if n < len(r.outcomes) {
		return r.outcomes[n], nil
	}
	return Outcome{}, nil
}

func (r *Recorder) Calls() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}
