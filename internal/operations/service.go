package operations

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tech-arch1tect/compose-resource/internal/compose"
	"github.com/tech-arch1tect/compose-resource/internal/connection"
	"github.com/tech-arch1tect/compose-resource/internal/docker"
	"github.com/tech-arch1tect/compose-resource/internal/environment"
	"github.com/tech-arch1tect/compose-resource/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	binary      string
	defaultMode connection.Mode
	certParent  string
	executor    docker.Executor
	logger      *logging.Logger
}

func NewService(binary string, defaultMode connection.Mode, executor docker.Executor, logger *logging.Logger) *Service {
	logger.Debug("operations service initialized",
		zap.String("compose_binary", binary),
		zap.String("default_connection_mode", string(defaultMode)),
	)
	return &Service{
		binary:      binary,
		defaultMode: defaultMode,
		executor:    executor,
		logger:      logger.With(zap.String("component", "operations.service")),
	}
}

type plan struct {
	dir       string
	command   string
	probe     docker.Invocation
	main      docker.Invocation
	envSource environment.Source
	certs     *connection.CertPaths
}

func (p *plan) cleanup() {
	if p.certs != nil {
		os.RemoveAll(p.certs.Dir)
	}
}

// Run drives one request through version probe, optional .env
// materialization and the main command. Everything that can be rejected
// without spawning a process is rejected before the probe runs.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.New().String()
	logger := s.logger.With(zap.String("run_id", runID))
	result := &Result{
		RunID: runID,
		State: StateStart,
		Trace: []State{StateStart},
	}

	start := time.Now()
	p, err := s.prepare(req)
	if err != nil {
		logger.Error("request rejected", zap.Error(err))
		result.State = StateFailed
		result.Trace = append(result.Trace, StateFailed)
		return result, err
	}
	defer p.cleanup()

	logger.Info("starting compose run",
		zap.String("command", p.command),
		zap.Strings("args", p.main.Args),
		zap.String("work_dir", p.dir),
	)

	state := StateVersionProbe
	for !state.Terminal() {
		result.Trace = append(result.Trace, state)
		state, err = s.step(ctx, state, p, result, logger)
	}
	result.Trace = append(result.Trace, state)
	result.State = state

	if err != nil {
		logger.Warn("compose run failed",
			zap.String("command", p.command),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return result, err
	}

	logger.Info("compose run completed successfully",
		zap.String("command", p.command),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (s *Service) prepare(req Request) (*plan, error) {
	var tls *connection.TLSMaterial
	if req.Source.TLS != nil {
		tls = &connection.TLSMaterial{
			CACert:     req.Source.TLS.CACert,
			ClientCert: req.Source.TLS.ClientCert,
			ClientKey:  req.Source.TLS.ClientKey,
		}
	}

	target, err := connection.Resolve(connection.Settings{
		Host: req.Source.Host,
		Mode: req.Source.ConnectionMode,
		TLS:  tls,
	}, s.defaultMode)
	if err != nil {
		return nil, err
	}

	spec, err := compose.Resolve(req.Params.Command)
	if err != nil {
		return nil, err
	}

	p := &plan{
		dir:     req.WorkDir,
		command: spec.Name,
		envSource: environment.Source{
			Env:     req.Params.Env,
			EnvFile: req.Params.EnvFile,
		},
	}

	// options are checked before any certificate is written
	if _, err := spec.Serialize(req.Params.Options); err != nil {
		return nil, err
	}

	if target.TLS != nil {
		certs, err := connection.WriteCertificates(s.certParent, target.TLS)
		if err != nil {
			return nil, err
		}
		p.certs = certs
	}

	mainArgs, err := compose.Build(compose.BuildInput{
		Binary:         s.binary,
		ConnectionArgs: target.Flags(p.certs),
		ComposeFile:    req.Params.ComposeFile,
		Spec:           spec,
		Options:        req.Params.Options,
		Services:       req.Params.Services,
	})
	if err != nil {
		p.cleanup()
		return nil, err
	}

	p.probe = docker.Invocation{
		Args: compose.VersionProbe(s.binary),
		Env:  target.Environment(p.certs),
		Dir:  req.WorkDir,
	}
	p.main = docker.Invocation{
		Args: mainArgs,
		Env:  target.Environment(p.certs),
		Dir:  req.WorkDir,
	}
	return p, nil
}

func (s *Service) step(ctx context.Context, state State, p *plan, result *Result, logger *logging.Logger) (State, error) {
	switch state {
	case StateVersionProbe:
		outcome, err := s.execute(ctx, "version probe", p.probe, logger)
		result.Probe = &outcome
		if err != nil {
			return StateFailed, err
		}
		result.ComposeVersion = compose.ParseVersion(outcome.Stdout)
		logger.Debug("detected compose version",
			zap.String("version", result.ComposeVersion),
			zap.String("major", compose.MajorVersion(result.ComposeVersion)),
		)
		if p.envSource.Requested() {
			return StateEnvMaterialize, nil
		}
		return StateMainCommand, nil

	case StateEnvMaterialize:
		written, err := environment.Materialize(p.dir, p.envSource)
		if err != nil {
			logger.Error("failed to materialize env file", zap.Error(err))
			return StateFailed, err
		}
		result.EnvWritten = written
		logger.Debug("env file materialized",
			zap.Int("inline_entries", len(p.envSource.Env)),
			zap.String("env_file", p.envSource.EnvFile),
		)
		return StateMainCommand, nil

	case StateMainCommand:
		outcome, err := s.execute(ctx, p.command, p.main, logger)
		result.Main = &outcome
		if err != nil {
			return StateFailed, err
		}
		return StateDone, nil
	}

	return StateFailed, fmt.Errorf("no transition from state %s", state)
}

func (s *Service) execute(ctx context.Context, step string, inv docker.Invocation, logger *logging.Logger) (docker.Outcome, error) {
	logger.Debug("executing invocation",
		zap.String("step", step),
		zap.Strings("args", inv.Args),
	)

	outcome, err := s.executor.Execute(ctx, inv)
	if err != nil {
		logger.Error("failed to start invocation",
			zap.String("step", step),
			zap.Error(err),
		)
		return outcome, &InvocationError{Step: step, Args: inv.Args, ExitCode: -1, Err: err}
	}

	if !outcome.Success() {
		logger.Warn("invocation completed with non-zero exit code",
			zap.String("step", step),
			zap.Int("exit_code", outcome.ExitCode),
		)
		return outcome, &InvocationError{
			Step:     step,
			Args:     inv.Args,
			ExitCode: outcome.ExitCode,
			Stderr:   outcome.Stderr,
		}
	}

	return outcome, nil
}
