package resource

import (
	"context"
	"io"
	"os"

	"github.com/tech-arch1tect/compose-resource/internal/connection"
	"github.com/tech-arch1tect/compose-resource/internal/logging"
	"github.com/tech-arch1tect/compose-resource/internal/operations"
	"github.com/tech-arch1tect/compose-resource/internal/protocol"

	"go.uber.org/zap"
)

type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Resource implements the check, in and out scripts. Only out does any work;
// the resource has no versions.
type Resource struct {
	operations *operations.Service
	echoOutput bool
	logger     *logging.Logger
}

func NewResource(ops *operations.Service, echoOutput bool, logger *logging.Logger) *Resource {
	return &Resource{
		operations: ops,
		echoOutput: echoOutput,
		logger:     logger.With(zap.String("component", "resource")),
	}
}

func (r *Resource) Out(ctx context.Context, streams Streams, dir string) int {
	reporter := protocol.NewReporter(streams.Out, streams.Err)

	req, err := protocol.ReadOutRequest(streams.In)
	if err != nil {
		return reporter.Failure(err)
	}

	result, err := r.operations.Run(ctx, operations.Request{
		Source:  req.Source,
		Params:  req.Params,
		WorkDir: dir,
	})
	if err != nil {
		code := reporter.Failure(err)
		r.logger.Debug("out failed", zap.Int("exit_code", code))
		return code
	}

	if r.echoOutput && result.Main != nil {
		reporter.Echo(result.Main.Stdout)
		reporter.Echo(result.Main.Stderr)
	}

	if err := reporter.Version(protocol.EmptyVersion); err != nil {
		return reporter.Failure(err)
	}
	return 0
}

func (r *Resource) In(ctx context.Context, streams Streams, dir string) int {
	reporter := protocol.NewReporter(streams.Out, streams.Err)

	req, err := protocol.ReadInRequest(streams.In)
	if err != nil {
		return reporter.Failure(err)
	}

	version := protocol.EmptyVersion
	if req.Version != nil {
		version = *req.Version
	}
	r.logger.Debug("in is a no-op", zap.String("dir", dir), zap.String("digest", version.Digest))

	if err := reporter.Version(version); err != nil {
		return reporter.Failure(err)
	}
	return 0
}

func (r *Resource) Check(ctx context.Context, streams Streams) int {
	reporter := protocol.NewReporter(streams.Out, streams.Err)

	req, err := protocol.ReadCheckRequest(streams.In)
	if err != nil {
		return reporter.Failure(err)
	}

	settings := connection.Settings{
		Host: req.Source.Host,
		Mode: req.Source.ConnectionMode,
	}
	if tls := req.Source.TLS; tls != nil {
		settings.TLS = &connection.TLSMaterial{
			CACert:     tls.CACert,
			ClientCert: tls.ClientCert,
			ClientKey:  tls.ClientKey,
		}
	}
	if _, err := connection.Resolve(settings, connection.ModeEnv); err != nil {
		return reporter.Failure(err)
	}

	if err := reporter.Versions(nil); err != nil {
		return reporter.Failure(err)
	}
	return 0
}
