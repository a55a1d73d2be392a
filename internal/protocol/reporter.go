package protocol

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

type VersionResponse struct {
	Version Version `json:"version"`
}

// exitStatuser is implemented by errors that carry the exit code of a
// failed child process.
type exitStatuser interface {
	ExitStatus() int
}

// outputCarrier is implemented by errors that captured child stderr.
type outputCarrier interface {
	Output() []byte
}

// Reporter owns both ends of the boundary: stdout carries the JSON result,
// stderr carries diagnostics and child output.
type Reporter struct {
	stdout io.Writer
	stderr io.Writer
}

func NewReporter(stdout, stderr io.Writer) *Reporter {
	return &Reporter{stdout: stdout, stderr: stderr}
}

func (r *Reporter) Version(v Version) error {
	return r.encode(VersionResponse{Version: v})
}

func (r *Reporter) Versions(vs []Version) error {
	if vs == nil {
		vs = []Version{}
	}
	return r.encode(vs)
}

// Echo copies child output to the diagnostic channel.
func (r *Reporter) Echo(output []byte) {
	if len(output) == 0 {
		return
	}
	r.stderr.Write(output)
}

// Failure writes the diagnostic for err and returns the process exit code.
func (r *Reporter) Failure(err error) int {
	var carrier outputCarrier
	if errors.As(err, &carrier) {
		r.Echo(carrier.Output())
	}

	msg := err.Error()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	io.WriteString(r.stderr, msg)

	return ExitCode(err)
}

func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var status exitStatuser
	if errors.As(err, &status) && status.ExitStatus() > 0 {
		return status.ExitStatus()
	}
	return 1
}

func (r *Reporter) encode(v any) error {
	enc := json.NewEncoder(r.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
