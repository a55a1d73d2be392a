package protocol

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tech-arch1tect/compose-resource/types"
)

type Source struct {
	Host           string       `json:"host"`
	ConnectionMode string       `json:"connection_mode,omitempty"`
	TLS            *TLSSettings `json:"tls,omitempty"`
}

type TLSSettings struct {
	CACert     string `json:"ca_cert"`
	ClientCert string `json:"client_cert,omitempty"`
	ClientKey  string `json:"client_key,omitempty"`
}

type Params struct {
	Command     string       `json:"command,omitempty"`
	ComposeFile string       `json:"compose_file,omitempty"`
	Services    []string     `json:"services,omitempty"`
	Options     types.Object `json:"options,omitempty"`
	Env         types.Object `json:"env,omitempty"`
	EnvFile     string       `json:"env_file,omitempty"`
}

type Version struct {
	Digest string `json:"digest"`
}

// EmptyVersion is the only version this resource ever reports; there is no
// content to hash.
var EmptyVersion = Version{Digest: "sha256:"}

type OutRequest struct {
	Source Source `json:"source"`
	Params Params `json:"params"`
}

type InRequest struct {
	Source  Source   `json:"source"`
	Version *Version `json:"version,omitempty"`
}

type CheckRequest struct {
	Source  Source   `json:"source"`
	Version *Version `json:"version,omitempty"`
}

func ReadOutRequest(r io.Reader) (OutRequest, error) {
	var req OutRequest
	return req, decode(r, &req)
}

func ReadInRequest(r io.Reader) (InRequest, error) {
	var req InRequest
	return req, decode(r, &req)
}

func ReadCheckRequest(r io.Reader) (CheckRequest, error) {
	var req CheckRequest
	return req, decode(r, &req)
}

func decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
