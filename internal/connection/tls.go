package connection

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/go-connections/tlsconfig"
)

const (
	CAFileName   = "ca.pem"
	CertFileName = "cert.pem"
	KeyFileName  = "key.pem"
)

// TLSMaterial holds PEM encoded certificates for a TLS protected daemon.
type TLSMaterial struct {
	CACert     string
	ClientCert string
	ClientKey  string
}

func (m *TLSMaterial) Validate() error {
	if strings.TrimSpace(m.CACert) == "" {
		return &ConfigError{Message: "tls requires a ca_cert"}
	}
	hasCert := strings.TrimSpace(m.ClientCert) != ""
	hasKey := strings.TrimSpace(m.ClientKey) != ""
	if hasCert != hasKey {
		return &ConfigError{Message: "tls client_cert and client_key must be given together"}
	}
	return nil
}

type CertPaths struct {
	Dir  string
	CA   string
	Cert string
	Key  string
}

// WriteCertificates stores the material under a new private directory inside
// parent and checks that docker will accept it. The caller removes Dir.
func WriteCertificates(parent string, m *TLSMaterial) (*CertPaths, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(parent, "docker-certs-")
	if err != nil {
		return nil, &ConfigError{Message: "failed to create certificate directory", Err: err}
	}

	paths := &CertPaths{
		Dir: dir,
		CA:  filepath.Join(dir, CAFileName),
	}
	if err := os.WriteFile(paths.CA, []byte(m.CACert), 0600); err != nil {
		os.RemoveAll(dir)
		return nil, &ConfigError{Message: "failed to write ca certificate", Err: err}
	}

	if m.ClientCert != "" {
		paths.Cert = filepath.Join(dir, CertFileName)
		paths.Key = filepath.Join(dir, KeyFileName)
		if err := os.WriteFile(paths.Cert, []byte(m.ClientCert), 0600); err != nil {
			os.RemoveAll(dir)
			return nil, &ConfigError{Message: "failed to write client certificate", Err: err}
		}
		if err := os.WriteFile(paths.Key, []byte(m.ClientKey), 0600); err != nil {
			os.RemoveAll(dir)
			return nil, &ConfigError{Message: "failed to write client key", Err: err}
		}
	}

	if _, err := tlsconfig.Client(tlsconfig.Options{
		CAFile:   paths.CA,
		CertFile: paths.Cert,
		KeyFile:  paths.Key,
	}); err != nil {
		os.RemoveAll(dir)
		return nil, &ConfigError{Message: "invalid tls material", Err: err}
	}

	return paths, nil
}
