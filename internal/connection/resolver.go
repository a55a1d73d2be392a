package connection

import (
	"fmt"
	"strings"
)

const (
	DefaultPort    = 2376
	HostEnvVar     = "DOCKER_HOST"
	TLSVerifyEnv   = "DOCKER_TLS_VERIFY"
	CertPathEnvVar = "DOCKER_CERT_PATH"
)

// Mode selects how the connection target reaches docker-compose. The two
// styles are mutually exclusive.
type Mode string

const (
	ModeEnv  Mode = "env"
	ModeFlag Mode = "flag"
)

func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeEnv:
		return ModeEnv, nil
	case ModeFlag:
		return ModeFlag, nil
	default:
		return "", &ConfigError{Message: fmt.Sprintf("unknown connection mode %q (expected %q or %q)", value, ModeEnv, ModeFlag)}
	}
}

type Settings struct {
	Host string
	// Mode may be empty, in which case the default mode is used.
	Mode string
	TLS  *TLSMaterial
}

type Target struct {
	Host string
	Port int
	Mode Mode
	TLS  *TLSMaterial
}

// Resolve derives the connection target from the source settings. It has no
// side effects.
func Resolve(settings Settings, defaultMode Mode) (Target, error) {
	host := strings.TrimSpace(settings.Host)
	if host == "" {
		return Target{}, ErrHostRequired
	}

	mode := defaultMode
	if settings.Mode != "" {
		parsed, err := ParseMode(settings.Mode)
		if err != nil {
			return Target{}, err
		}
		mode = parsed
	}
	if mode == "" {
		mode = ModeEnv
	}

	if settings.TLS != nil {
		if err := settings.TLS.Validate(); err != nil {
			return Target{}, err
		}
	}

	return Target{
		Host: host,
		Port: DefaultPort,
		Mode: mode,
		TLS:  settings.TLS,
	}, nil
}

func (t Target) Address() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// Environment returns the variables every invocation of the run carries.
// certs may be nil when the target has no TLS material.
func (t Target) Environment(certs *CertPaths) map[string]string {
	env := make(map[string]string)
	if t.Mode != ModeEnv {
		return env
	}
	env[HostEnvVar] = t.Address()
	if certs != nil {
		env[TLSVerifyEnv] = "1"
		env[CertPathEnvVar] = certs.Dir
	}
	return env
}

// Flags returns the tokens placed between the binary and the compose file
// flags of the main command.
func (t Target) Flags(certs *CertPaths) []string {
	if t.Mode != ModeFlag {
		return nil
	}
	flags := []string{"--host", t.Address()}
	if certs != nil {
		flags = append(flags, "--tlsverify", "--tlscacert", certs.CA)
		if certs.Cert != "" {
			flags = append(flags, "--tlscert", certs.Cert, "--tlskey", certs.Key)
		}
	}
	return flags
}
