package operations

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-arch1tect/compose-resource/internal/connection"
	"github.com/tech-arch1tect/compose-resource/internal/docker"
)

func testCertificate(t *testing.T) (string, string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber:          big.NewInt(42),
		Subject:               pkix.Name{CommonName: "docker-daemon-test"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)

	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	return string(certPEM), string(keyPEM)
}

func tlsRequest(t *testing.T, mode string) Request {
	t.Helper()
	certPEM, keyPEM := testCertificate(t)

	source := map[string]any{
		"host":            "foo",
		"connection_mode": mode,
		"tls": map[string]string{
			"ca_cert":     certPEM,
			"client_cert": certPEM,
			"client_key":  keyPEM,
		},
	}
	raw, err := json.Marshal(map[string]any{"source": source, "params": map[string]any{"command": "stop"}})
	require.NoError(t, err)
	return outRequest(t, t.TempDir(), string(raw))
}

func TestRunTLSEnvMode(t *testing.T) {
	recorder := docker.NewRecorder()
	svc := newTestService(recorder, connection.ModeEnv)
	svc.certParent = t.TempDir()

	_, err := svc.Run(context.Background(), tlsRequest(t, "env"))
	require.NoError(t, err)

	calls := recorder.Calls()
	require.Len(t, calls, 2)
	for _, call := range calls {
		assert.Equal(t, "foo:2376", call.Env["DOCKER_HOST"])
		assert.Equal(t, "1", call.Env["DOCKER_TLS_VERIFY"])
		assert.Equal(t, svc.certParent, filepath.Dir(call.Env["DOCKER_CERT_PATH"]))
	}
	assert.Equal(t, []string{"docker-compose", "--no-ansi", "-f", "docker-compose.yml", "stop"}, calls[1].Args)

	_, statErr := os.Stat(calls[1].Env["DOCKER_CERT_PATH"])
	assert.True(t, os.IsNotExist(statErr), "certificates must be removed after the run")
}

func TestRunTLSFlagMode(t *testing.T) {
	recorder := docker.NewRecorder()
	svc := newTestService(recorder, connection.ModeEnv)
	svc.certParent = t.TempDir()

	_, err := svc.Run(context.Background(), tlsRequest(t, "flag"))
	require.NoError(t, err)

	calls := recorder.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"docker-compose", "-v"}, calls[0].Args)
	assert.Empty(t, calls[0].Env)

	args := calls[1].Args
	require.Len(t, args, 14)
	assert.Equal(t, []string{"docker-compose", "--host", "foo:2376", "--tlsverify", "--tlscacert"}, args[:5])
	certDir := filepath.Dir(args[5])
	assert.Equal(t, svc.certParent, filepath.Dir(certDir))
	assert.Equal(t, []string{
		filepath.Join(certDir, "ca.pem"),
		"--tlscert", filepath.Join(certDir, "cert.pem"),
		"--tlskey", filepath.Join(certDir, "key.pem"),
		"--no-ansi", "-f", "docker-compose.yml", "stop",
	}, args[5:])
	assert.Empty(t, calls[1].Env)
}

func TestRunInvalidTLSSpawnsNothing(t *testing.T) {
	recorder := docker.NewRecorder()
	svc := newTestService(recorder, connection.ModeEnv)
	svc.certParent = t.TempDir()

	_, err := svc.Run(context.Background(), outRequest(t, t.TempDir(),
		`{"source": {"host": "foo", "tls": {"ca_cert": "garbage"}}}`))
	require.Error(t, err)

	var cfgErr *connection.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, recorder.Calls())

	entries, err := os.ReadDir(svc.certParent)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
