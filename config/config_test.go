package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("COMPOSE_BINARY", "")
	t.Setenv("COMPOSE_CONNECTION_MODE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("COMPOSE_ECHO_OUTPUT", "")

	cfg := NewConfig()
	assert.Equal(t, "docker-compose", cfg.ComposeBinary)
	assert.Equal(t, "env", cfg.ConnectionMode)
	assert.Equal(t, "off", cfg.LogLevel)
	assert.True(t, cfg.EchoOutput)
}

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("COMPOSE_BINARY", "/usr/local/bin/docker-compose")
	t.Setenv("COMPOSE_CONNECTION_MODE", "flag")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("COMPOSE_ECHO_OUTPUT", "false")

	cfg := NewConfig()
	assert.Equal(t, "/usr/local/bin/docker-compose", cfg.ComposeBinary)
	assert.Equal(t, "flag", cfg.ConnectionMode)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.EchoOutput)
}

func TestGetEnvBoolIgnoresGarbage(t *testing.T) {
	t.Setenv("COMPOSE_ECHO_OUTPUT", "sometimes")
	assert.True(t, getEnvBool("COMPOSE_ECHO_OUTPUT", true))
	assert.False(t, getEnvBool("COMPOSE_ECHO_OUTPUT", false))
}
