package config

import (
	"os"
	"strconv"

	"go.uber.org/fx"
)

type Config struct {
	ComposeBinary  string
	ConnectionMode string
	LogLevel       string
	EchoOutput     bool
}

func NewConfig() *Config {
	return &Config{
		ComposeBinary:  getEnv("COMPOSE_BINARY", "docker-compose"),
		ConnectionMode: getEnv("COMPOSE_CONNECTION_MODE", "env"),
		LogLevel:       getEnv("LOG_LEVEL", "off"),
		EchoOutput:     getEnvBool("COMPOSE_ECHO_OUTPUT", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

var Module = fx.Options(
	fx.Provide(NewConfig),
)
