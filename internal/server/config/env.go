package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type envConfig struct {
	EndpointAddrGRPC            string        `env:"GRPC_ADDRESS"`
	DatabaseDSN                 string        `env:"DATABASE_DSN"`
	SecretKey                   string        `env:"SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `env:"ACCESS_TOKEN_TTL"`
	LogLevel                    string        `env:"LOG_LEVEL"`
}

// parseEnv overrides Config with any environment variable that is set.
func parseEnv(config *Config) error {
	var fromEnv envConfig
	if err := env.Parse(&fromEnv); err != nil {
		return err
	}

	if fromEnv.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = fromEnv.EndpointAddrGRPC
	}
	if fromEnv.DatabaseDSN != "" {
		config.DatabaseDSN = fromEnv.DatabaseDSN
	}
	if fromEnv.SecretKey != "" {
		config.SecretKey = fromEnv.SecretKey
	}
	if fromEnv.AccessTokenValidityDuration != 0 {
		config.AccessTokenValidityDuration = fromEnv.AccessTokenValidityDuration
	}
	if fromEnv.LogLevel != "" {
		config.LogLevel = fromEnv.LogLevel
	}
	return nil
}
