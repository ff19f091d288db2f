// Package config handles configuration for the client: defaults, an optional
// JSON file (-c/-config) and command-line flags, applied in that order.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerEndpointAddr: backend gRPC address.
//   - OnlineCheckInterval: how often the backend is pinged for the status line.
//   - SessionDBPath: SQLite file holding the remembered session.
//   - RequestTimeout: upper bound for each backend call.
//   - LogLevel: diagnostics level; logs go to stderr.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	SessionDBPath       string
	RequestTimeout      time.Duration
	LogLevel            string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.SessionDBPath = "gophgate.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig reads os.Args. A bad config file or flag value panics.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
