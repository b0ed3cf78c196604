// Package config handles configuration for the CLI client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the homeledger client.
//
// Fields:
//   - ServerEndpointAddr: address of the gRPC backend.
//   - DataDir: directory for the local SQLite database (empty means the
//     user config dir is used).
//   - OnlineCheckInterval: how often connectivity is probed with Ping.
//   - RequestTimeout: per-RPC deadline for unary calls.
type Config struct {
	ServerEndpointAddr  string
	DataDir             string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DataDir = ""
	c.OnlineCheckInterval = 5 * time.Second
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
