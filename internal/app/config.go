package app

import (
	"errors"
	"fmt"
)

// NodeLast selects the last node the builder produced.
const NodeLast = -1

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPaths are graph configuration files or directories. When empty the
	// built-in dummy configuration is used.
	ConfigPaths []string
	// Node is the node to evaluate, or NodeLast.
	Node int

	EmitConfig bool
	ServePort  int

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Node < NodeLast {
		return nil, fmt.Errorf("invalid node %d: must be a node id or %d for the last node", cfg.Node, NodeLast)
	}
	if cfg.ServePort < 0 || cfg.ServePort > 65535 {
		return nil, fmt.Errorf("invalid serve port %d", cfg.ServePort)
	}
	if cfg.EmitConfig && cfg.ServePort > 0 {
		return nil, errors.New("emit-config and serve-port cannot be used together")
	}
	cfg.ConfigPaths = append([]string(nil), cfg.ConfigPaths...)
	return &cfg, nil
}
