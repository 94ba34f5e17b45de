package app

import (
	"errors"
	"fmt"
)

// MutationOp selects which engine operation a Mutation performs.
type MutationOp int

const (
	// OpSet sets an independent stat.
	OpSet MutationOp = iota
	// OpModify adds to an independent stat.
	OpModify
	// OpAdd adds to a parameter's additive part.
	OpAdd
)

func (op MutationOp) String() string {
	switch op {
	case OpSet:
		return "set"
	case OpModify:
		return "modify"
	case OpAdd:
		return "add"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// Mutation is one requested change, applied in command-line order.
type Mutation struct {
	Op    MutationOp
	Name  string
	Value float64
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPaths []string // hcl files or directories

	Mutations []Mutation
	Preview   bool
	MaxDepth  int

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	MirrorURL       string
	MirrorNamespace string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.GraphPaths) == 0 {
		return nil, errors.New("GraphPaths is a required configuration field and cannot be empty")
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("max-depth must not be negative, got %d", cfg.MaxDepth)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck-port out of range: %d", cfg.HealthcheckPort)
	}
	if cfg.MirrorNamespace != "" && cfg.MirrorURL == "" {
		return nil, errors.New("mirror-namespace requires mirror-url")
	}
	for _, m := range cfg.Mutations {
		if m.Name == "" {
			return nil, fmt.Errorf("%s mutation has an empty stat name", m.Op)
		}
	}
	if cfg.MirrorURL != "" && cfg.MirrorNamespace == "" {
		cfg.MirrorNamespace = "/"
	}

	return &cfg, nil
}
