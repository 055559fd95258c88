// Package env loads the agent's required startup configuration from the
// environment. A missing variable is a fatal error: the teacher's
// internal/pkg/cluster.Namespace() reads a single in-cluster value the same
// way; here we require four and fail fast on the first absent one.
package env

import (
	"os"

	"github.com/pkg/errors"
)

// Config holds the agent's startup configuration, read once from the
// environment.
type Config struct {
	// NodeName is this agent's NodeID, read from AGENT_NODE_NAME.
	NodeName string

	// CrictlPath is the absolute path to the container runtime CLI, read
	// from HOST_CRICTL_PATH.
	CrictlPath string

	// RuntimeEndpoint is the runtime socket URI passed to crictl, read from
	// HOST_RUNTIME_ENDPOINT.
	RuntimeEndpoint string

	// ImageEndpoint is the image-service socket URI passed to crictl, read
	// from HOST_IMAGE_ENDPOINT.
	ImageEndpoint string
}

// ErrMissing is returned, wrapped with the variable name, when a required
// environment variable is unset.
var ErrMissing = errors.New("required environment variable not set")

// Load reads and validates the agent's startup configuration.  Any missing
// variable is a fatal error per the reconciler's error taxonomy: the agent
// has no way to run without it.
func Load() (Config, error) {
	cfg := Config{}
	vars := []struct {
		name string
		dest *string
	}{
		{"AGENT_NODE_NAME", &cfg.NodeName},
		{"HOST_CRICTL_PATH", &cfg.CrictlPath},
		{"HOST_RUNTIME_ENDPOINT", &cfg.RuntimeEndpoint},
		{"HOST_IMAGE_ENDPOINT", &cfg.ImageEndpoint},
	}

	for _, v := range vars {
		value, ok := os.LookupEnv(v.name)
		if !ok || value == "" {
			return Config{}, errors.Wrap(ErrMissing, v.name)
		}
		*v.dest = value
	}
	return cfg, nil
}
