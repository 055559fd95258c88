// Package crictl probes the container runtime on this node for the set of
// usage slots currently held by live containers.
package crictl

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	"github.com/romoh/akri/internal/pkg/metrics"
	"github.com/romoh/akri/internal/pkg/reconcileerr"
	"github.com/romoh/akri/internal/pkg/slots"
)

// Query is the abstract probe the reconciler uses to discover which slots
// are actively used by containers on this node.
//go:generate mockgen -destination=mocks/mock_query.go -package=mocks . Query
type Query interface {
	GetNodeSlots(ctx context.Context) (slots.Set, error)
}

// CLIQuery calls crictl to list containers and extracts their usage slots
// from the well-known annotation.
type CLIQuery struct {
	// CrictlPath is the absolute path to the crictl binary.
	CrictlPath string
	// RuntimeEndpoint is passed to crictl's --runtime-endpoint flag.
	RuntimeEndpoint string
	// ImageEndpoint is passed to crictl's --image-endpoint flag.
	ImageEndpoint string
}

// runCommand builds the crictl invocation.  It is a variable so tests can
// swap in a fake child process without a real crictl binary.
var runCommand = func(ctx context.Context, crictlPath, runtimeEndpoint, imageEndpoint string) *exec.Cmd {
	return exec.CommandContext(ctx, crictlPath,
		"--runtime-endpoint", runtimeEndpoint,
		"--image-endpoint", imageEndpoint,
		"ps", "-v", "--output", "json",
	)
}

// GetNodeSlots calls crictl to query the container runtime in search of
// active containers and extracts their usage slots.
//
// The child process is bound to ctx: cancelling ctx kills the child and
// releases its handle, so callers never leak a process on cancellation.
func (q *CLIQuery) GetNodeSlots(ctx context.Context) (slots.Set, error) {
	funcName := "get_node_slots"
	start := time.Now()
	defer func() {
		metrics.ReconcileDuration.Observe(funcName, time.Since(start))
	}()

	cmd := runCommand(ctx, q.CrictlPath, q.RuntimeEndpoint, q.ImageEndpoint)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		wrapped := errors.Wrap(err, "failed to call crictl: "+stderr.String())
		return nil, reconcileerr.New(reconcileerr.Transient, wrapped)
	}

	result, err := slots.Parse(stdout.Bytes())
	if err != nil {
		return nil, reconcileerr.New(reconcileerr.Transient, err)
	}
	return result, nil
}
