// Package metricssrv is a placeholder for a metrics HTTP listener. The
// collectors in internal/pkg/metrics are served by the controller-runtime
// manager's own metrics endpoint; this package serves nothing and exists
// only so the Supervisor has a Runnable to register for it.
package metricssrv

import "context"

// Run blocks until ctx is cancelled. A real implementation would listen on
// an HTTP address and serve the Prometheus registry.
func Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}
