// Package configwatch is a placeholder for the peripheral configuration-file
// watch loop named but not specified by spec.md §2/§4.5. It exists only so
// the Supervisor has a Runnable to register for it later.
package configwatch

import "context"

// Run blocks until ctx is cancelled. A real implementation would watch a
// mounted config file and reload on change.
func Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}
