// Package supervisor runs the agent's independent long-lived loops side by
// side; as soon as any one of them stops, it stops the rest and returns
// their errors, and main.go then exits the process.
package supervisor

import (
	"context"
	"sync"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-multierror"
)

// Runnable is one of the agent's independent loops. It must return promptly
// once ctx is cancelled.
type Runnable func(ctx context.Context) error

// Group runs a fixed set of Runnables and reports the first one to stop.
type Group struct {
	log logr.Logger
	rs  []namedRunnable
}

type namedRunnable struct {
	name string
	run  Runnable
}

// New returns an empty Group.
func New(log logr.Logger) *Group {
	return &Group{log: log}
}

// Add registers a named Runnable. Must be called before Run.
func (g *Group) Add(name string, r Runnable) {
	g.rs = append(g.rs, namedRunnable{name: name, run: r})
}

// Run starts every registered Runnable and blocks until one of them returns,
// for any reason, including ctx being cancelled. It then cancels the shared
// context so every other Runnable unwinds, waits for all of them to exit,
// and returns a multierror accumulating every non-nil result so a second
// simultaneous failure isn't silently dropped.
func (g *Group) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan namedResult, len(g.rs))
	var wg sync.WaitGroup
	for _, r := range g.rs {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := r.run(ctx)
			results <- namedResult{name: r.name, err: err}
		}()
	}

	first := <-results
	g.log.Info("runnable stopped, shutting down the rest", "name", first.name, "error", first.err)
	cancel()

	var errs *multierror.Error
	if first.err != nil {
		errs = multierror.Append(errs, first.err)
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	for r := range results {
		if r.err != nil {
			g.log.Error(r.err, "runnable stopped during shutdown", "name", r.name)
			errs = multierror.Append(errs, r.err)
		}
	}
	return errs.ErrorOrNil()
}

type namedResult struct {
	name string
	err  error
}
