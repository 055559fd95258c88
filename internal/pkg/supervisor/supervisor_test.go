package supervisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
)

func TestGroup_Run_firstFailureStopsTheRest(t *testing.T) {
	g := New(logr.Discard())

	blockedUntilCancel := make(chan struct{})
	g.Add("failing", func(ctx context.Context) error {
		return errors.New("boom")
	})
	g.Add("long-lived", func(ctx context.Context) error {
		<-ctx.Done()
		close(blockedUntilCancel)
		return ctx.Err()
	})

	done := make(chan error, 1)
	go func() { done <- g.Run(context.Background()) }()

	select {
	case <-blockedUntilCancel:
	case <-time.After(time.Second):
		t.Fatal("long-lived runnable was never cancelled")
	}

	err := <-done
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}

func TestGroup_Run_parentCancelStopsAll(t *testing.T) {
	g := New(logr.Discard())
	g.Add("only", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after parent cancellation")
	}
}
