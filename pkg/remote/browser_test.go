package remote

import (
	"context"
	"testing"
	"time"

	"github.com/enbility/zeroconf/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceEntry(instance string) *zeroconf.ServiceEntry {
	e := &zeroconf.ServiceEntry{}
	e.Instance = instance
	return e
}

func instanceRuntime(e *zeroconf.ServiceEntry) *Runtime {
	return &Runtime{Instance: e.Instance}
}

func receive(t *testing.T, out <-chan *Runtime) *Runtime {
	t.Helper()
	select {
	case rt, ok := <-out:
		require.True(t, ok, "output closed")
		return rt
	case <-time.After(time.Second):
		t.Fatal("no runtime forwarded")
		return nil
	}
}

func requireClosed(t *testing.T, out <-chan *Runtime) {
	t.Helper()
	select {
	case rt, ok := <-out:
		require.False(t, ok, "unexpected runtime %v", rt)
	case <-time.After(time.Second):
		t.Fatal("output not closed")
	}
}

func TestForwardResendsAfterRemoval(t *testing.T) {
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)
	out := make(chan *Runtime)
	go forward(context.Background(), entries, removed, out, instanceRuntime)

	entries <- serviceEntry("a")
	assert.Equal(t, "a", receive(t, out).Instance)

	// Duplicates are dropped until the instance is removed.
	entries <- serviceEntry("a")
	removed <- serviceEntry("a")
	entries <- serviceEntry("a")
	assert.Equal(t, "a", receive(t, out).Instance)

	close(entries)
	requireClosed(t, out)
}

func TestForwardKeepsRunningAfterRemovedCloses(t *testing.T) {
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)
	out := make(chan *Runtime)
	go forward(context.Background(), entries, removed, out, instanceRuntime)

	close(removed)
	entries <- serviceEntry("a")
	assert.Equal(t, "a", receive(t, out).Instance)
	entries <- serviceEntry("a")
	entries <- serviceEntry("b")
	assert.Equal(t, "b", receive(t, out).Instance)

	close(entries)
	requireClosed(t, out)
}

func TestForwardStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	removed := make(chan *zeroconf.ServiceEntry)
	close(removed)
	out := make(chan *Runtime)
	go forward(ctx, make(chan *zeroconf.ServiceEntry), removed, out, instanceRuntime)

	cancel()
	requireClosed(t, out)
}

func TestForwardSkipsUnconvertible(t *testing.T) {
	entries := make(chan *zeroconf.ServiceEntry)
	out := make(chan *Runtime)
	go forward(context.Background(), entries, nil, out, func(e *zeroconf.ServiceEntry) *Runtime {
		if e.Instance == "bad" {
			return nil
		}
		return instanceRuntime(e)
	})

	entries <- serviceEntry("bad")
	entries <- serviceEntry("good")
	assert.Equal(t, "good", receive(t, out).Instance)

	close(entries)
	requireClosed(t, out)
}
