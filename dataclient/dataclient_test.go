package dataclient

import (
	"context"
	"fmt"
	"log"
	"testing"
	"time"
)

// TestClientRunTerminatesAfterMaxReadTimeouts pins testable property #8: a
// run task that sees MaxReadTimeouts consecutive ReadOnce failures within one
// connection disconnects and terminates instead of reconnecting forever.
func TestClientRunTerminatesAfterMaxReadTimeouts(t *testing.T) {
	var disconnects int
	c := New(Config{
		Name:            "test",
		MaxReadTimeouts: 3,
		ConnectTimeout:  time.Hour,
		RateLimit:       time.Millisecond,
		Logger:          log.Default(),
		Connect:         func(ctx context.Context) error { return nil },
		Disconnect:      func() { disconnects++ },
		ReadOnce:        func(ctx context.Context) error { return fmt.Errorf("boom") },
	})

	c.Start()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		running := c.running
		c.mu.Unlock()
		if !running {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	c.mu.Lock()
	running := c.running
	c.mu.Unlock()
	if running {
		t.Fatal("expected run task to terminate after MaxReadTimeouts consecutive failures")
	}
	if !c.TimedOut {
		t.Fatal("expected TimedOut to be set")
	}
	if disconnects != 1 {
		t.Fatalf("expected exactly one Disconnect call, got %d", disconnects)
	}
}

// TestClientRunKeepsRunningOnTransientFailures verifies that isolated read
// failures (fewer than MaxReadTimeouts in a row) do not tear down the
// connection, and that the client keeps running.
func TestClientRunKeepsRunningOnTransientFailures(t *testing.T) {
	var reads int
	c := New(Config{
		Name:            "test",
		MaxReadTimeouts: 5,
		ConnectTimeout:  time.Hour,
		RateLimit:       time.Millisecond,
		Logger:          log.Default(),
		Connect:         func(ctx context.Context) error { return nil },
		Disconnect:      func() {},
		ReadOnce: func(ctx context.Context) error {
			reads++
			if reads%2 == 0 {
				return fmt.Errorf("transient")
			}
			return nil
		},
	})

	c.Start()
	time.Sleep(100 * time.Millisecond)

	c.mu.Lock()
	running := c.running
	c.mu.Unlock()
	if !running {
		t.Fatal("expected client to still be running after transient failures")
	}
	if c.TimedOut {
		t.Fatal("did not expect TimedOut to be set")
	}
	c.Stop(time.Second)
}
