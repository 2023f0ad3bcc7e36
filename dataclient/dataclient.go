/*Package dataclient implements the long-running agents that own one
logical sensor connection end to end: connect (retrying after a cool-down
while connecting fails), read on a rate-limited cadence, give up and
disconnect after too many consecutive read failures, and disconnect
cleanly on request. Client is the shared read-loop lifecycle that
SNMPClient, SpectrumClient, ThermalClient, and TCPSensorClient each wrap
(ControllerDataClient runs its own push-based lifecycle), the same way
golaborate's comm.RemoteDevice centralizes connect/backoff for its HTTP
instrument wrappers rather than each one reimplementing it.

The rate limiter uses golang.org/x/time/rate, the same package nkt.go
reaches for to pace telegram writes to the NKT SuperK (rate.NewLimiter +
limiter.Wait(ctx)) — reused here to pace reads instead of writes.
*/
package dataclient

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRateLimit is the minimum spacing between successive reads when a
// client's configuration leaves RateLimit at zero.
const DefaultRateLimit = time.Second

// MinRateLimit is the floor a configured RateLimit is clamped to.
const MinRateLimit = 50 * time.Millisecond

// Config parameterizes the base read-loop lifecycle. Connect, Disconnect,
// and ReadOnce are supplied by each concrete client (SNMPClient,
// SpectrumClient, ...); Client only sequences their calls and owns the
// connect-retry/read-timeout/rate-limit policy around them.
type Config struct {
	Name            string
	MaxReadTimeouts int
	ConnectTimeout  time.Duration
	ReadTimeout     time.Duration
	RateLimit       time.Duration
	Connect         func(ctx context.Context) error
	Disconnect      func()
	ReadOnce        func(ctx context.Context) error
	Logger          *log.Logger
}

func (c *Config) applyDefaults() {
	if c.MaxReadTimeouts <= 0 {
		c.MaxReadTimeouts = 5
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 60 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 5 * time.Second
	}
	if c.RateLimit <= 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.RateLimit < MinRateLimit {
		c.RateLimit = MinRateLimit
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}

// Client drives Config's Connect/ReadOnce/Disconnect functions through the
// base read-loop lifecycle: connect (sleeping connect_timeout and retrying
// while Connect fails), then read until Stop is called; after
// max_read_timeouts consecutive read failures it sets TimedOut, disconnects,
// and ends without reconnecting.
type Client struct {
	cfg     Config
	limiter *rate.Limiter

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool

	// TimedOut is set once the lifecycle gives up after MaxReadTimeouts
	// consecutive failures within one connection, mirroring the
	// "timeout-event" the original lifecycle task raises instead of
	// silently retrying forever.
	TimedOut bool
}

// New constructs a Client from cfg, applying defaults for any zero-valued
// timing parameter.
func New(cfg Config) *Client {
	cfg.applyDefaults()
	return &Client{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(cfg.RateLimit), 1),
	}
}

// Start begins the lifecycle task in the background. Calling Start twice
// on an already-running Client is a no-op.
func (c *Client) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	c.running = true
	go c.run(ctx)
}

// Stop requests the lifecycle task to end and waits up to grace for it to
// do so before returning; it does not force-cancel beyond ctx cancellation,
// matching "await the run task with a bounded grace period, then hard-cancel"
// — the hard-cancel is the same ctx.Done() signal, already delivered.
func (c *Client) Stop(grace time.Duration) {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(grace):
		c.cfg.Logger.Printf("dataclient[%s]: stop grace period exceeded", c.cfg.Name)
	}
}

func (c *Client) run(ctx context.Context) {
	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		close(c.done)
	}()

	consecutiveTimeouts := 0
	for {
		if ctx.Err() != nil {
			return
		}
		if err := c.cfg.Connect(ctx); err != nil {
			c.cfg.Logger.Printf("dataclient[%s]: connect: %v", c.cfg.Name, err)
			if !c.sleepOrDone(ctx, c.cfg.ConnectTimeout) {
				return
			}
			continue
		}

		consecutiveTimeouts = 0
		for ctx.Err() == nil {
			if err := c.limiter.Wait(ctx); err != nil {
				break
			}
			if err := c.cfg.ReadOnce(ctx); err != nil {
				consecutiveTimeouts++
				c.cfg.Logger.Printf("dataclient[%s]: read: %v", c.cfg.Name, err)
				if consecutiveTimeouts >= c.cfg.MaxReadTimeouts {
					c.TimedOut = true
					c.cfg.Disconnect()
					return
				}
				continue
			}
			consecutiveTimeouts = 0
		}

		c.cfg.Disconnect()
		if ctx.Err() != nil {
			return
		}
		if !c.sleepOrDone(ctx, c.cfg.ConnectTimeout) {
			return
		}
	}
}

// sleepOrDone sleeps for d or until ctx is cancelled, reporting whether the
// sleep completed without cancellation.
func (c *Client) sleepOrDone(ctx context.Context, d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}

// ErrNotRunning is returned by operations that require a started Client.
var ErrNotRunning = fmt.Errorf("dataclient: client is not running")
