package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
)

// TelemetryHandler is invoked for every telemetry frame the server sends,
// including frames that arrive while a command reply is still outstanding.
type TelemetryHandler func(TelemetryFrame)

// Client is the controller-protocol counterpart to Server: it holds one
// TCP connection, sends commands one at a time, and correlates each
// command with its response while routing telemetry frames to Handler as
// they interleave — a response frame with no command outstanding is
// dropped rather than misapplied to the next SendCommand call.
type Client struct {
	Handler TelemetryHandler

	conn net.Conn

	writeMu sync.Mutex

	cmdMu     sync.Mutex // serializes SendCommand calls: one outstanding at a time
	pending   chan sensortype.ResponseCode
	pendingMu sync.Mutex

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to addr and starts the background frame reader. handler is
// invoked for every telemetry frame the connection receives; it may be nil
// if the caller only issues commands and never expects telemetry.
func Dial(ctx context.Context, addr string, handler TelemetryHandler) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("controller: dial %s: %w", addr, err)
	}
	c := &Client{conn: conn, Handler: handler, done: make(chan struct{})}
	go c.readLoop()
	return c, nil
}

func (c *Client) readLoop() {
	defer close(c.done)
	scanner := bufio.NewScanner(c.conn)
	for scanner.Scan() {
		var reply Reply
		if err := json.Unmarshal(scanner.Bytes(), &reply); err != nil {
			continue
		}
		switch {
		case reply.IsTelemetry():
			if c.Handler != nil {
				c.Handler(*reply.Telemetry)
			}
		case reply.IsResponse():
			c.pendingMu.Lock()
			ch := c.pending
			c.pendingMu.Unlock()
			if ch != nil {
				select {
				case ch <- *reply.Response:
				default:
				}
			}
			// A response with no command outstanding (ch == nil) is
			// logged and ignored per the correlation rule; this client
			// has no logger of its own, so it is simply dropped.
		}
	}
}

// SendCommand issues command with the given parameters and blocks for the
// matching response, or until ctx is done. Only one command may be
// outstanding at a time; concurrent callers are serialized.
func (c *Client) SendCommand(ctx context.Context, cmd Command, parameters any) (sensortype.ResponseCode, error) {
	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()

	var params json.RawMessage
	if parameters != nil {
		b, err := json.Marshal(parameters)
		if err != nil {
			return 0, fmt.Errorf("controller: marshal parameters: %w", err)
		}
		params = b
	}

	ch := make(chan sensortype.ResponseCode, 1)
	c.pendingMu.Lock()
	c.pending = ch
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		c.pending = nil
		c.pendingMu.Unlock()
	}()

	b, err := json.Marshal(Request{Command: cmd, Parameters: params})
	if err != nil {
		return 0, fmt.Errorf("controller: marshal request: %w", err)
	}
	b = append(b, '\n')

	c.writeMu.Lock()
	_, err = c.conn.Write(b)
	c.writeMu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("controller: write request: %w", err)
	}

	select {
	case code := <-ch:
		return code, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-c.done:
		return 0, fmt.Errorf("controller: connection closed while awaiting %s reply", cmd)
	}
}

// Configure sends a configure command whose parameters carry devices
// verbatim (already-marshaled device array) and returns the reply code.
func (c *Client) Configure(ctx context.Context, devices json.RawMessage) (sensortype.ResponseCode, error) {
	return c.SendCommand(ctx, CmdConfigure, ConfigureParameters{Devices: devices})
}

// Disconnect sends a disconnect command and closes the local connection.
func (c *Client) Disconnect(ctx context.Context) error {
	_, err := c.SendCommandNoWait(CmdDisconnect, nil)
	c.Close()
	return err
}

// SendCommandNoWait writes a command without waiting for a reply, used for
// disconnect/exit where the server tears down the connection instead of
// replying.
func (c *Client) SendCommandNoWait(cmd Command, parameters any) (int, error) {
	var params json.RawMessage
	if parameters != nil {
		b, err := json.Marshal(parameters)
		if err != nil {
			return 0, err
		}
		params = b
	}
	b, err := json.Marshal(Request{Command: cmd, Parameters: params})
	if err != nil {
		return 0, err
	}
	b = append(b, '\n')
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.Write(b)
}

// Close shuts down the local connection.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
	})
	return err
}

// waitClosed blocks until the read loop has exited, for tests that need to
// observe a clean server-initiated disconnect.
func (c *Client) waitClosed(timeout time.Duration) bool {
	select {
	case <-c.done:
		return true
	case <-time.After(timeout):
		return false
	}
}
