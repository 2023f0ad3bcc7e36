/*Package comm adapts golaborate's comm.RemoteDevice pattern — an
embeddable, mutex-guarded io.ReadWriteCloser wrapper with an exponential
backoff on connect — to sensor devices whose line terminator is a
decoder-specific byte sequence (not always a single CR) rather than a
single fixed byte.

A Device owns exactly one physical transport: TCP, a tarm/serial port, or
an FTDI/USB endpoint pair opened through google/gousb. The device
supervisor (package supervisor) is the only caller; Device makes no
promises about concurrent use beyond the locking required for a single
open/read/write/close life cycle.
*/
package comm

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
)

// ErrNotConnected is returned by ReadLine or Write when the device's
// transport has not been opened (or has already been closed).
var ErrNotConnected = errors.New("comm: not connected to remote")

// Setup describes how to reach one physical device: exactly one of FTDI,
// SerialPort, or Host must be populated, consistent with sensortype.DeviceType.
type Setup struct {
	Type       sensortype.DeviceType
	Host       string
	Port       int
	SerialPort string
	BaudRate   int
	FTDIVendor uint16
	FTDIProd   uint16
}

// Addr renders the dial target for logging purposes.
func (s Setup) Addr() string {
	switch s.Type {
	case sensortype.Serial:
		return s.SerialPort
	case sensortype.FTDI:
		return fmt.Sprintf("ftdi:%04x:%04x", s.FTDIVendor, s.FTDIProd)
	default:
		return fmt.Sprintf("%s:%d", s.Host, s.Port)
	}
}

// Device is a single physical transport, opened lazily and reopened with
// an exponential backoff, mirroring golaborate's comm.RemoteDevice.Open.
type Device struct {
	mu sync.Mutex

	setup   Setup
	timeout time.Duration

	conn   io.ReadWriteCloser
	reader *LineReader
}

// NewDevice constructs a Device for setup with the given per-operation
// timeout. It does not open the transport; call Open first.
func NewDevice(setup Setup, timeout time.Duration) *Device {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Device{setup: setup, timeout: timeout}
}

// Open establishes the transport if it is not already open, retrying with
// an exponential backoff capped at connectTimeout. A connection refused
// error is returned immediately without retrying, matching golaborate's
// treatment of NKT sources: thrashing a refusing remote wastes time a
// timeout would not.
func (d *Device) Open(connectTimeout time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn != nil {
		return nil
	}

	wasTimeout := false
	op := func() error {
		conn, err := dial(d.setup, d.timeout)
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "refused") {
				return backoff.Permanent(err)
			}
			wasTimeout = true
			return err
		}
		d.conn = conn
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 25 * time.Millisecond
	bo.RandomizationFactor = 0
	bo.Multiplier = 2
	bo.MaxInterval = time.Second
	bo.MaxElapsedTime = connectTimeout

	err := backoff.Retry(op, bo)
	if err == nil {
		d.reader = NewLineReader(d.conn)
		return nil
	}
	if wasTimeout {
		return fmt.Errorf("comm: connection timeout to %s", d.setup.Addr())
	}
	return fmt.Errorf("comm: connecting to %s: %w", d.setup.Addr(), err)
}

// Close closes the transport, if open.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	d.reader = nil
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "closed") {
		return nil
	}
	return err
}

// ReadLine reads up to and including terminator, applies readTimeout as a
// deadline when the underlying transport supports deadlines, and returns
// the line with the terminator stripped.
func (d *Device) ReadLine(terminator []byte, readTimeout time.Duration) ([]byte, error) {
	d.mu.Lock()
	conn, reader := d.conn, d.reader
	d.mu.Unlock()
	if conn == nil {
		return nil, ErrNotConnected
	}
	if nc, ok := conn.(net.Conn); ok && readTimeout > 0 {
		nc.SetReadDeadline(time.Now().Add(readTimeout))
	}
	return reader.ReadUntil(terminator)
}

// Write sends b verbatim; most sensor devices in this package are
// read-only telemetry sources, but the controller protocol and a handful
// of polled sensors need to send a command first.
func (d *Device) Write(b []byte) error {
	d.mu.Lock()
	conn := d.conn
	d.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	if nc, ok := conn.(net.Conn); ok {
		nc.SetWriteDeadline(time.Now().Add(d.timeout))
	}
	_, err := conn.Write(b)
	return err
}

func dial(s Setup, timeout time.Duration) (io.ReadWriteCloser, error) {
	switch s.Type {
	case sensortype.Serial:
		return SerialOpen(s.SerialPort, s.BaudRate)
	case sensortype.FTDI:
		return FTDIOpen(s.FTDIVendor, s.FTDIProd)
	default:
		return TCPDial(fmt.Sprintf("%s:%d", s.Host, s.Port), timeout)
	}
}
