package controller

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"sync"

	"github.jpl.nasa.gov/ems/skywatch/comm"
	"github.jpl.nasa.gov/ems/skywatch/config"
	"github.jpl.nasa.gov/ems/skywatch/decode"
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/supervisor"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
)

// state is the server's own configure/start bookkeeping, distinct from the
// per-device DeviceLifecycle each supervisor runs internally.
type state int

const (
	stateCreated state = iota
	stateStarted
)

// DeviceOpener builds the transport and decoder for one configured device.
// The controller package has no opinion on FTDI/serial specifics; a
// skywatchd wiring supplies this from the comm/decode packages directly.
type DeviceOpener func(d config.Device) (*comm.Device, decode.Decoder, error)

// Server is a remote aggregator: it accepts one client connection at a
// time, dispatches configure/start/stop/disconnect/exit commands, and
// forwards every supervised device's readings to that connection as
// telemetry frames.
type Server struct {
	Logger *log.Logger
	Opener DeviceOpener

	mu          sync.Mutex
	state       state
	supervisors map[string]*supervisor.Supervisor

	connMu sync.Mutex
	conn   net.Conn

	listener net.Listener
	exitCh   chan struct{}
}

// NewServer constructs a Server. opener must be supplied; it is how the
// server turns a configure request's device entries into live transports.
func NewServer(opener DeviceOpener, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Opener:      opener,
		Logger:      logger,
		supervisors: make(map[string]*supervisor.Supervisor),
		exitCh:      make(chan struct{}),
	}
}

// Serve accepts connections on addr until an "exit" command is received or
// the listener is closed. Only one client is served at a time: connections
// are handled in turn, and the next one is not accepted until the current
// one ends.
func (s *Server) Serve(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("controller: listen %s: %w", addr, err)
	}
	s.listener = ln
	defer ln.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.exitCh:
				return nil
			default:
				return fmt.Errorf("controller: accept: %w", err)
			}
		}

		s.connMu.Lock()
		busy := s.conn != nil
		if !busy {
			s.conn = conn
		}
		s.connMu.Unlock()
		if busy {
			conn.Close()
			continue
		}

		s.handleConn(conn)

		select {
		case <-s.exitCh:
			return nil
		default:
		}
	}
}

// Close stops Serve and releases every supervised device.
func (s *Server) Close() {
	select {
	case <-s.exitCh:
	default:
		close(s.exitCh)
	}
	if s.listener != nil {
		s.listener.Close()
	}
	s.mu.Lock()
	for _, sup := range s.supervisors {
		sup.Close()
	}
	s.mu.Unlock()
}

func (s *Server) handleConn(conn net.Conn) {
	defer func() {
		s.connMu.Lock()
		if s.conn == conn {
			s.conn = nil
		}
		s.connMu.Unlock()
		conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var req Request
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			s.Logger.Printf("controller: malformed request: %v", err)
			continue
		}
		if s.dispatch(req) {
			return
		}
	}
}

// dispatch handles one request and reports whether the connection should
// be torn down (disconnect or exit). A failed reply write is only logged.
func (s *Server) dispatch(req Request) (done bool) {
	switch req.Command {
	case CmdConfigure:
		s.writeReply(responseReply(s.configure(req.Parameters)))
	case CmdStart:
		s.writeReply(responseReply(s.start()))
	case CmdStop:
		s.writeReply(responseReply(s.stop()))
	case CmdDisconnect:
		return true
	case CmdExit:
		s.writeReply(responseReply(sensortype.OK))
		s.Close()
		return true
	default:
		s.Logger.Printf("controller: %v", ErrUnknownCommand{Command: req.Command})
	}
	return false
}

func (s *Server) configure(params json.RawMessage) sensortype.ResponseCode {
	var body ConfigureParameters
	if err := json.Unmarshal(params, &body); err != nil {
		s.Logger.Printf("controller: configure: %v", err)
		return sensortype.InvalidConfiguration
	}
	// The configure payload's "devices" key holds a bare array; re-wrap it
	// as {"devices": [...]} so it can go through the same strict parser
	// the device-configuration file uses.
	devices, err := parseDeviceArray(body.Devices)
	if err != nil {
		s.Logger.Printf("controller: configure: %v", err)
		return sensortype.InvalidConfiguration
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == stateStarted {
		return sensortype.AlreadyStarted
	}

	for _, d := range devices.Devices {
		if err := s.openDevice(d); err != nil {
			s.Logger.Printf("controller: configure: open %s: %v", d.Name, err)
			return sensortype.InvalidConfiguration
		}
	}
	s.state = stateStarted
	return sensortype.OK
}

func parseDeviceArray(raw json.RawMessage) (config.DeviceFile, error) {
	wrapped, err := json.Marshal(struct {
		Devices json.RawMessage `json:"devices"`
	}{Devices: raw})
	if err != nil {
		return config.DeviceFile{}, err
	}
	return config.ParseDeviceFile(wrapped)
}

func (s *Server) openDevice(d config.Device) error {
	dev, dec, err := s.Opener(d)
	if err != nil {
		return err
	}
	sup := supervisor.New(supervisor.Config{
		SensorName: d.Name,
		Device:     dev,
		Decoder:    dec,
		Logger:     s.Logger,
		Callback:   s.onReading,
	})
	if err := sup.Open(); err != nil {
		return err
	}
	s.supervisors[d.Name] = sup
	return nil
}

// onReading is a supervisor callback: it serializes a telemetry frame and
// writes it to whichever client is currently connected, under the
// connection's write lock. If no client is connected the frame is dropped.
func (s *Server) onReading(r telemetry.Reading) {
	frame := TelemetryFrame{
		Name:            r.SensorName,
		Timestamp:       r.Timestamp,
		ResponseCode:    r.ResponseCode,
		SensorTelemetry: []any(r.SensorTelemetry),
	}
	s.writeReply(telemetryReply(frame))
}

func (s *Server) start() sensortype.ResponseCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case stateCreated:
		return sensortype.NotConfigured
	default:
		return sensortype.AlreadyStarted
	}
}

func (s *Server) stop() sensortype.ResponseCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateStarted {
		return sensortype.NotStarted
	}
	for name, sup := range s.supervisors {
		if err := sup.Close(); err != nil {
			s.Logger.Printf("controller: stop: close %s: %v", name, err)
		}
	}
	s.supervisors = make(map[string]*supervisor.Supervisor)
	s.state = stateCreated
	return sensortype.OK
}

func (s *Server) writeReply(reply Reply) {
	b, err := json.Marshal(reply)
	if err != nil {
		s.Logger.Printf("controller: marshal reply: %v", err)
		return
	}
	b = append(b, '\n')

	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.conn == nil {
		return
	}
	if _, err := s.conn.Write(b); err != nil {
		s.Logger.Printf("controller: write reply: %v", err)
	}
}
