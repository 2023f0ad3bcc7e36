/*Package daemon assembles a complete skywatchd process from a Config tree:
one supervisor (or push-based data client) per configured sensor, each
paired with the Processor its sensor type requires and writing to a single
shared Topics sink. It plays the role multiserver.Config.BuildMux plays for
golaborate's HTTP servers, translating a flat configuration document into a
running set of device objects, except the product here is a set of
background lifecycles rather than an http.Handler tree.
*/
package daemon

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/comm"
	"github.jpl.nasa.gov/ems/skywatch/config"
	"github.jpl.nasa.gov/ems/skywatch/controller"
	"github.jpl.nasa.gov/ems/skywatch/dataclient"
	"github.jpl.nasa.gov/ems/skywatch/decode"
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/supervisor"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// Config is the top-level daemon configuration: every sensor this process
// owns, plus the address on which it serves the controller protocol to a
// remote aggregator. A
// cmd/skywatchd wiring assembles this from config.Process's file paths; the
// daemon package itself has no opinion on how the slices were loaded.
type Config struct {
	// ListenAddr, when non-empty, starts a controller.Server serving one
	// remote aggregator connection at a time. The server opens the devices
	// named in that client's configure request, with the same transport
	// and decoder construction as local devices; it does not serve Devices.
	ListenAddr string

	Devices           []config.Device
	TCPSensors        []config.TCPSensor
	SNMPDevices       []config.SNMPDevice
	SpectrumAnalyzers []config.SpectrumAnalyzer
	ThermalScanners   []config.ThermalScanner
	ControllerClients []config.ControllerClient
}

// lifecycle is the common Start/Stop surface every dataclient variant
// built in this package exposes.
type lifecycle interface {
	Start()
	Stop(grace time.Duration)
}

// Daemon owns every running sensor lifecycle this process was configured
// with. Close tears all of them down.
type Daemon struct {
	logger *log.Logger

	supervisors []*supervisor.Supervisor
	clients     []lifecycle
	server      *controller.Server
	serveErrCh  chan error
}

// Build constructs a Daemon from cfg, opening every locally-owned device's
// transport, starting every data client's background lifecycle, and, if
// cfg.ListenAddr is set, beginning to serve the controller protocol in the
// background. On any construction error, everything
// already started is torn down before the error is returned.
func Build(cfg Config, tp topics.Topics, logger *log.Logger) (*Daemon, error) {
	if logger == nil {
		logger = log.Default()
	}
	d := &Daemon{logger: logger}

	for _, dev := range cfg.Devices {
		sup, err := buildLocalSupervisor(dev, tp, logger)
		if err != nil {
			d.Close(5 * time.Second)
			return nil, fmt.Errorf("daemon: device %q: %w", dev.Name, err)
		}
		if err := sup.Open(); err != nil {
			d.Close(5 * time.Second)
			return nil, fmt.Errorf("daemon: device %q: open: %w", dev.Name, err)
		}
		d.supervisors = append(d.supervisors, sup)
	}

	for _, tc := range cfg.TCPSensors {
		c, err := dataclient.NewTCPSensorClient(tc, tp, logger)
		if err != nil {
			d.Close(5 * time.Second)
			return nil, fmt.Errorf("daemon: tcp sensor %q: %w", tc.Name, err)
		}
		c.Start()
		d.clients = append(d.clients, c)
	}

	for _, sc := range cfg.SNMPDevices {
		c, err := dataclient.NewSNMPClient(dataclient.SNMPConfig{
			Host:            sc.Host,
			Port:            sc.Port,
			Community:       sc.SNMPCommunity,
			DeviceName:      sc.DeviceName,
			DeviceType:      sc.DeviceType,
			MaxReadTimeouts: sc.MaxReadTimeouts,
			PollInterval:    time.Duration(sc.PollInterval * float64(time.Second)),
			Topics:          tp,
			Logger:          logger,
		})
		if err != nil {
			d.Close(5 * time.Second)
			return nil, fmt.Errorf("daemon: snmp device %q: %w", sc.DeviceName, err)
		}
		c.Start()
		d.clients = append(d.clients, c)
	}

	for _, sa := range cfg.SpectrumAnalyzers {
		c := dataclient.NewSpectrumClient(dataclient.SpectrumConfig{
			Host:            sa.Host,
			Port:            sa.Port,
			ConnectTimeout:  time.Duration(sa.ConnectTimeout * float64(time.Second)),
			ReadTimeout:     time.Duration(sa.ReadTimeout * float64(time.Second)),
			MaxReadTimeouts: sa.MaxReadTimeouts,
			Location:        sa.Location,
			SensorName:      sa.SensorName,
			PollInterval:    time.Duration(sa.PollInterval * float64(time.Second)),
			FreqStartValue:  sa.FreqStartValue,
			FreqStartUnit:   sa.FreqStartUnit,
			FreqStopValue:   sa.FreqStopValue,
			FreqStopUnit:    sa.FreqStopUnit,
			Topics:          tp,
			Logger:          logger,
		})
		c.Start()
		d.clients = append(d.clients, c)
	}

	for _, ts := range cfg.ThermalScanners {
		c := dataclient.NewThermalClient(dataclient.ThermalConfig{
			Host:            ts.Host,
			Port:            ts.Port,
			ConnectTimeout:  time.Duration(ts.ConnectTimeout * float64(time.Second)),
			ReadTimeout:     time.Duration(ts.ReadTimeout * float64(time.Second)),
			MaxReadTimeouts: ts.MaxReadTimeouts,
			Location:        ts.Location,
			SensorName:      ts.SensorName,
			Topics:          tp,
			Logger:          logger,
		})
		c.Start()
		d.clients = append(d.clients, c)
	}

	for _, cc := range cfg.ControllerClients {
		wire, err := json.Marshal(cc.Devices)
		if err != nil {
			d.Close(5 * time.Second)
			return nil, fmt.Errorf("daemon: controller client %s: encode devices: %w", cc.Host, err)
		}
		c := dataclient.NewControllerDataClient(dataclient.ControllerClientConfig{
			Addr:            fmt.Sprintf("%s:%d", cc.Host, cc.Port),
			Devices:         cc.Devices,
			DevicesWire:     wire,
			MaxReadTimeouts: cc.MaxReadTimeouts,
			ConnectTimeout:  time.Duration(cc.ConnectTimeout * float64(time.Second)),
			NumSamples:      cc.NumSamples,
			SafeInterval:    time.Duration(cc.SafeInterval * float64(time.Second)),
			Threshold:       cc.Threshold,
			Topics:          tp,
			Logger:          logger,
		})
		c.Start()
		d.clients = append(d.clients, c)
	}

	if cfg.ListenAddr != "" {
		d.server = controller.NewServer(func(dev config.Device) (*comm.Device, decode.Decoder, error) {
			return openLocalDevice(dev)
		}, logger)
		d.serveErrCh = make(chan error, 1)
		go func() {
			d.serveErrCh <- d.server.Serve(cfg.ListenAddr)
		}()
	}

	return d, nil
}

// buildLocalSupervisor constructs the comm.Device, decode.Decoder, and
// process.Processor for a locally-owned device and wraps them in a
// supervisor.Supervisor that writes every decoded reading to tp.
func buildLocalSupervisor(dev config.Device, tp topics.Topics, logger *log.Logger) (*supervisor.Supervisor, error) {
	transport, dec, err := openLocalDevice(dev)
	if err != nil {
		return nil, err
	}
	proc, err := newProcessorFor(dev, tp)
	if err != nil {
		return nil, err
	}
	return supervisor.New(supervisor.Config{
		SensorName: dev.Name,
		Device:     transport,
		Decoder:    dec,
		Logger:     logger,
		Callback: func(r telemetry.Reading) {
			proc.Process(r)
		},
	}), nil
}

// openLocalDevice builds the transport and decoder for a configured local
// device without opening the transport; the caller (a supervisor, or a
// controller.Server configure request) decides when to call Open.
func openLocalDevice(dev config.Device) (*comm.Device, decode.Decoder, error) {
	setup := comm.Setup{
		Type:       dev.DeviceType,
		SerialPort: dev.SerialPort,
		BaudRate:   dev.BaudRate,
	}
	if dev.DeviceType == sensortype.FTDI {
		vendor, product, err := parseFTDIID(dev.FTDIID)
		if err != nil {
			return nil, nil, fmt.Errorf("daemon: device %q: %w", dev.Name, err)
		}
		setup.FTDIVendor = vendor
		setup.FTDIProd = product
	}
	dec, err := decode.New(dev.SensorType, decode.Options{NumChannels: dev.Channels})
	if err != nil {
		return nil, nil, err
	}
	return comm.NewDevice(setup, 0), dec, nil
}

// parseFTDIID parses the "vvvv:pppp" hex vendor:product form a device file
// carries for an FTDI device.
func parseFTDIID(id string) (vendor, product uint16, err error) {
	parts := strings.SplitN(id, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("ftdi_id %q: want vendor:product in hex", id)
	}
	v, err := strconv.ParseUint(parts[0], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("ftdi_id %q: vendor: %w", id, err)
	}
	p, err := strconv.ParseUint(parts[1], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("ftdi_id %q: product: %w", id, err)
	}
	return uint16(v), uint16(p), nil
}

// Close stops every running supervisor and data client, and the controller
// server if one was started, waiting up to grace for each.
func (d *Daemon) Close(grace time.Duration) {
	for _, sup := range d.supervisors {
		if err := sup.Close(); err != nil {
			d.logger.Printf("daemon: closing supervisor: %v", err)
		}
	}
	for _, c := range d.clients {
		c.Stop(grace)
	}
	if d.server != nil {
		d.server.Close()
		<-d.serveErrCh
	}
}
