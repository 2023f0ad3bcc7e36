package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/theckman/yacspin"

	yml "github.com/go-yaml/yaml"

	"github.jpl.nasa.gov/ems/skywatch/config"
	"github.jpl.nasa.gov/ems/skywatch/daemon"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// Version is the version number. Typically injected via ldflags with git build.
var Version = "dev"

// ConfigFileName is the YAML file setupconfig loads process-level settings
// from, the same role multiserver.yml plays for cmd/multiserver.
const ConfigFileName = "skywatchd.yml"

var k = koanf.New(".")

func setupconfig() {
	k.Load(structs.Provider(config.DefaultProcess, "koanf"), nil)
	if err := k.Load(file.Provider(ConfigFileName), yaml.Parser()); err != nil {
		errtxt := err.Error()
		if !strings.Contains(errtxt, "no such") { // file missing, who cares
			log.Fatalf("error loading config: %v", err)
		}
	}
}

func root() {
	str := `skywatchd ingests telemetry from environmental sensors and publishes
normalized, aggregated records to the configured topic sink.

Usage:
	skywatchd <command>

Commands:
	run
	help
	mkconf
	conf
	version`
	fmt.Println(str)
}

func help() {
	str := `skywatchd is configured via its .yaml file (process-level settings: bind
address, log level, and the paths to the per-sensor-kind JSON config files)
plus one JSON document per sensor kind named by those paths. For a primer on
YAML, see https://yaml.org/start.html.

The command mkconf writes the process-level file with default values; there
is no need to run it unless you want a prepopulated starting point.`
	fmt.Println(str)
}

func mkconf() {
	c := config.Process{}
	if err := k.Unmarshal("", &c); err != nil {
		log.Fatal(err)
	}
	f, err := os.Create(ConfigFileName)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := yml.NewEncoder(f).Encode(c); err != nil {
		log.Fatal(err)
	}
}

func printconf() {
	c := config.Process{}
	k.Unmarshal("", &c)
	if err := yml.NewEncoder(os.Stdout).Encode(c); err != nil {
		log.Fatal(err)
	}
}

func pversion() {
	fmt.Printf("skywatchd version %v\n", Version)
}

// readFile returns nil, nil for an empty path, so every loadX call below is
// a no-op when its process-level path was left unset.
func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	return os.ReadFile(path)
}

// buildDaemonConfig reads every process-level file path in p into the
// concrete sensor-kind slices daemon.Build expects.
func buildDaemonConfig(p config.Process) (daemon.Config, error) {
	cfg := daemon.Config{ListenAddr: p.BindAddr}

	if b, err := readFile(p.DeviceConfigPath); err != nil {
		return cfg, fmt.Errorf("skywatchd: reading %s: %w", p.DeviceConfigPath, err)
	} else if b != nil {
		f, err := config.ParseDeviceFile(b)
		if err != nil {
			return cfg, err
		}
		cfg.Devices = f.Devices
	}

	if b, err := readFile(p.TCPSensorConfigPath); err != nil {
		return cfg, fmt.Errorf("skywatchd: reading %s: %w", p.TCPSensorConfigPath, err)
	} else if b != nil {
		sensors, err := config.ParseTCPSensorsFile(b)
		if err != nil {
			return cfg, err
		}
		cfg.TCPSensors = sensors
	}

	if b, err := readFile(p.SNMPDeviceConfigPath); err != nil {
		return cfg, fmt.Errorf("skywatchd: reading %s: %w", p.SNMPDeviceConfigPath, err)
	} else if b != nil {
		devices, err := config.ParseSNMPDevicesFile(b)
		if err != nil {
			return cfg, err
		}
		cfg.SNMPDevices = devices
	}

	if b, err := readFile(p.SpectrumAnalyzerConfigPath); err != nil {
		return cfg, fmt.Errorf("skywatchd: reading %s: %w", p.SpectrumAnalyzerConfigPath, err)
	} else if b != nil {
		analyzers, err := config.ParseSpectrumAnalyzersFile(b)
		if err != nil {
			return cfg, err
		}
		cfg.SpectrumAnalyzers = analyzers
	}

	if b, err := readFile(p.ThermalScannerConfigPath); err != nil {
		return cfg, fmt.Errorf("skywatchd: reading %s: %w", p.ThermalScannerConfigPath, err)
	} else if b != nil {
		scanners, err := config.ParseThermalScannersFile(b)
		if err != nil {
			return cfg, err
		}
		cfg.ThermalScanners = scanners
	}

	if b, err := readFile(p.ControllerClientConfigPath); err != nil {
		return cfg, fmt.Errorf("skywatchd: reading %s: %w", p.ControllerClientConfigPath, err)
	} else if b != nil {
		clients, err := config.ParseControllerClientsFile(b)
		if err != nil {
			return cfg, err
		}
		cfg.ControllerClients = clients
	}

	return cfg, nil
}

// newStartupSpinner reports progress while every configured device and
// client connects, the way an operator watching a terminal wants feedback
// during what can be a multi-second fan-out of dial attempts.
func newStartupSpinner() (*yacspin.Spinner, error) {
	cfg := yacspin.Config{
		Frequency:       100 * time.Millisecond,
		CharSet:         yacspin.CharSets[9],
		Suffix:          " connecting to configured sensors and clients",
		SuffixAutoColon: true,
		StopCharacter:   "✓",
		StopColors:      []string{"fgGreen"},
	}
	return yacspin.New(cfg)
}

func run() {
	var p config.Process
	if err := k.Unmarshal("", &p); err != nil {
		log.Fatal(err)
	}

	cfg, err := buildDaemonConfig(p)
	if err != nil {
		log.Fatal(err)
	}

	spinner, spinErr := newStartupSpinner()
	if spinErr == nil {
		spinner.Start()
	}

	sink := topics.NewLogSink(os.Stdout)
	d, err := daemon.Build(cfg, sink, log.Default())

	if spinErr == nil {
		if err != nil {
			spinner.StopFailMessage(err.Error())
			spinner.StopFail()
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(color.GreenString("skywatchd running"),
		"-", color.YellowString("%d", len(cfg.Devices)), "local device(s),",
		color.YellowString("%d", len(cfg.TCPSensors)), "tcp sensor(s),",
		color.YellowString("%d", len(cfg.SNMPDevices)), "snmp device(s),",
		color.YellowString("%d", len(cfg.SpectrumAnalyzers)), "spectrum analyzer(s),",
		color.YellowString("%d", len(cfg.ThermalScanners)), "thermal scanner(s),",
		color.YellowString("%d", len(cfg.ControllerClients)), "controller client(s)")
	if p.BindAddr != "" {
		fmt.Println(color.CyanString("serving controller protocol on"), p.BindAddr)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	fmt.Println(color.CyanString("shutting down"))
	d.Close(5 * time.Second)
}

func main() {
	var cmd string
	args := os.Args
	if len(args) == 1 {
		root()
		return
	}
	setupconfig()
	cmd = strings.ToLower(args[1])
	switch cmd {
	case "help":
		help()
		return
	case "mkconf":
		mkconf()
		return
	case "conf":
		printconf()
		return
	case "run":
		run()
		return
	case "version":
		pversion()
		return
	default:
		log.Fatal("unknown command")
	}
}
