package controller

import (
	"context"
	"encoding/json"
	"net"
	"strconv"
	"testing"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/comm"
	"github.jpl.nasa.gov/ems/skywatch/config"
	"github.jpl.nasa.gov/ems/skywatch/decode"
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
)

// fakeSensor starts a TCP listener that writes one temperature line to
// every connecting client, repeatedly, until the test closes it.
func fakeSensor(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, err := conn.Write([]byte("C00=18.50\r\n")); err != nil {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()
	return ln.Addr().String()
}

func TestControllerConfigureStartsTelemetryStream(t *testing.T) {
	sensorAddr := fakeSensor(t)
	host, portStr, _ := net.SplitHostPort(sensorAddr)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parse port: %v", err)
	}

	opener := func(d config.Device) (*comm.Device, decode.Decoder, error) {
		dev := comm.NewDevice(comm.Setup{Host: host, Port: port}, time.Second)
		dec, err := decode.New(sensortype.Temperature, decode.Options{NumChannels: 1})
		if err != nil {
			return nil, nil, err
		}
		return dev, dec, nil
	}

	srv := NewServer(opener, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srvAddr := ln.Addr().String()
	ln.Close()

	go srv.Serve(srvAddr)
	defer srv.Close()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	frames := make(chan TelemetryFrame, 8)
	client, err := Dial(ctx, srvAddr, func(f TelemetryFrame) { frames <- f })
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	devices, _ := json.Marshal([]config.Device{
		{DeviceType: sensortype.Serial, Name: "temp1", SensorType: sensortype.Temperature, SerialPort: "ignored-by-test-opener", Channels: 1},
	})
	code, err := client.Configure(ctx, devices)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if code != sensortype.OK {
		t.Fatalf("expected OK, got %v", code)
	}

	select {
	case f := <-frames:
		if f.Name != "temp1" {
			t.Errorf("expected sensor name temp1, got %q", f.Name)
		}
		if f.ResponseCode != sensortype.OK {
			t.Errorf("expected OK response code, got %v", f.ResponseCode)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for telemetry frame")
	}
}
