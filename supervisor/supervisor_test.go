package supervisor

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/comm"
	"github.jpl.nasa.gov/ems/skywatch/decode"
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
)

func TestSupervisorReadsAndInvokesCallback(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		conn.Write([]byte("C00=21.00,C01=22.00\r\n"))
		time.Sleep(200 * time.Millisecond)
	}()

	addr := ln.Addr().(*net.TCPAddr)
	dec, err := decode.New(sensortype.Temperature, decode.Options{NumChannels: 2})
	if err != nil {
		t.Fatalf("new decoder: %v", err)
	}

	var mu sync.Mutex
	var readings []telemetry.Reading
	cfg := Config{
		SensorName: "temp1",
		Device:     comm.NewDevice(comm.Setup{Host: addr.IP.String(), Port: addr.Port}, time.Second),
		Decoder:    dec,
		Callback: func(r telemetry.Reading) {
			mu.Lock()
			defer mu.Unlock()
			readings = append(readings, r)
		},
		ReadTimeout:    time.Second,
		ConnectTimeout: 2 * time.Second,
	}
	sv := New(cfg)
	if err := sv.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sv.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(readings)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(readings) == 0 {
		t.Fatal("expected at least one reading to be delivered")
	}
	if readings[0].ResponseCode != sensortype.OK {
		t.Fatalf("want OK, got %v", readings[0].ResponseCode)
	}
}
