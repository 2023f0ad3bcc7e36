package comm

import (
	"net"
	"testing"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
)

func TestDeviceOpenReadLineClose(t *testing.T) {
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
	}()

	addr := ln.Addr().(*net.TCPAddr)
	setup := Setup{Type: sensortype.DeviceType(""), Host: addr.IP.String(), Port: addr.Port}
	d := NewDevice(setup, time.Second)
	if err := d.Open(2 * time.Second); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	line, err := d.ReadLine([]byte{'\r', '\n'}, 2*time.Second)
	if err != nil {
		t.Fatalf("read line: %v", err)
	}
	if string(line) != "C00=21.00,C01=22.00" {
		t.Fatalf("unexpected line: %q", line)
	}
}

func TestDeviceReadLineWithoutOpenIsError(t *testing.T) {
	d := NewDevice(Setup{Host: "127.0.0.1", Port: 1}, time.Second)
	if _, err := d.ReadLine([]byte{'\n'}, time.Second); err != ErrNotConnected {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}
