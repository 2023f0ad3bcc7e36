package dataclient

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/topics"
)

func TestThermalSpansSplit95ChannelsInto6Topics(t *testing.T) {
	spans := thermalSpans("GEC")
	if len(spans) != 6 {
		t.Fatalf("want 6 spans, got %d", len(spans))
	}
	total := 0
	for i, s := range spans {
		total += s.numChannels
		if i < 5 && s.numChannels != 16 {
			t.Fatalf("span %d: want 16 channels, got %d", i, s.numChannels)
		}
	}
	if spans[5].numChannels != 15 {
		t.Fatalf("want last span 15 channels, got %d", spans[5].numChannels)
	}
	if total != numThermocouples {
		t.Fatalf("want total 95 channels, got %d", total)
	}
}

func fakeThermalScanner(t *testing.T, frames []string) (host string, port int) {
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
		for _, f := range frames {
			fmt.Fprintf(conn, "%s\n", f)
			time.Sleep(5 * time.Millisecond)
		}
		select {}
	}()
	h, p, _ := net.SplitHostPort(ln.Addr().String())
	port, _ = strconv.Atoi(p)
	return h, port
}

func validThermalFrame(timestamp float64) string {
	vals := make([]string, numThermocouples)
	for i := range vals {
		vals[i] = strconv.FormatFloat(float64(i)/10.0, 'f', 1, 64)
	}
	return strconv.FormatFloat(timestamp, 'f', 3, 64) + ":" + strings.Join(vals, ",")
}

func TestThermalClientSkipsMalformedFrameThenPublishes(t *testing.T) {
	host, port := fakeThermalScanner(t, []string{"not a valid frame", validThermalFrame(100.0)})
	mock := &topics.Mock{}

	c := NewThermalClient(ThermalConfig{
		Host: host, Port: port, SensorName: "GEC", Location: "dome",
		ReadTimeout: time.Second, ConnectTimeout: time.Second, Topics: mock,
	})
	c.Start()
	defer c.Stop(time.Second)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mock.Lock()
		n := len(mock.Temperatures)
		mock.Unlock()
		if n >= 6 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mock.Lock()
	defer mock.Unlock()
	if len(mock.Temperatures) != 6 {
		t.Fatalf("want 6 published temperature records for one valid frame, got %d", len(mock.Temperatures))
	}
	last := mock.Temperatures[5]
	if last.NumChannels != 15 || len(last.Temperature) != 15 {
		t.Fatalf("want final topic with 15 channels, got %+v", last)
	}
	if mock.Temperatures[0].SensorName != "GEC 1/6" {
		t.Fatalf("want sensor name %q, got %q", "GEC 1/6", mock.Temperatures[0].SensorName)
	}
}
