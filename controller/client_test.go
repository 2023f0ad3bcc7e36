package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
)

// scriptedServer accepts one connection, records every request it
// receives, and replies according to script: each scripted reply is sent
// after one line has been read, letting the test interleave telemetry
// frames with a command response.
func scriptedServer(t *testing.T, script func(conn net.Conn, requests chan<- Request)) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })
	requests := make(chan Request, 8)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		go func() {
			scanner := bufio.NewScanner(conn)
			for scanner.Scan() {
				var req Request
				json.Unmarshal(scanner.Bytes(), &req)
				requests <- req
			}
		}()
		script(conn, requests)
	}()
	return ln.Addr().String()
}

func writeReply(t *testing.T, conn net.Conn, reply Reply) {
	t.Helper()
	b, err := json.Marshal(reply)
	if err != nil {
		t.Fatalf("marshal reply: %v", err)
	}
	b = append(b, '\n')
	if _, err := conn.Write(b); err != nil {
		t.Fatalf("write reply: %v", err)
	}
}

func TestClientDeliversTelemetryWhileCommandOutstanding(t *testing.T) {
	addr := scriptedServer(t, func(conn net.Conn, requests <-chan Request) {
		<-requests // configure
		// Telemetry arrives before the response does.
		writeReply(t, conn, telemetryReply(TelemetryFrame{Name: "temp1", Timestamp: 1, ResponseCode: sensortype.OK}))
		time.Sleep(20 * time.Millisecond)
		writeReply(t, conn, responseReply(sensortype.OK))
	})

	frames := make(chan TelemetryFrame, 4)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client, err := Dial(ctx, addr, func(f TelemetryFrame) { frames <- f })
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	code, err := client.SendCommand(ctx, CmdConfigure, nil)
	if err != nil {
		t.Fatalf("send command: %v", err)
	}
	if code != sensortype.OK {
		t.Fatalf("expected OK, got %v", code)
	}

	select {
	case f := <-frames:
		if f.Name != "temp1" {
			t.Errorf("expected telemetry for temp1, got %q", f.Name)
		}
	default:
		t.Fatal("expected telemetry frame delivered to handler during outstanding command")
	}
}

func TestClientDropsUnsolicitedResponse(t *testing.T) {
	addr := scriptedServer(t, func(conn net.Conn, requests <-chan Request) {
		// No command has been sent yet; this response has nothing to
		// correlate with and must not wedge a later SendCommand call.
		writeReply(t, conn, responseReply(sensortype.OK))
		<-requests // configure
		writeReply(t, conn, responseReply(sensortype.InvalidConfiguration))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client, err := Dial(ctx, addr, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	time.Sleep(20 * time.Millisecond) // let the unsolicited response arrive first

	code, err := client.SendCommand(ctx, CmdConfigure, nil)
	if err != nil {
		t.Fatalf("send command: %v", err)
	}
	if code != sensortype.InvalidConfiguration {
		t.Fatalf("expected the correlated reply, got %v", code)
	}
}
