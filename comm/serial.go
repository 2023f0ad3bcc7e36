package comm

import (
	"io"

	"github.com/tarm/serial"
)

// SerialOpen opens a serial port at the given baud rate with 8N1 framing,
// the configuration every supported serial sensor uses.
func SerialOpen(port string, baud int) (io.ReadWriteCloser, error) {
	if baud <= 0 {
		baud = 19200
	}
	cfg := &serial.Config{Name: port, Baud: baud}
	return serial.OpenPort(cfg)
}
