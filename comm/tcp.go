package comm

import (
	"net"
	"time"
)

// TCPDial opens a TCP connection with a connect timeout, mirroring
// golaborate's comm.TCPSetup.
func TCPDial(addr string, timeout time.Duration) (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	conn.SetDeadline(time.Now().Add(timeout))
	return conn, nil
}
