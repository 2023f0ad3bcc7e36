package comm

import (
	"fmt"

	"github.com/google/gousb"
)

// ftdiEndpoint and ftdiOutEndpoint are the bulk endpoint numbers FTDI
// USB-serial bridges expose for their single data channel: IN on 0x81, OUT
// on 0x02. This mirrors usbtmc.NewUSBDevice's fixed-endpoint assumption,
// simplified for a single-channel FTDI chip rather than a full USBTMC bulk
// transfer.
const (
	ftdiEndpoint    = 1
	ftdiOutEndpoint = 2
)

// ftdiConn wraps a claimed gousb interface as an io.ReadWriteCloser so it
// can be used as a comm.Device transport exactly like a TCP or serial
// connection.
type ftdiConn struct {
	ctx    *gousb.Context
	device *gousb.Device
	iface  *gousb.Interface
	closer func()
	in     *gousb.InEndpoint
	out    *gousb.OutEndpoint
}

// FTDIOpen opens the first USB device matching vid/pid and claims its
// default interface's bulk endpoints.
func FTDIOpen(vid, pid uint16) (*ftdiConn, error) {
	ctx := gousb.NewContext()
	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		ctx.Close()
		return nil, err
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("comm: no USB device matching vid=%04x pid=%04x", vid, pid)
	}
	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, err
	}
	iface, closer, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, err
	}
	in, err := iface.InEndpoint(ftdiEndpoint)
	if err != nil {
		closer()
		dev.Close()
		ctx.Close()
		return nil, err
	}
	out, err := iface.OutEndpoint(ftdiOutEndpoint)
	if err != nil {
		closer()
		dev.Close()
		ctx.Close()
		return nil, err
	}
	return &ftdiConn{ctx: ctx, device: dev, iface: iface, closer: closer, in: in, out: out}, nil
}

func (f *ftdiConn) Read(p []byte) (int, error)  { return f.in.Read(p) }
func (f *ftdiConn) Write(p []byte) (int, error) { return f.out.Write(p) }

func (f *ftdiConn) Close() error {
	f.closer()
	err := f.device.Close()
	f.ctx.Close()
	return err
}
