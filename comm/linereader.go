package comm

import (
	"bufio"
	"bytes"
	"io"
)

// LineReader reads lines delimited by an arbitrary, possibly multi-byte
// terminator from a byte stream. bufio.Reader.ReadBytes only supports a
// single delimiter byte, which is not enough for sensors whose terminator
// is two bytes (CRLF, LFCR, or a sensor-specific pair); LineReader scans
// byte-by-byte for the full terminator sequence instead.
type LineReader struct {
	r   *bufio.Reader
	buf bytes.Buffer
}

// NewLineReader wraps r for terminator-delimited reads.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// ReadUntil reads bytes until terminator has been seen, returning
// everything read with the terminator stripped. It returns whatever
// partial line was read alongside a non-nil error if the stream ends (or
// errors) before the terminator appears.
func (lr *LineReader) ReadUntil(terminator []byte) ([]byte, error) {
	lr.buf.Reset()
	if len(terminator) == 0 {
		terminator = []byte{'\n'}
	}
	for {
		b, err := lr.r.ReadByte()
		if err != nil {
			return append([]byte(nil), lr.buf.Bytes()...), err
		}
		lr.buf.WriteByte(b)
		if lr.buf.Len() >= len(terminator) && bytes.HasSuffix(lr.buf.Bytes(), terminator) {
			line := lr.buf.Bytes()[:lr.buf.Len()-len(terminator)]
			return append([]byte(nil), line...), nil
		}
	}
}
