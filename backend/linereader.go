package backend

import (
	"bufio"
	"io"
)

// lineReader is a specialized reader that ensures only entire newline-delimited lines are
// read at a time. This is useful when attempting to parse a file that is being actively
// written to as a CSV, as you don't actually attempt to parse any partial lines.
type lineReader struct {
	r *bufio.Reader
	// partial holds an unterminated line and ready the rest of a complete
	// line that did not fit into the caller's buffer.
	partial []byte
	ready   []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.ready) == 0 {
		data, err := l.r.ReadBytes(byte('\n'))
		if err != nil {
			l.partial = append(l.partial, data...)
			return 0, io.EOF
		}
		l.ready = append(l.partial, data...)
		l.partial = nil
	}
	n := copy(b, l.ready)
	l.ready = l.ready[n:]
	return n, nil
}

// Pending returns the unterminated data read so far. The returned slice
// is only valid until the next call to Read.
func (l *lineReader) Pending() []byte {
	return l.partial
}
