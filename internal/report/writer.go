package report

import (
	"bufio"
	"io"
)

// writeFlusher is a flush-able io.Writer.
type writeFlusher interface {
	io.Writer
	Flush() error
}

// newWriteFlusher buffers w, unless it already flushes, or is an in-memory
// buffer, or io.Discard; those are used directly.
func newWriteFlusher(w io.Writer) writeFlusher {
	if wf, is := w.(writeFlusher); is {
		return wf
	}
	if w == io.Discard {
		return nopFlusher{w}
	}

	// in memory buffers, as implemented by types like bytes.Buffer and
	// strings.Builder, do not need to be flushed
	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }
