package fileinput

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// MaxLineSize bounds how long a single input line may be.
const MaxLineSize = 1024 * 1024

// ErrLineTooLong is returned, wrapped with the line's location, by
// Input.ReadLine for any line longer than MaxLineSize. The rest of such a line
// is skipped, and reading may continue with the next line.
var ErrLineTooLong = errors.New("line too long")

// Location names a line in an Input stream.
type Location struct {
	Name string
	Line int
}

// Line combines a Location with that line's text, sans line terminator.
type Line struct {
	Location
	Text string
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
func (il Line) String() string      { return fmt.Sprintf("%v %q", il.Location, il.Text) }

// Input implements sequential line reading through a Queue of one or more
// input streams. Lines are numbered from 1 within each stream; the last line
// read is retained to facilitate user feedback.
type Input struct {
	Queue []io.Reader
	Last  Line

	cur  io.Reader
	rd   *bufio.Reader
	name string
	line int
	buf  []byte
}

// ReadLine reads the next line, moving on through the Queue as each stream
// is exhausted. Returns io.EOF once all streams have been read. Both "\n" and
// "\r\n" terminate a line; a final line need not be terminated.
//
// A line longer than MaxLineSize is returned with empty Text along with an
// error wrapping ErrLineTooLong; the next call reads the line after it.
func (in *Input) ReadLine() (Line, error) {
	for {
		if in.rd == nil && !in.nextIn() {
			return Line{}, io.EOF
		}
		text, tooLong, err := in.readLine()
		if err == nil || (err == io.EOF && (len(text) > 0 || tooLong)) {
			in.line++
			in.Last = Line{Location{in.name, in.line}, text}
			if tooLong {
				return in.Last, fmt.Errorf("%v: %w", in.Last.Location, ErrLineTooLong)
			}
			return in.Last, nil
		}
		in.closeCur()
		if err != io.EOF {
			return Line{}, fmt.Errorf("%v: %w", Location{in.name, in.line + 1}, err)
		}
	}
}

// readLine reads through the next line terminator, or to the end of the
// stream, discarding rather than buffering any line over MaxLineSize.
func (in *Input) readLine() (text string, tooLong bool, err error) {
	buf := in.buf[:0]
	for {
		var frag []byte
		frag, err = in.rd.ReadSlice('\n')
		if !tooLong {
			buf = append(buf, frag...)
			if len(buf) > MaxLineSize+len("\r\n") {
				tooLong, buf = true, buf[:0]
			}
		}
		if err != bufio.ErrBufferFull {
			break
		}
	}
	if err != nil && err != io.EOF {
		return "", false, err
	}
	buf = bytes.TrimSuffix(buf, []byte("\n"))
	buf = bytes.TrimSuffix(buf, []byte("\r"))
	if len(buf) > MaxLineSize {
		tooLong, buf = true, buf[:0]
	}
	if cap(buf) <= 64*1024 {
		in.buf = buf
	}
	return string(buf), tooLong, err
}

// Close closes the current stream, and any queued streams that are closers.
func (in *Input) Close() (err error) {
	if cerr := in.closeCur(); err == nil {
		err = cerr
	}
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) closeCur() (err error) {
	if cl, ok := in.cur.(io.Closer); ok {
		err = cl.Close()
	}
	in.cur, in.rd = nil, nil
	return err
}

func (in *Input) nextIn() bool {
	if len(in.Queue) > 0 {
		r := in.Queue[0]
		in.Queue = in.Queue[1:]
		in.cur = r
		in.rd = bufio.NewReader(r)
		in.name = NameOf(r)
		in.line = 0
	}
	return in.rd != nil
}

// Named gives a reader a name, for use in input locations.
func Named(name string, r io.Reader) io.Reader {
	if cl, ok := r.(io.ReadCloser); ok {
		return namedReadCloser{cl, name}
	}
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

type namedReadCloser struct {
	io.ReadCloser
	name string
}

func (nr namedReader) Name() string     { return nr.name }
func (nr namedReadCloser) Name() string { return nr.name }

// NameOf returns obj's name, if it has a Name() method, like *os.File.
func NameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
