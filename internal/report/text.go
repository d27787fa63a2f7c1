// Package report implements sinks that format or aggregate line outcomes.
package report

import (
	"fmt"
	"io"

	"github.com/jcorbin/gorpn/internal/batch"
)

// Text writes one human readable line per outcome:
//
//	Line 1: 7
//	Line 2: division by zero
//
// When Names is set, lines are instead prefixed by input location:
//
//	prog.rpn:2: division by zero
type Text struct {
	Names bool

	out writeFlusher
}

// NewText creates a Text sink writing to w; call Flush when done.
func NewText(w io.Writer, names bool) *Text {
	return &Text{Names: names, out: newWriteFlusher(w)}
}

// Report writes o.
func (tx *Text) Report(o batch.Outcome) (err error) {
	if tx.Names {
		_, err = fmt.Fprintf(tx.out, "%v: ", o.Location)
	} else {
		_, err = fmt.Fprintf(tx.out, "Line %d: ", o.Line)
	}
	if err != nil {
		return err
	}
	if o.Err != nil {
		_, err = fmt.Fprintln(tx.out, o.Err)
	} else {
		_, err = fmt.Fprintln(tx.out, o.Value)
	}
	return err
}

// Flush flushes any buffered output.
func (tx *Text) Flush() error { return tx.out.Flush() }
