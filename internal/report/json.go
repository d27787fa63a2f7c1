package report

import (
	"encoding/json"
	"io"

	"github.com/jcorbin/gorpn/internal/batch"
)

// Record is the JSON form of an outcome.
type Record struct {
	Input string `json:"input"`
	Line  int    `json:"line"`
	Value *int64 `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// NewRecord converts an outcome to its JSON form.
func NewRecord(o batch.Outcome) Record {
	rec := Record{Input: o.Name, Line: o.Line}
	if o.Err != nil {
		rec.Error = o.Err.Error()
		rec.Kind = outcomeLabel(o)
	} else {
		val := o.Value
		rec.Value = &val
	}
	return rec
}

// JSON writes one JSON object per outcome, each on its own line.
type JSON struct {
	out writeFlusher
	enc *json.Encoder
}

// NewJSON creates a JSON sink writing to w; call Flush when done.
func NewJSON(w io.Writer) *JSON {
	out := newWriteFlusher(w)
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return &JSON{out: out, enc: enc}
}

// Report writes o.
func (js *JSON) Report(o batch.Outcome) error { return js.enc.Encode(NewRecord(o)) }

// Flush flushes any buffered output.
func (js *JSON) Flush() error { return js.out.Flush() }
