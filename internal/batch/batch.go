// Package batch drives line-at-a-time RPN evaluation over an input source,
// handing exactly one Outcome per input line to a Sink.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gorpn/internal/fileinput"
	"github.com/jcorbin/gorpn/internal/panicerr"
	"github.com/jcorbin/gorpn/internal/rpn"
)

// Outcome is the result of evaluating one input line: Value when Err is nil,
// otherwise Err describes the failure, usually as an *rpn.Error.
type Outcome struct {
	fileinput.Location
	Text   string
	Tokens int
	Value  int64
	Err    error
}

// OK returns true if the line evaluated successfully.
func (o Outcome) OK() bool { return o.Err == nil }

// Kind returns the failure kind, or 0 for a successful line.
func (o Outcome) Kind() rpn.Kind { return rpn.KindOf(o.Err) }

func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("%v: %v", o.Location, o.Err)
	}
	return fmt.Sprintf("%v: %v", o.Location, o.Value)
}

// Sink receives outcomes; an error returned by Report stops the run.
type Sink interface {
	Report(o Outcome) error
}

// LineReader is a source of input lines, such as *fileinput.Input.
type LineReader interface {
	ReadLine() (fileinput.Line, error)
}

// Evaluate runs one line through the evaluator's pre-check and evaluation.
func Evaluate(ev *rpn.Evaluator, line fileinput.Line) Outcome {
	o := Outcome{
		Location: line.Location,
		Text:     line.Text,
		Tokens:   len(rpn.Fields(line.Text)),
	}
	o.Value, o.Err = ev.EvalLine(line.Text)
	return o
}

// InputError wraps a failure to read input.
type InputError struct{ Err error }

func (err InputError) Error() string { return err.Err.Error() }
func (err InputError) Unwrap() error { return err.Err }

// Run evaluates every line read from in, reporting each outcome to sink.
//
// Line failures are outcomes, not errors: Run only fails when reading input
// (with an InputError) or reporting fails, when ctx is done, or if evaluation
// panics. An over long input line is a failed outcome wrapping
// fileinput.ErrLineTooLong. Cancellation is only checked between lines. Any
// panic is recovered into an error labeled by name.
func Run(ctx context.Context, name string, in LineReader, ev *rpn.Evaluator, sink Sink) (Stats, error) {
	var stats Stats
	err := panicerr.Recover(name, func() error {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			line, err := in.ReadLine()
			var o Outcome
			switch {
			case errors.Is(err, io.EOF):
				return nil
			case errors.Is(err, fileinput.ErrLineTooLong):
				o = Outcome{Location: line.Location, Err: fileinput.ErrLineTooLong}
			case err != nil:
				return InputError{err}
			default:
				o = Evaluate(ev, line)
			}
			stats.add(o)
			if err := sink.Report(o); err != nil {
				return fmt.Errorf("%v: unable to report: %w", line.Location, err)
			}
		}
	})
	return stats, err
}

// EvalString evaluates each line of text, collecting their outcomes.
func EvalString(ev *rpn.Evaluator, name, text string) ([]Outcome, error) {
	var outcomes Collector
	in := fileinput.Input{Queue: []io.Reader{
		fileinput.Named(name, strings.NewReader(text)),
	}}
	_, err := Run(context.Background(), name, &in, ev, &outcomes)
	return outcomes, err
}

// Collector is a Sink that retains every outcome.
type Collector []Outcome

// Report appends o.
func (c *Collector) Report(o Outcome) error {
	*c = append(*c, o)
	return nil
}

// Stats summarizes the outcomes of a run.
type Stats struct {
	Lines  int
	Failed int
	Kinds  map[rpn.Kind]int
}

func (stats *Stats) add(o Outcome) {
	stats.Lines++
	if o.OK() {
		return
	}
	stats.Failed++
	kind := o.Kind()
	if kind == 0 {
		return
	}
	if stats.Kinds == nil {
		stats.Kinds = make(map[rpn.Kind]int)
	}
	stats.Kinds[kind]++
}

// Merge adds other's counts into stats.
func (stats *Stats) Merge(other Stats) {
	stats.Lines += other.Lines
	stats.Failed += other.Failed
	for kind, n := range other.Kinds {
		if stats.Kinds == nil {
			stats.Kinds = make(map[rpn.Kind]int)
		}
		stats.Kinds[kind] += n
	}
}
