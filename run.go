package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/gorpn/internal/batch"
	"github.com/jcorbin/gorpn/internal/fileinput"
	"github.com/jcorbin/gorpn/internal/logio"
	"github.com/jcorbin/gorpn/internal/report"
	"github.com/jcorbin/gorpn/internal/rpn"
)

type runner struct {
	cfg    Config
	opts   []rpn.Option
	log    *logio.Logger
	tracef func(level string) func(mess string, args ...interface{})

	reg     *prometheus.Registry
	metrics *report.Metrics
}

func newRunner(cfg Config, log *logio.Logger) (*runner, error) {
	opts, err := cfg.EvalOptions()
	if err != nil {
		return nil, err
	}
	r := &runner{cfg: cfg, opts: opts, log: log}
	if cfg.MetricsFile != "" {
		r.reg = prometheus.NewRegistry()
		if r.metrics, err = report.NewMetrics(r.reg); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// run evaluates every named input, writing reports to out in argument order.
//
// An input that cannot be read is logged as an error, without stopping any
// other; only output failures and cancellation abort the run.
func (r *runner) run(ctx context.Context, stdin io.Reader, out io.Writer, args []string) (stats batch.Stats, err error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	if stdinArgs(args) > 1 {
		return stats, errors.New(`standard input ("-") may only be given once`)
	}
	names := len(args) > 1

	if r.cfg.Jobs <= 1 || len(args) == 1 {
		for _, arg := range args {
			st, err := r.runInput(ctx, stdin, out, arg, names)
			stats.Merge(st)
			if err != nil {
				return stats, err
			}
		}
	} else {
		stats, err = r.runConcurrent(ctx, stdin, out, args, names)
		if err != nil {
			return stats, err
		}
	}

	if r.metrics != nil {
		if err := report.WriteTextfile(r.cfg.MetricsFile, r.reg); err != nil {
			return stats, fmt.Errorf("unable to write metrics: %w", err)
		}
	}
	return stats, nil
}

// runConcurrent evaluates up to Jobs inputs at once, buffering each one's
// output so that it may be written in order once every input is done.
func (r *runner) runConcurrent(ctx context.Context, stdin io.Reader, out io.Writer, args []string, names bool) (stats batch.Stats, _ error) {
	var (
		g        errgroup.Group
		bufs     = make([]bytes.Buffer, len(args))
		perInput = make([]batch.Stats, len(args))
	)
	g.SetLimit(r.cfg.Jobs)
	for i, arg := range args {
		i, arg := i, arg
		g.Go(func() (err error) {
			perInput[i], err = r.runInput(ctx, stdin, &bufs[i], arg, names)
			return err
		})
	}
	err := g.Wait()

	for i := range bufs {
		stats.Merge(perInput[i])
		if _, werr := bufs[i].WriteTo(out); err == nil {
			err = werr
		}
	}
	return stats, err
}

// runInput evaluates one input, writing its report to out.
func (r *runner) runInput(ctx context.Context, stdin io.Reader, out io.Writer, arg string, names bool) (batch.Stats, error) {
	rd, err := openInput(arg, stdin)
	if err != nil {
		r.log.ErrorIf(err)
		return batch.Stats{}, nil
	}
	in := fileinput.Input{Queue: []io.Reader{rd}}
	defer in.Close()

	name := fileinput.NameOf(rd)
	opts := r.opts
	if r.tracef != nil {
		opts = append(opts[:len(opts):len(opts)], rpn.WithLogf(r.tracef("TRACE "+name)))
	}

	sink := r.newSink(out, names)
	stats, err := batch.Run(ctx, name, &in, rpn.New(opts...), sink)
	if ferr := report.Flush(sink); err == nil && ferr != nil {
		err = fmt.Errorf("unable to write output: %w", ferr)
	}

	var inErr batch.InputError
	if errors.As(err, &inErr) {
		r.log.ErrorIf(err)
		return stats, nil
	}
	return stats, err
}

func (r *runner) newSink(out io.Writer, names bool) batch.Sink {
	var format batch.Sink
	switch r.cfg.Format {
	case formatJSON:
		format = report.NewJSON(out)
	default:
		format = report.NewText(out, names)
	}
	if r.metrics != nil {
		return report.Tee(format, r.metrics)
	}
	return format
}

func stdinArgs(args []string) (n int) {
	for _, arg := range args {
		if arg == "-" {
			n++
		}
	}
	return n
}

func openInput(arg string, stdin io.Reader) (io.Reader, error) {
	if arg == "-" {
		return stdinReader{stdin}, nil
	}
	return os.Open(arg)
}
