package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jcorbin/gorpn/internal/logio"
	"github.com/jcorbin/gorpn/internal/rpn"
)

func main() {
	log := logio.New(os.Stderr)
	cmd := newRootCmd(log)
	cmd.SetIn(os.Stdin)
	cmd.SetOut(os.Stdout)
	log.ErrorIf(cmd.ExecuteContext(context.Background()))
	os.Exit(log.ExitCode())
}

func newRootCmd(log *logio.Logger) *cobra.Command {
	var (
		configPath string
		flags      = DefaultConfig()
		timeout    time.Duration
		trace      bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "gorpn [flags] [FILE...]",
		Short: "Evaluate reverse Polish notation expressions, one per line",
		Long: `Evaluates each input line as an integer RPN expression, like "5 1 2 + 4 * + 3 -".

Each line is reported on its own, either with its value or with why it
failed; a failed line never affects any other. Reads standard input when no
files are given, or for a "-" argument.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = LoadConfig(configPath); err != nil {
					return err
				}
			}
			cfg = overrideConfig(cfg, flags, cmd.Flags())
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout != 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			r, err := newRunner(cfg, log)
			if err != nil {
				return err
			}
			if trace {
				r.tracef = log.Leveledf
			}
			stats, err := r.run(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), args)
			if err != nil {
				return err
			}
			if verbose {
				log.Printf("INFO", "%v lines, %v failed%v", stats.Lines, stats.Failed, kindSummary(stats.Kinds))
			}
			if cfg.Strict && stats.Failed > 0 {
				return fmt.Errorf("%v of %v lines failed", stats.Failed, stats.Lines)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&configPath, "config", "c", "", "read settings from a YAML file")
	fl.IntVar(&flags.MaxDepth, "max-depth", flags.MaxDepth, "maximum number of values on the stack")
	fl.IntVar(&flags.Bits, "bits", flags.Bits, "integer width of operands and results")
	fl.StringSliceVar(&flags.Operators, "operators", flags.Operators, "enabled operators")
	fl.StringVarP(&flags.Format, "format", "f", flags.Format, `output format, "text" or "json"`)
	fl.IntVarP(&flags.Jobs, "jobs", "j", flags.Jobs, "number of files to evaluate concurrently")
	fl.BoolVar(&flags.Strict, "strict", flags.Strict, "exit non-zero if any line fails")
	fl.StringVar(&flags.MetricsFile, "metrics-file", flags.MetricsFile, "write prometheus metrics to this file")
	fl.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	fl.BoolVar(&trace, "trace", false, "enable trace logging")
	fl.BoolVarP(&verbose, "verbose", "v", false, "log a summary once done")
	return cmd
}

// overrideConfig applies every flag that was explicitly set over cfg.
func overrideConfig(cfg, flags Config, fl *pflag.FlagSet) Config {
	fl.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "max-depth":
			cfg.MaxDepth = flags.MaxDepth
		case "bits":
			cfg.Bits = flags.Bits
		case "operators":
			cfg.Operators = flags.Operators
		case "format":
			cfg.Format = flags.Format
		case "jobs":
			cfg.Jobs = flags.Jobs
		case "strict":
			cfg.Strict = flags.Strict
		case "metrics-file":
			cfg.MetricsFile = flags.MetricsFile
		}
	})
	return cfg
}

func kindSummary(kinds map[rpn.Kind]int) string {
	var sb strings.Builder
	for _, kind := range rpn.Kinds() {
		if n := kinds[kind]; n > 0 {
			fmt.Fprintf(&sb, " %v=%v", kind, n)
		}
	}
	if sb.Len() > 0 {
		return ":" + sb.String()
	}
	return ""
}

// stdinReader hides any Close method, so that reaching the end of standard
// input does not close it.
type stdinReader struct{ io.Reader }

func (stdinReader) Name() string { return "<stdin>" }
