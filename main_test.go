package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gorpn/internal/logio"
)

type cmdResult struct {
	stdout string
	stderr string
	code   int
}

func runCmd(t *testing.T, stdin string, args ...string) cmdResult {
	var out, errOut bytes.Buffer
	log := logio.New(&errOut)
	cmd := newRootCmd(log)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	if args == nil {
		args = []string{} // cobra falls back to os.Args given nil
	}
	cmd.SetArgs(args)
	log.ErrorIf(cmd.ExecuteContext(context.Background()))
	res := cmdResult{out.String(), errOut.String(), log.ExitCode()}
	if t.Failed() {
		t.Logf("stderr: %s", res.stderr)
	}
	return res
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func lines(ls ...string) string { return strings.Join(ls, "\n") + "\n" }

const sample = "3 4 +\n10 0 /\n5 1 2 + 4 * + 3 -\n"

func Test_stdin(t *testing.T) {
	res := runCmd(t, sample)
	assert.Equal(t, lines(
		"Line 1: 7",
		"Line 2: division by zero",
		"Line 3: 14",
	), res.stdout)
	assert.Equal(t, "", res.stderr)
	assert.Equal(t, 0, res.code, "line failures must not fail the run")

	res = runCmd(t, sample, "-")
	assert.Equal(t, lines(
		"Line 1: 7",
		"Line 2: division by zero",
		"Line 3: 14",
	), res.stdout, "expected - to read stdin")
}

func Test_files(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.rpn", sample)
	b := writeFile(t, dir, "b.rpn", "1 2 3\n2 2 *\n")
	expect := lines(
		a+":1: 7",
		a+":2: division by zero",
		a+":3: 14",
		b+":1: invalid stack",
		b+":2: 4",
	)

	for _, jobs := range []string{"1", "2", "8"} {
		t.Run("jobs="+jobs, func(t *testing.T) {
			res := runCmd(t, "", "-j", jobs, a, b)
			assert.Equal(t, expect, res.stdout, "expected output in argument order")
			assert.Equal(t, 0, res.code)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		missing := filepath.Join(dir, "nope.rpn")
		res := runCmd(t, "", "-j", "2", missing, b)
		assert.Equal(t, lines(
			b+":1: invalid stack",
			b+":2: 4",
		), res.stdout, "expected other inputs to still be evaluated")
		assert.Contains(t, res.stderr, "ERROR: open "+missing)
		assert.Equal(t, 1, res.code)
	})
}

func Test_stdinOnce(t *testing.T) {
	b := writeFile(t, t.TempDir(), "b.rpn", "2 2 *\n")
	for _, args := range [][]string{
		{"-", "-"},
		{"-j", "2", "-", b, "-"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			res := runCmd(t, sample, args...)
			assert.Equal(t, "", res.stdout)
			assert.Equal(t, "ERROR: standard input (\"-\") may only be given once\n", res.stderr)
			assert.Equal(t, 1, res.code)
		})
	}
}

func Test_hugeMaxDepth(t *testing.T) {
	res := runCmd(t, "1 2 +\n", "--max-depth", "9223372036854775807")
	assert.Equal(t, "Line 1: 3\n", res.stdout)
	assert.Equal(t, 0, res.code)
}

func Test_longLine(t *testing.T) {
	long := strings.Repeat("1 ", 1024*1024)
	res := runCmd(t, "1 2 +\n"+long+"\n3 4 +\n5 6 +\n")
	assert.Equal(t, lines(
		"Line 1: 3",
		"Line 2: line too long",
		"Line 3: 7",
		"Line 4: 11",
	), res.stdout)
	assert.Equal(t, "", res.stderr)
	assert.Equal(t, 0, res.code)
}

func Test_strict(t *testing.T) {
	res := runCmd(t, sample, "--strict")
	assert.Contains(t, res.stdout, "Line 3: 14")
	assert.Equal(t, "ERROR: 1 of 3 lines failed\n", res.stderr)
	assert.Equal(t, 1, res.code)

	res = runCmd(t, "1 2 +\n", "--strict")
	assert.Equal(t, "Line 1: 3\n", res.stdout)
	assert.Equal(t, 0, res.code)
}

func Test_config(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "rpn.yaml", lines(
		"max_depth: 2",
		"bits: 64",
		"operators: [\"+\", \"-\"]",
		"format: json",
	))
	input := lines(
		"1 2 3 + +",
		"3 4 *",
		"99999999999 1 +",
	)

	res := runCmd(t, input, "--config", cfgPath)
	assert.Equal(t, lines(
		`{"input":"<stdin>","line":1,"error":"stack capacity reached","kind":"stack_overflow"}`,
		`{"input":"<stdin>","line":2,"error":"unknown operator \"*\"","kind":"unknown_operator"}`,
		`{"input":"<stdin>","line":3,"value":100000000000}`,
	), res.stdout)
	assert.Equal(t, 0, res.code)

	res = runCmd(t, input, "-c", cfgPath, "--format", "text", "--max-depth", "3")
	assert.Equal(t, lines(
		"Line 1: 6",
		`Line 2: unknown operator "*"`,
		"Line 3: 100000000000",
	), res.stdout, "expected flags to override the config file")

	bad := writeFile(t, dir, "bad.yaml", "max_dept: 2\n")
	res = runCmd(t, input, "--config", bad)
	assert.Equal(t, "", res.stdout)
	assert.Contains(t, res.stderr, "ERROR: unable to parse config "+bad)
	assert.Equal(t, 1, res.code)
}

func Test_invalidSettings(t *testing.T) {
	for _, tc := range []struct {
		args   []string
		expect string
	}{
		{[]string{"--bits", "100"}, "ERROR: invalid bits 100, must be within 2..64\n"},
		{[]string{"--max-depth=-1"}, "ERROR: invalid max_depth -1, must not be negative\n"},
		{[]string{"--operators", "+,%"}, "ERROR: unsupported operator \"%\"\n"},
		{[]string{"--format", "xml"}, "ERROR: invalid format \"xml\", must be \"text\" or \"json\"\n"},
		{[]string{"--jobs", "0"}, "ERROR: invalid jobs 0, must be at least 1\n"},
	} {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			res := runCmd(t, sample, tc.args...)
			assert.Equal(t, "", res.stdout)
			assert.Equal(t, tc.expect, res.stderr)
			assert.Equal(t, 1, res.code)
		})
	}
}

func Test_metricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpn.prom")
	res := runCmd(t, sample, "--metrics-file", path)
	assert.Equal(t, 0, res.code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `rpn_lines_total{outcome="ok"} 2`)
	assert.Contains(t, string(data), `rpn_lines_total{outcome="division_by_zero"} 1`)
	assert.Contains(t, string(data), `rpn_line_tokens_count 3`)
}

func Test_logging(t *testing.T) {
	res := runCmd(t, "3 4 +\n10 0 /\n", "--trace", "-v")
	assert.Equal(t, lines(
		"TRACE <stdin>: > push 3",
		"TRACE <stdin>: > push 4",
		"TRACE <stdin>: = 3 + 4 => 7",
		"TRACE <stdin>: > push 10",
		"TRACE <stdin>: > push 0",
		"TRACE <stdin>: ! division by zero",
		"INFO: 2 lines, 1 failed: division_by_zero=1",
	), res.stderr)
	assert.Equal(t, 0, res.code)
}

func Test_LoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(writeFile(t, dir, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg, "expected an empty file to keep the defaults")

	cfg, err = LoadConfig(writeFile(t, dir, "some.yaml", "jobs: 4\nstrict: true\n"))
	require.NoError(t, err)
	expect := DefaultConfig()
	expect.Jobs = 4
	expect.Strict = true
	assert.Equal(t, expect, cfg)

	_, err = LoadConfig(filepath.Join(dir, "nope.yaml"))
	assert.True(t, os.IsNotExist(err), "expected a not exist error, got %v", err)

	opts, err := DefaultConfig().EvalOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}
