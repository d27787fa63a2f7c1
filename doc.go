/*
Command gorpn evaluates reverse Polish notation, one expression per line.

Each line holds whitespace separated tokens: signed decimal integers, and the
operators + - * and /. Integers are pushed onto a stack; an operator pops two
values and pushes its result, the value pushed first being its left operand:

	$ printf '3 4 +\n10 0 /\n5 1 2 + 4 * + 3 -\n' | gorpn
	Line 1: 7
	Line 2: division by zero
	Line 3: 14

Every line is evaluated on its own, with a fresh stack. A malformed line is
reported with a diagnostic and evaluation carries on with the next one:

	not enough operands     fewer than two integers, or an operator lacking operands
	unknown operator "%"    a token that is neither an integer nor an enabled operator
	division by zero        a "/" whose right operand is 0
	stack capacity reached  more values than the stack bound (default 10)
	invalid stack           anything other than one value left over
	invalid operand "..."   an integer outside the configured width (default 32 bits)
	arithmetic overflow     a result outside the configured width

Settings may be given in a YAML file with --config:

	max_depth: 10
	bits: 32
	operators: ["+", "-", "*", "/"]
	format: text        # or json, for one JSON object per line
	jobs: 1             # files evaluated concurrently
	strict: false       # exit non-zero if any line fails
	metrics_file: ""    # write prometheus metrics here

Command line flags of the same names override the file.
*/
package main
