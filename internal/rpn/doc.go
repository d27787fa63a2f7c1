/*
Package rpn implements a line-at-a-time reverse Polish notation evaluator.

A line is a sequence of whitespace-delimited tokens, each either a signed
decimal integer or one of the operators + - * /. Integers are pushed onto a
bounded stack; an operator pops the top value (rhs) and the one beneath it
(lhs), and pushes "lhs op rhs", so that "10 4 -" evaluates to 6. A line
succeeds when exactly one value remains once its tokens are exhausted.

Malformed lines fail with an *Error whose Kind classifies the failure; no
failure panics, and no failure outlives the line that caused it:

	ev := rpn.New(rpn.WithMaxDepth(10))
	for _, line := range lines {
		val, err := ev.EvalLine(line)
		...
	}
*/
package rpn
