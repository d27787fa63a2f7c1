package rpn

import "math"

// Evaluator evaluates RPN lines against a bounded operand stack.
//
// Each call to Eval owns the stack for its duration and clears it before
// returning, whatever the outcome, so no value survives from one line into
// the next. An Evaluator is not safe for concurrent use.
type Evaluator struct {
	stack stack
	ops   OpSet
	bits  int
	min   int64
	max   int64
	logfn func(mess string, args ...interface{})
}

// New creates an Evaluator, applying opts over the defaults.
func New(opts ...Option) *Evaluator {
	var ev Evaluator
	options(defaults).apply(&ev)
	options(opts).apply(&ev)
	return &ev
}

// MaxDepth returns the stack bound.
func (ev *Evaluator) MaxDepth() int { return ev.stack.limit }

// Bits returns the integer width.
func (ev *Evaluator) Bits() int { return ev.bits }

// Operators returns the enabled operator set.
func (ev *Evaluator) Operators() OpSet { return ev.ops }

// Depth returns the number of values currently on the stack; outside of Eval
// this is always 0.
func (ev *Evaluator) Depth() int { return ev.stack.depth() }

// HasOperands reports whether line contains at least two tokens that parse
// as integers of the evaluator's width.
func (ev *Evaluator) HasOperands(line string) bool { return hasOperands(line, ev.bits) }

// EvalLine runs the full per-line pipeline: the HasOperands pre-check,
// followed by Eval. A line failing the pre-check is an InsufficientOperands
// failure and is never evaluated.
func (ev *Evaluator) EvalLine(line string) (int64, error) {
	if !ev.HasOperands(line) {
		ev.logf("!", "pre-check failed: %q", line)
		return 0, fail(InsufficientOperands, "", -1, 0)
	}
	return ev.Eval(line)
}

// Eval evaluates one line, returning its single result value, or an *Error
// describing why evaluation stopped.
func (ev *Evaluator) Eval(line string) (int64, error) {
	defer ev.stack.reset()

	sc := scanner{line: line}
	for {
		token, ok := sc.next()
		if !ok {
			break
		}
		index := sc.count - 1

		n, numeric, perr := parseOperand(token, ev.bits)
		if numeric {
			if perr != nil {
				ferr := ev.failf(OperandParseError, token, index)
				ferr.Err = perr
				return 0, ferr
			}
			if ev.stack.full() {
				return 0, ev.failf(StackOverflow, token, index)
			}
			ev.stack.push(n)
			ev.logf(">", "push %v", n)
			continue
		}

		if ev.stack.depth() < 2 {
			return 0, ev.failf(InsufficientOperands, token, index)
		}
		op, known := ParseOp(token)
		if !known || !ev.ops.Has(op) {
			return 0, ev.failf(UnknownOperator, token, index)
		}
		lhs, rhs := ev.stack.pop2()
		val, kind := ev.apply(op, lhs, rhs)
		if kind != 0 {
			return 0, ev.failf(kind, token, index)
		}
		ev.stack.push(val)
		ev.logf("=", "%v %v %v => %v", lhs, op, rhs, val)
	}

	if depth := ev.stack.depth(); depth != 1 {
		return 0, ev.failf(InvalidFinalStack, "", -1)
	}
	return ev.stack.pop(), nil
}

func (ev *Evaluator) apply(op Op, lhs, rhs int64) (val int64, _ Kind) {
	switch op {
	case Add:
		val = lhs + rhs
		if (val > lhs) != (rhs > 0) {
			return 0, ArithmeticOverflow
		}
	case Sub:
		val = lhs - rhs
		if (val < lhs) != (rhs > 0) {
			return 0, ArithmeticOverflow
		}
	case Mul:
		if lhs == 0 || rhs == 0 {
			return 0, 0
		}
		val = lhs * rhs
		if (lhs == -1 && rhs == math.MinInt64) ||
			(rhs == -1 && lhs == math.MinInt64) ||
			val/rhs != lhs {
			return 0, ArithmeticOverflow
		}
	case Div:
		if rhs == 0 {
			return 0, DivisionByZero
		}
		if lhs == math.MinInt64 && rhs == -1 {
			return 0, ArithmeticOverflow
		}
		val = lhs / rhs
	default:
		return 0, UnknownOperator
	}
	if val < ev.min || val > ev.max {
		return 0, ArithmeticOverflow
	}
	return val, 0
}

func (ev *Evaluator) failf(kind Kind, token string, index int) *Error {
	err := fail(kind, token, index, ev.stack.depth())
	ev.logf("!", "%v", err)
	return err
}

func (ev *Evaluator) logf(mark, mess string, args ...interface{}) {
	if ev.logfn != nil {
		ev.logfn(mark+" "+mess, args...)
	}
}
