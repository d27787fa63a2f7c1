package rpn

import (
	"errors"
	"fmt"
)

// Kind classifies why a line failed to evaluate. Every Kind is also an error,
// so that callers may test for one with errors.Is.
type Kind int

// Line failure kinds.
const (
	InsufficientOperands Kind = iota + 1
	UnknownOperator
	DivisionByZero
	StackOverflow
	InvalidFinalStack
	OperandParseError
	ArithmeticOverflow
)

var kindNames = [...]string{
	InsufficientOperands: "insufficient_operands",
	UnknownOperator:      "unknown_operator",
	DivisionByZero:       "division_by_zero",
	StackOverflow:        "stack_overflow",
	InvalidFinalStack:    "invalid_final_stack",
	OperandParseError:    "operand_parse_error",
	ArithmeticOverflow:   "arithmetic_overflow",
}

var kindMessages = [...]string{
	InsufficientOperands: "not enough operands",
	UnknownOperator:      "unknown operator",
	DivisionByZero:       "division by zero",
	StackOverflow:        "stack capacity reached",
	InvalidFinalStack:    "invalid stack",
	OperandParseError:    "invalid operand",
	ArithmeticOverflow:   "arithmetic overflow",
}

// Kinds lists every failure kind, in declaration order.
func Kinds() []Kind {
	return []Kind{
		InsufficientOperands,
		UnknownOperator,
		DivisionByZero,
		StackOverflow,
		InvalidFinalStack,
		OperandParseError,
		ArithmeticOverflow,
	}
}

// String returns a stable snake_case name, suitable for structured output
// and metric labels.
func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Error() string {
	if k > 0 && int(k) < len(kindMessages) {
		return kindMessages[k]
	}
	return k.String()
}

// Error describes a failed line evaluation. Token and Index identify the
// token being processed when evaluation stopped; Index is -1 when the failure
// is not attributable to a single token (e.g. a failed pre-check, or an
// invalid final stack). Depth is the stack depth at the point of failure.
type Error struct {
	Kind  Kind
	Token string
	Index int
	Depth int
	Err   error
}

func (err *Error) Error() string {
	switch err.Kind {
	case UnknownOperator, OperandParseError:
		return fmt.Sprintf("%v %q", err.Kind.Error(), err.Token)
	}
	return err.Kind.Error()
}

// Unwrap returns the Kind, so that errors.Is(err, rpn.DivisionByZero) works,
// followed by any underlying cause.
func (err *Error) Unwrap() []error {
	if err.Err != nil {
		return []error{err.Kind, err.Err}
	}
	return []error{err.Kind}
}

// KindOf returns the failure Kind carried by err, or 0 if err is not a line
// failure.
func KindOf(err error) Kind {
	var kind Kind
	if errors.As(err, &kind) {
		return kind
	}
	return 0
}

func fail(kind Kind, token string, index, depth int) *Error {
	return &Error{Kind: kind, Token: token, Index: index, Depth: depth}
}
