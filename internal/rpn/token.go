package rpn

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Op is one of the supported binary operators.
type Op uint8

// Supported operators; each pops rhs then lhs, and pushes "lhs op rhs".
const (
	Add Op = iota + 1
	Sub
	Mul
	Div
)

var opSymbols = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
}

func (op Op) String() string {
	if op > 0 && int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// ParseOp maps an operator symbol to its Op.
func ParseOp(symbol string) (Op, bool) {
	switch symbol {
	case "+":
		return Add, true
	case "-":
		return Sub, true
	case "*":
		return Mul, true
	case "/":
		return Div, true
	}
	return 0, false
}

// OpSet is a set of enabled operators.
type OpSet uint8

// AllOps enables every supported operator.
const AllOps = OpSet(1<<Add | 1<<Sub | 1<<Mul | 1<<Div)

// NewOpSet builds an OpSet from operator symbols.
func NewOpSet(symbols ...string) (OpSet, error) {
	var set OpSet
	for _, sym := range symbols {
		op, ok := ParseOp(sym)
		if !ok {
			return 0, fmt.Errorf("unsupported operator %q", sym)
		}
		set |= 1 << op
	}
	return set, nil
}

// Has returns true if op is in the set.
func (set OpSet) Has(op Op) bool { return set&(1<<op) != 0 }

// Ops returns the set members in declaration order.
func (set OpSet) Ops() (ops []Op) {
	for op := Add; op <= Div; op++ {
		if set.Has(op) {
			ops = append(ops, op)
		}
	}
	return ops
}

func (set OpSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, op := range set.Ops() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(op.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Fields splits a line into its whitespace-delimited tokens.
func Fields(line string) []string { return strings.Fields(line) }

// scanner lazily yields the whitespace-delimited tokens of a line; count is
// the number of tokens yielded so far.
type scanner struct {
	line  string
	count int
}

func (sc *scanner) next() (token string, ok bool) {
	line := strings.TrimLeftFunc(sc.line, unicode.IsSpace)
	if line == "" {
		sc.line = ""
		return "", false
	}
	end := strings.IndexFunc(line, unicode.IsSpace)
	if end < 0 {
		end = len(line)
	}
	token, sc.line = line[:end], line[end:]
	sc.count++
	return token, true
}

// parseOperand parses a decimal integer within the given bit width.
// The second return is true if the token looked numeric, even when parsing
// failed (range error), so that such tokens are not mistaken for operators.
func parseOperand(token string, bits int) (n int64, numeric bool, err error) {
	if !looksNumeric(token) {
		return 0, false, nil
	}
	n, err = strconv.ParseInt(token, 10, bits)
	return n, true, err
}

func looksNumeric(token string) bool {
	if len(token) > 0 && (token[0] == '+' || token[0] == '-') {
		token = token[1:]
	}
	if len(token) == 0 {
		return false
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return true
}
