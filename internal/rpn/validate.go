package rpn

// HasOperands is the arity pre-check: it reports whether line contains at
// least two tokens that parse as 32-bit integers. Scanning stops as soon as
// the second one is seen. Operators are not inspected.
func HasOperands(line string) bool { return hasOperands(line, DefaultBits) }

func hasOperands(line string, bits int) bool {
	sc := scanner{line: line}
	count := 0
	for {
		token, ok := sc.next()
		if !ok {
			return false
		}
		if _, numeric, err := parseOperand(token, bits); numeric && err == nil {
			if count++; count == 2 {
				return true
			}
		}
	}
}
