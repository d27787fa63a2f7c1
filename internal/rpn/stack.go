package rpn

// stack is the bounded operand stack of a single line evaluation.
type stack struct {
	vals  []int64
	limit int
}

func (st *stack) depth() int { return len(st.vals) }
func (st *stack) full() bool { return len(st.vals) >= st.limit }

func (st *stack) push(val int64) { st.vals = append(st.vals, val) }

// pop2 removes the top two values, returning them in push order.
func (st *stack) pop2() (lhs, rhs int64) {
	i := len(st.vals) - 2
	lhs, rhs = st.vals[i], st.vals[i+1]
	st.vals = st.vals[:i]
	return lhs, rhs
}

func (st *stack) pop() int64 {
	i := len(st.vals) - 1
	val := st.vals[i]
	st.vals = st.vals[:i]
	return val
}

// reset zeroes any resident values and empties the stack, retaining its
// capacity.
func (st *stack) reset() {
	clear(st.vals)
	st.vals = st.vals[:0]
}
