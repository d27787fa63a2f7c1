package rpn

// Option configures an Evaluator.
type Option interface{ apply(ev *Evaluator) }

// Defaults reproduce the reference evaluator: a 10 deep stack of 32-bit
// integers, supporting all four operators.
const (
	DefaultMaxDepth = 10
	DefaultBits     = 32
)

var defaults = []Option{
	WithMaxDepth(DefaultMaxDepth),
	WithBits(DefaultBits),
	WithOperators(AllOps),
}

// Options combines any number of options into one.
func Options(opts ...Option) Option { return options(opts) }

type options []Option

func (opts options) apply(ev *Evaluator) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(ev)
		}
	}
}

// maxPrealloc caps how much of the stack bound is allocated up front; deeper
// stacks grow on push.
const maxPrealloc = 64

type maxDepthOption int
type bitsOption int
type opsOption OpSet
type logfnOption func(mess string, args ...interface{})

// WithMaxDepth bounds how many values may be resident on the stack: pushing
// an operand onto a full stack fails the line with StackOverflow. Negative
// values are treated as 0.
func WithMaxDepth(n int) Option { return maxDepthOption(n) }

// WithBits sets the integer width of operands and results; values outside
// 1..64 select 64.
func WithBits(bits int) Option { return bitsOption(bits) }

// WithOperators restricts the set of accepted operators.
func WithOperators(set OpSet) Option { return opsOption(set) }

// WithLogf enables trace logging of each evaluation step.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return logfnOption(logfn) }

func (n maxDepthOption) apply(ev *Evaluator) {
	if n < 0 {
		n = 0
	}
	ev.stack.limit = int(n)
	if want := min(int(n), maxPrealloc); cap(ev.stack.vals) < want {
		ev.stack.vals = make([]int64, 0, want)
	}
}

func (bits bitsOption) apply(ev *Evaluator) {
	if bits < 1 || bits > 64 {
		bits = 64
	}
	ev.bits = int(bits)
	ev.max = int64(^uint64(0) >> (65 - uint(bits)))
	ev.min = -ev.max - 1
}

func (set opsOption) apply(ev *Evaluator) { ev.ops = OpSet(set) }

func (logfn logfnOption) apply(ev *Evaluator) { ev.logfn = logfn }
