package report

import "github.com/jcorbin/gorpn/internal/batch"

// Tee combines any number of sinks into one that reports to all of them, in
// order, stopping at the first error.
func Tee(sinks ...batch.Sink) batch.Sink {
	switch ss := appendSinks(nil, sinks...); len(ss) {
	case 0:
		return nil
	case 1:
		return ss[0]
	default:
		return ss
	}
}

type tee []batch.Sink

func (ss tee) Report(o batch.Outcome) error {
	for _, s := range ss {
		if err := s.Report(o); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every sink that supports it, returning the first error.
func (ss tee) Flush() (err error) {
	for _, s := range ss {
		if ferr := Flush(s); err == nil {
			err = ferr
		}
	}
	return err
}

func appendSinks(all tee, some ...batch.Sink) tee {
	for _, one := range some {
		if many, ok := one.(tee); ok {
			all = append(all, many...)
		} else if one != nil {
			all = append(all, one)
		}
	}
	return all
}

// Flush flushes s, if it buffers output.
func Flush(s batch.Sink) error {
	if f, ok := s.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
