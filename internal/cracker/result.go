package cracker

import "sync"

// Result is a single-assignment slot for the found password. The first
// Publish wins; every later Publish is a no-op. With several workers testing
// concurrently, which of multiple independently valid passwords wins is
// timing-dependent; that nondeterminism is accepted.
type Result struct {
	once     sync.Once
	done     chan struct{}
	password string
}

func NewResult() *Result {
	return &Result{done: make(chan struct{})}
}

// Publish stores the password if the slot is still empty and reports whether
// this call was the winning write.
func (r *Result) Publish(password string) bool {
	won := false
	r.once.Do(func() {
		r.password = password
		close(r.done)
		won = true
	})
	return won
}

// Done returns a channel closed by the winning Publish. This is the signal
// the coordinator selects on to start draining.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Value returns the published password, if any, without blocking.
func (r *Result) Value() (string, bool) {
	select {
	case <-r.done:
		return r.password, true
	default:
		return "", false
	}
}
