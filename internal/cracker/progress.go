package cracker

import (
	"sync"
	"sync/atomic"
)

// progressBuffer is large enough that ticks are only dropped when the
// consumer is badly behind; dropped ticks cost a display update, never a
// stalled worker.
const progressBuffer = 1 << 16

// Progress aggregates per-attempt completion signals. Workers call Tick once
// per tested candidate; a single consumer goroutine owns the counter and the
// optional per-tick callback (typically a progress bar increment), so no
// shared counter is touched from more than one goroutine.
//
// The running count can exceed the advisory total estimate; that is not an
// error.
type Progress struct {
	ticks     chan struct{}
	count     atomic.Int64
	closeOnce sync.Once
	stopped   chan struct{}
}

// NewProgress starts the consumer goroutine. onTick may be nil.
func NewProgress(onTick func()) *Progress {
	p := &Progress{
		ticks:   make(chan struct{}, progressBuffer),
		stopped: make(chan struct{}),
	}
	go func() {
		defer close(p.stopped)
		for range p.ticks {
			p.count.Add(1)
			if onTick != nil {
				onTick()
			}
		}
	}()
	return p
}

// Tick records one completed attempt. It never blocks: if the buffer is full
// the tick is dropped.
func (p *Progress) Tick() {
	select {
	case p.ticks <- struct{}{}:
	default:
	}
}

// Count returns the number of ticks consumed so far. Monotonic.
func (p *Progress) Count() int64 {
	return p.count.Load()
}

// Close drains remaining ticks and stops the consumer. Callers must ensure
// no Tick can arrive after Close; the workers are joined before the
// coordinator returns, so closing after Run satisfies that.
func (p *Progress) Close() {
	p.closeOnce.Do(func() {
		close(p.ticks)
	})
	<-p.stopped
}
