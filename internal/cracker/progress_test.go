package cracker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressCountsTicks(t *testing.T) {
	p := NewProgress(nil)
	for i := 0; i < 1000; i++ {
		p.Tick()
	}
	p.Close()

	assert.Equal(t, int64(1000), p.Count())
}

func TestProgressInvokesCallback(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	p := NewProgress(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	for i := 0; i < 50; i++ {
		p.Tick()
	}
	p.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 50, calls)
}

func TestProgressConcurrentTickers(t *testing.T) {
	p := NewProgress(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.Tick()
			}
		}()
	}
	wg.Wait()
	p.Close()

	// Ticks may be dropped under pressure but the counter is monotonic and
	// never exceeds what was emitted.
	assert.LessOrEqual(t, p.Count(), int64(800))
	assert.Positive(t, p.Count())
}

func TestProgressCloseIsIdempotent(t *testing.T) {
	p := NewProgress(nil)
	p.Tick()
	p.Close()
	p.Close()
	assert.Equal(t, int64(1), p.Count())
}
