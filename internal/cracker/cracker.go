// Package cracker runs the concurrent search: a coordinator streams
// candidates from a generator into a shared work queue, a fixed pool of
// workers tests them against the archive, and the whole pipeline shuts down
// promptly once any worker publishes a hit or the sequence runs out.
package cracker

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"zipcrack/internal/generate"
)

// queueDepth bounds the candidate backlog between the coordinator and the
// workers. Shutdown correctness never depends on this buffer being drained.
const queueDepth = 1024

var (
	ErrNoWorkers = errors.New("worker count must be a positive integer")
	ErrNoTester  = errors.New("no password tester configured")
)

// Tester checks one password against the target archive. An error means the
// attempt failed, not that the search should stop.
type Tester func(password string) (bool, error)

// AttemptRecorder receives one record per tested candidate. Implementations
// must not block the caller.
type AttemptRecorder interface {
	Record(method, password string, ok bool)
}

type nopRecorder struct{}

func (nopRecorder) Record(string, string, bool) {}

// Config wires a Cracker together.
type Config struct {
	Source   generate.Source
	Tester   Tester
	Workers  int
	Progress *Progress       // optional
	Attempts AttemptRecorder // optional
	Log      *zap.SugaredLogger
}

// item is one work-queue entry: either a candidate or the stop sentinel.
// A worker that dequeues a sentinel exits immediately without testing it.
type item struct {
	cand generate.Candidate
	stop bool
}

// Cracker owns the search pipeline for one archive.
type Cracker struct {
	cfg    Config
	log    *zap.SugaredLogger
	result *Result
	state  State
}

// New validates the configuration. A zero or negative worker count is a
// setup error reported here, before anything could deadlock on it.
func New(cfg Config) (*Cracker, error) {
	if cfg.Tester == nil {
		return nil, ErrNoTester
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoWorkers, cfg.Workers)
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop().Sugar()
	}
	if cfg.Attempts == nil {
		cfg.Attempts = nopRecorder{}
	}
	return &Cracker{
		cfg:    cfg,
		log:    cfg.Log,
		result: NewResult(),
		state:  StateIdle,
	}, nil
}

// State returns the coordinator's current lifecycle state. Only Run's
// goroutine writes it; concurrent reads during a run are advisory.
func (c *Cracker) State() State {
	return c.state
}

// Result exposes the single-assignment result slot.
func (c *Cracker) Result() *Result {
	return c.result
}

func (c *Cracker) transition(to State) {
	if !ValidTransition(c.state, to) {
		c.log.DPanicf("invalid state transition %s -> %s", c.state, to)
	}
	c.log.Debugf("state %s -> %s", c.state, to)
	c.state = to
}

// Run executes the search until a password is found, the candidate sequence
// is exhausted, or ctx is cancelled. It returns the found password and true,
// or "" and false when the space was exhausted (or the run was cancelled).
// Cancellation and success share the same draining path: stop producing,
// deliver one stop sentinel per worker, join the pool.
func (c *Cracker) Run(ctx context.Context) (string, bool, error) {
	if c.state != StateIdle {
		return "", false, fmt.Errorf("run already started (state %s)", c.state)
	}

	queue := make(chan item, queueDepth)
	// Workers that exit without consuming a sentinel (they found the
	// password) announce themselves here so sentinel delivery can never
	// block on a queue nobody is reading.
	earlyExit := make(chan struct{}, c.cfg.Workers)

	var pool errgroup.Group
	for i := 0; i < c.cfg.Workers; i++ {
		id := i
		pool.Go(func() error {
			c.worker(id, queue, earlyExit)
			return nil
		})
	}
	c.transition(StateRunning)

	produced := 0
	c.cfg.Source.All()(func(cand generate.Candidate) bool {
		select {
		case <-c.result.Done():
			return false
		case <-ctx.Done():
			return false
		case queue <- item{cand: cand}:
			produced++
			return true
		}
	})

	c.transition(StateDraining)
	c.log.Debugf("draining after %d candidates queued", produced)

	pending := c.cfg.Workers
	for pending > 0 {
		select {
		case queue <- item{stop: true}:
			pending--
		case <-earlyExit:
			pending--
		}
	}
	if err := pool.Wait(); err != nil {
		return "", false, err
	}

	if password, found := c.result.Value(); found {
		c.transition(StateFound)
		return password, true, nil
	}
	c.transition(StateExhausted)
	return "", false, ctx.Err()
}

// worker pulls items until it sees its stop sentinel or it finds the
// password. Tester errors count as failed attempts; a wrong password on an
// AES entry surfaces as an error, so errors here are the common case, not a
// reason to stop.
func (c *Cracker) worker(id int, queue <-chan item, earlyExit chan<- struct{}) {
	defer func() {
		// A panic here would otherwise take down the process; recover,
		// report, and let draining treat this worker as gone.
		if r := recover(); r != nil {
			c.log.Errorf("worker %d panic: %v: %s", id, r, debug.Stack())
			earlyExit <- struct{}{}
		}
	}()

	for {
		it := <-queue
		if it.stop {
			return
		}

		ok, err := c.cfg.Tester(it.cand.Password)
		if err != nil {
			ok = false
		}
		if c.cfg.Progress != nil {
			c.cfg.Progress.Tick()
		}
		c.cfg.Attempts.Record(it.cand.Phase.String(), it.cand.Password, ok)

		if ok {
			if c.result.Publish(it.cand.Password) {
				c.log.Infof("worker %d found password %q", id, it.cand.Password)
			}
			earlyExit <- struct{}{}
			return
		}
	}
}
