// Package attemptlog writes the CSV record of every tested candidate.
// Recording is fire-and-forget: workers hand records to a single writer
// goroutine over a buffered channel and never wait on disk I/O. A full
// buffer drops the record, and a failing log file degrades to a one-time
// warning; neither can slow down or abort the search.
package attemptlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

const recordBuffer = 1 << 14

var header = []string{"Timestamp", "Method", "Password", "Result"}

type record struct {
	when     time.Time
	method   string
	password string
	ok       bool
}

// Logger appends attempt records to a CSV file asynchronously.
type Logger struct {
	records   chan record
	closeOnce sync.Once
	stopped   chan struct{}
	warnOnce  sync.Once
	log       *zap.SugaredLogger
}

// DefaultPath returns the timestamped file name used when no path is given.
func DefaultPath() string {
	return fmt.Sprintf("password_attempts_%s.csv", time.Now().Format("20060102_150405"))
}

// New creates the CSV file, writes the header, and starts the writer
// goroutine. The returned error is a degraded-mode condition for the caller
// to warn about, not a reason to stop the search.
func New(path string, log *zap.SugaredLogger) (*Logger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create attempt log: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write attempt log header: %w", err)
	}

	l := &Logger{
		records: make(chan record, recordBuffer),
		stopped: make(chan struct{}),
		log:     log,
	}
	go l.writeLoop(f, w)
	return l, nil
}

func (l *Logger) writeLoop(f *os.File, w *csv.Writer) {
	defer close(l.stopped)
	defer f.Close()
	defer w.Flush()

	for r := range l.records {
		row := []string{
			r.when.Format(time.RFC3339),
			r.method,
			r.password,
			strconv.FormatBool(r.ok),
		}
		if err := w.Write(row); err != nil {
			l.warnOnce.Do(func() {
				l.log.Warnf("attempt log write failed, further records discarded: %v", err)
			})
		}
	}
}

// Record enqueues one attempt. Never blocks; drops the record if the writer
// is behind.
func (l *Logger) Record(method, password string, ok bool) {
	select {
	case l.records <- record{when: time.Now(), method: method, password: password, ok: ok}:
	default:
	}
}

// Close flushes and closes the file. Call after all workers have stopped.
func (l *Logger) Close() {
	l.closeOnce.Do(func() {
		close(l.records)
	})
	<-l.stopped
}
