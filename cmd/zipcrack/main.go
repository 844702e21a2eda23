package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/shirou/gopsutil/cpu"
	"go.uber.org/zap"

	"zipcrack/internal/archive"
	"zipcrack/internal/attemptlog"
	"zipcrack/internal/cracker"
	"zipcrack/internal/generate"
	"zipcrack/internal/wordlist"
)

// maxBruteLength caps -length so the closed-form estimate stays within int64
// (70^10 is the largest power that fits comfortably).
const maxBruteLength = 10

var (
	file    = flag.String("file", "", "zip archive to crack")
	length  = flag.Int("length", 4, "maximum brute-force password length (0 disables brute force)")
	dict    = flag.String("dict", "", "optional custom dictionary file, one word per line")
	workers = flag.Int("workers", 0, "number of workers (0 means one per logical CPU)")
	extract = flag.Bool("extract", false, "extract the archive once the password is found")
	logPath = flag.String("log", "", "attempt log CSV path (default password_attempts_<timestamp>.csv)")
	noBar   = flag.Bool("quiet", false, "disable the progress bar")
)

func main() {
	flag.Parse()

	devLog, err := zap.NewDevelopment()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	log := devLog.Sugar()
	defer log.Sync()

	if err := run(log); err != nil {
		log.Errorf("setup failed: %v", err)
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	if *file == "" {
		return errors.New("-file is required")
	}
	if *length < 0 || *length > maxBruteLength {
		return fmt.Errorf("-length must be between 0 and %d, got %d", maxBruteLength, *length)
	}
	workerCount := *workers
	if workerCount == 0 {
		workerCount = defaultWorkers(log)
	}
	if workerCount < 1 {
		return fmt.Errorf("-workers must be a positive integer, got %d", workerCount)
	}
	if err := archive.Validate(*file); err != nil {
		return err
	}

	words := wordlist.Load(*dict, log)
	src := generate.Source{
		Words:     words,
		Charset:   generate.DefaultCharset,
		MaxLength: *length,
	}
	total := src.EstimateTotal()
	log.Infof("searching %s: %d dictionary words, brute force to length %d, %d workers, ~%d candidates",
		*file, len(words), *length, workerCount, total)

	var bar *pb.ProgressBar
	onTick := func() {}
	if !*noBar {
		bar = pb.Full.Start64(total)
		bar.SetRefreshRate(1 * time.Second)
		onTick = func() { bar.Increment() }
	}
	progress := cracker.NewProgress(onTick)

	attempts := newAttemptLog(log)

	c, err := cracker.New(cracker.Config{
		Source:   src,
		Tester:   func(password string) (bool, error) { return archive.TestPassword(*file, password) },
		Workers:  workerCount,
		Progress: progress,
		Attempts: attempts,
		Log:      log,
	})
	if err != nil {
		return err
	}

	startTime := time.Now()
	password, found, err := c.Run(context.Background())

	progress.Close()
	if bar != nil {
		bar.Finish()
	}
	if closer, ok := attempts.(*attemptlog.Logger); ok {
		closer.Close()
	}
	if err != nil {
		return err
	}

	log.Infof("tested %d candidates in %v", progress.Count(), time.Since(startTime))
	if !found {
		log.Info("password not found, search space exhausted")
		return nil
	}

	log.Infof("password: %q", password)
	if *extract {
		if _, err := archive.Extract(*file, password, log); err != nil {
			log.Warnf("extraction failed: %v", err)
		}
	}
	return nil
}

// newAttemptLog opens the CSV attempt log, falling back to a no-op recorder
// when the file cannot be created. Auxiliary output never blocks the search.
func newAttemptLog(log *zap.SugaredLogger) cracker.AttemptRecorder {
	path := *logPath
	if path == "" {
		path = attemptlog.DefaultPath()
	}
	l, err := attemptlog.New(path, log)
	if err != nil {
		log.Warnf("attempt logging disabled: %v", err)
		return nopRecorder{}
	}
	log.Infof("logging attempts to %s", path)
	return l
}

type nopRecorder struct{}

func (nopRecorder) Record(string, string, bool) {}

// defaultWorkers sizes the pool to the machine's logical CPU count.
func defaultWorkers(log *zap.SugaredLogger) int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		log.Debugf("cpu count unavailable (%v), using runtime.NumCPU", err)
		return runtime.NumCPU()
	}
	return n
}
