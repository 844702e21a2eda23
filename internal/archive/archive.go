// Package archive wraps the target zip file: validating it before the search
// starts, testing one password against it, and extracting it once the
// password is known.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yeka/zip"
	"go.uber.org/zap"
	"golift.io/xtractr"
)

var (
	ErrNoEntries    = errors.New("archive contains no file entries")
	ErrNotEncrypted = errors.New("archive contains no encrypted entries")
)

// Validate checks that path is a readable zip with at least one encrypted
// entry. Run it before spawning workers: a broken path should be one fatal
// error up front, not millions of identical per-candidate failures.
func Validate(path string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", path, err)
	}
	defer r.Close()

	hasFiles := false
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		hasFiles = true
		if f.IsEncrypted() {
			return nil
		}
	}
	if !hasFiles {
		return ErrNoEntries
	}
	return ErrNotEncrypted
}

// TestPassword reports whether password decrypts the archive at path. The
// archive is opened and closed within this call. A wrong password on an AES
// entry shows up as a read error, so ok=false with a non-nil error is the
// normal miss, never a fatal condition.
func TestPassword(path, password string) (bool, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return false, fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.IsEncrypted() {
			f.SetPassword(password)
		}

		rc, err := f.Open()
		if err != nil {
			return false, fmt.Errorf("open entry %s: %w", f.Name, err)
		}
		_, err = io.Copy(io.Discard, rc)
		rc.Close()
		if err != nil {
			return false, fmt.Errorf("read entry %s: %w", f.Name, err)
		}
		// One entry fully decrypted is proof enough.
		return true, nil
	}
	return false, ErrNoEntries
}

// Extract unpacks the archive next to itself using the found password and
// returns the number of bytes written.
func Extract(path, password string, log *zap.SugaredLogger) (int64, error) {
	x := &xtractr.XFile{
		FilePath:  path,
		OutputDir: path + "-output",
		Passwords: []string{password},
		DirMode:   os.FileMode(0750),
		FileMode:  os.FileMode(0640),
	}
	size, files, _, err := xtractr.ExtractFile(x)
	if err != nil {
		return size, fmt.Errorf("extract %s: %w", path, err)
	}
	log.Infof("extracted %d files (%d bytes) to %s", len(files), size, x.OutputDir)
	return size, nil
}
