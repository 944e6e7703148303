package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/harrison/verifier/internal/models"
)

// Write renders r and stores it at path. The format is taken from format
// when non-empty, otherwise from the file extension.
func Write(path string, r *models.Report, format Format) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	data, err := Render(r, format)
	if err != nil {
		return err
	}
	return LockAndWrite(path, data)
}

// LockAndWrite holds an exclusive lock on path+".lock" while atomically
// replacing path with data, so two runs sharing a report path never
// interleave.
func LockAndWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", path, err)
	}
	defer lock.Unlock()

	return AtomicWrite(path, data)
}

// AtomicWrite writes data to a temp file in the target directory and
// renames it over path. Readers never observe a partial report.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	tempFile, err := os.CreateTemp(dir, ".tmp-report-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	tempFile = nil
	return nil
}
