// Package filestore persists report artifacts as files in a single
// directory and reads them back for the API.
package filestore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
	"github.com/couchcryptid/road-safety-reports/internal/report"
)

// Writer serializes report payloads into dir. Each file is replaced
// atomically with a temp file and rename, so readers never see a partial
// report. Concurrent Writers on the same directory are not supported: the
// last rename wins per file and a run may mix artifacts from two runs.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer for dir. The directory is created on first write.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Write encodes payload as two-space indented JSON with a trailing newline
// and stores it under the kind's file name. Any failure is a *domain.WriteError.
func (w *Writer) Write(kind report.Kind, payload any) (domain.Artifact, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return domain.Artifact{}, &domain.WriteError{Report: kind.File, Err: fmt.Errorf("encode: %w", err)}
	}
	data = append(data, '\n')

	path := filepath.Join(w.dir, kind.File)
	if err := writeAtomic(path, data); err != nil {
		w.logger.Error("report write failed", "report", kind.File, "path", path, "error", err)
		return domain.Artifact{}, &domain.WriteError{Report: kind.File, Err: err}
	}

	sum := sha256.Sum256(data)
	a := domain.Artifact{
		Report: kind.Slug,
		File:   kind.File,
		Path:   path,
		Bytes:  len(data),
		SHA256: hex.EncodeToString(sum[:]),
	}
	w.logger.Info("report written", "report", kind.File, "bytes", a.Bytes)
	return a, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}

	success = true
	return nil
}
