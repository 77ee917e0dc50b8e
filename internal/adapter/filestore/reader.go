package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/road-safety-reports/internal/report"
)

// Reader serves previously written artifacts from a directory.
type Reader struct {
	dir string
}

// NewReader creates a Reader over dir.
func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// Read returns the artifact bytes verbatim. A missing artifact yields an
// error matching fs.ErrNotExist.
func (r *Reader) Read(kind report.Kind) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, kind.File))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", kind.File, err)
	}
	return data, nil
}

// Exists reports whether the artifact file is present.
func (r *Reader) Exists(kind report.Kind) bool {
	info, err := os.Stat(filepath.Join(r.dir, kind.File))
	return err == nil && info.Mode().IsRegular()
}

// Missing lists the report kinds whose artifacts are absent.
func (r *Reader) Missing() []report.Kind {
	var missing []report.Kind
	for _, k := range report.Kinds {
		if !r.Exists(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// CheckReadiness returns nil once every report artifact exists.
func (r *Reader) CheckReadiness(_ context.Context) error {
	missing := r.Missing()
	if len(missing) == 0 {
		return nil
	}
	files := make([]string, len(missing))
	for i, k := range missing {
		files[i] = k.File
	}
	return fmt.Errorf("reports not generated: %s", strings.Join(files, ", "))
}
