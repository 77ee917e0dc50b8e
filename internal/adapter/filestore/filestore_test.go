package filestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
	"github.com/couchcryptid/road-safety-reports/internal/report"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriter_WritesIndentedJSON(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, discardLogger())

	a, err := w.Write(report.MonthlyTrends, map[string]any{"trends": []int{1}})

	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "monthly_trends.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"trends\": [\n    1\n  ]\n}\n", string(data))
	assert.Equal(t, len(data), a.Bytes)
	sum := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), a.SHA256)
	assert.Equal(t, filepath.Join(dir, "monthly_trends.json"), a.Path)
	assert.Equal(t, "monthly-trends", a.Report)
	assert.Equal(t, "monthly_trends.json", a.File)
}

func TestWriter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	_, err := NewWriter(dir, discardLogger()).Write(report.RiskFactorsAnalysis, struct{}{})

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, report.RiskFactorsAnalysis.File))
}

func TestWriter_OverwritesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, discardLogger())

	_, err := w.Write(report.SeverityDistribution, map[string]int{"run": 1})
	require.NoError(t, err)
	_, err = w.Write(report.SeverityDistribution, map[string]int{"run": 2})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, report.SeverityDistribution.File))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run": 2`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, report.SeverityDistribution.File, entries[0].Name())
}

func TestWriter_FailureIsWriteError(t *testing.T) {
	dir := t.TempDir()
	// A directory occupying the target path makes the rename fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, report.HotspotAnalysis.File), 0o755))

	_, err := NewWriter(dir, discardLogger()).Write(report.HotspotAnalysis, struct{}{})

	var werr *domain.WriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, report.HotspotAnalysis.File, werr.Report)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be cleaned up")
}

func TestWriter_EncodeFailureIsWriteError(t *testing.T) {
	_, err := NewWriter(t.TempDir(), discardLogger()).Write(report.MonthlySafety, map[string]any{"bad": make(chan int)})

	var werr *domain.WriteError
	require.ErrorAs(t, err, &werr)
	assert.Contains(t, err.Error(), "encode")
}

func TestReader(t *testing.T) {
	dir := t.TempDir()
	_, err := NewWriter(dir, discardLogger()).Write(report.MonthlySafety, map[string]int{"total_incidents": 3})
	require.NoError(t, err)

	r := NewReader(dir)

	data, err := r.Read(report.MonthlySafety)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_incidents":3}`, string(data))
	assert.True(t, r.Exists(report.MonthlySafety))

	_, err = r.Read(report.MonthlyTrends)
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, r.Exists(report.MonthlyTrends))

	missing := r.Missing()
	assert.Len(t, missing, len(report.Kinds)-1)
	assert.NotContains(t, missing, report.MonthlySafety)
}

func TestReader_CheckReadiness(t *testing.T) {
	dir := t.TempDir()
	r := NewReader(dir)

	err := r.CheckReadiness(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), report.SeverityDistribution.File)

	w := NewWriter(dir, discardLogger())
	for _, k := range report.Kinds {
		_, err := w.Write(k, struct{}{})
		require.NoError(t, err)
	}
	assert.NoError(t, r.CheckReadiness(context.Background()))
}
