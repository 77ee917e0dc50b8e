package pipeline_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/road-safety-reports/internal/adapter/csvsource"
	"github.com/couchcryptid/road-safety-reports/internal/adapter/filestore"
	"github.com/couchcryptid/road-safety-reports/internal/domain"
	"github.com/couchcryptid/road-safety-reports/internal/observability"
	"github.com/couchcryptid/road-safety-reports/internal/pipeline"
	"github.com/couchcryptid/road-safety-reports/internal/report"
)

// writeMockDataset generates a synthetic STATS19 CSV under t.TempDir.
func writeMockDataset(t *testing.T, rows int, seed uint64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accidents.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, csvsource.WriteSynthetic(f, csvsource.SyntheticOptions{Rows: rows, Seed: seed}))
	return path
}

func runOnDisk(t *testing.T, dataPath, outDir string) pipeline.Summary {
	t.Helper()
	p := pipeline.New(
		csvsource.NewLoader(dataPath, discardLogger()),
		filestore.NewWriter(outDir, discardLogger()),
		nil, nil,
		discardLogger(),
		observability.NewMetricsForTesting(),
	)
	sum, err := p.Run(context.Background())
	require.NoError(t, err)
	return sum
}

func readReport[T any](t *testing.T, dir string, k report.Kind) T {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, k.File))
	require.NoError(t, err)
	var v T
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestPipeline_MockDataset_EndToEnd(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	dataPath := writeMockDataset(t, 2000, 11)
	outDir := t.TempDir()

	sum := runOnDisk(t, dataPath, outDir)
	assert.Equal(t, 2000, sum.Records)

	safety := readReport[report.MonthlySafetyReport](t, outDir, report.MonthlySafety)
	assert.Equal(t, 2000, safety.TotalIncidents)
	assert.Equal(t, 12, safety.TotalMonthsCovered)
	for _, m := range safety.Trends {
		assert.Equal(t, m.Incidents, m.SeverityBreakdown.Total(), m.Month)
	}

	hotspots := readReport[report.HotspotReport](t, outDir, report.HotspotAnalysis)
	assert.LessOrEqual(t, len(hotspots.TopHotspots), 50)
	for i := 1; i < len(hotspots.TopHotspots); i++ {
		assert.GreaterOrEqual(t, hotspots.TopHotspots[i-1].Incidents, hotspots.TopHotspots[i].Incidents)
	}

	emergency := readReport[report.EmergencyResponseReport](t, outDir, report.EmergencyResponse)
	assert.Len(t, emergency.HourlyDistribution.AllHours, 24)
	for _, f := range emergency.PoliceResponse.ByPoliceForce {
		assert.GreaterOrEqual(t, f.ResponseRate, 0.0)
		assert.LessOrEqual(t, f.ResponseRate, 100.0)
	}

	severity := readReport[report.SeverityDistributionReport](t, outDir, report.SeverityDistribution)
	total := 0.0
	for _, s := range severity.Distribution {
		total += s.Percentage
	}
	assert.InDelta(t, 100, total, 0.03)

	layer := readReport[report.FeatureCollection](t, outDir, report.HotspotLayer)
	assert.Equal(t, "FeatureCollection", layer.Type)
	assert.LessOrEqual(t, len(layer.Features), report.HotspotLayerMax)

	summary := readReport[report.DatasetSummary](t, outDir, report.AccidentsSummary)
	assert.Equal(t, 2000, summary.TotalRows)
	assert.Len(t, summary.ByDayOfWeek, 7)
	assert.LessOrEqual(t, len(summary.ByHour), report.SummaryTopHours)
	days := 0
	for _, d := range summary.ByDayOfWeek {
		days += d.Count
	}
	assert.Equal(t, 2000, days)
	assert.Contains(t, emergency.ResourceAllocationRecommendations.Weekend, "Friday-Saturday average")
}

func TestPipeline_MockDataset_Idempotent(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	dataPath := writeMockDataset(t, 800, 3)
	first, second := t.TempDir(), t.TempDir()

	runOnDisk(t, dataPath, first)
	runOnDisk(t, dataPath, second)

	kinds := append([]report.Kind{report.HotspotLayer, report.AccidentsSummary}, report.Kinds...)
	for _, k := range kinds {
		a, err := os.ReadFile(filepath.Join(first, k.File))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, k.File))
		require.NoError(t, err)
		if diff := cmp.Diff(string(a), string(b)); diff != "" {
			t.Errorf("%s differs between runs (-first +second):\n%s", k.File, diff)
		}
	}
}
