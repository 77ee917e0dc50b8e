package main

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/road-safety-reports/internal/analysis"
	"github.com/couchcryptid/road-safety-reports/internal/domain"
	"github.com/couchcryptid/road-safety-reports/internal/report"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// artifacts holds every decoded report. A nil field failed to load.
type artifacts struct {
	monthly   *report.MonthlySafetyReport
	hotspots  *report.HotspotReport
	response  *report.EmergencyResponseReport
	trends    *report.MonthlyTrendsReport
	factors   *report.RiskFactorsReport
	severity  *report.SeverityDistributionReport
	layer     *report.FeatureCollection
	summary   *report.DatasetSummary
	generated map[string]time.Time
}

func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Road Safety Report Validation ===")
	fmt.Fprintln(out)

	phases := validateDir(validateIn)
	if !printPhases(out, phases) {
		return errors.New("validation failed")
	}
	return nil
}

func validateDir(dir string) []*phase {
	present := &phase{name: "Artifacts present and decodable"}
	a := artifacts{generated: map[string]time.Time{}}

	a.monthly = load[report.MonthlySafetyReport](dir, report.MonthlySafety, present)
	a.hotspots = load[report.HotspotReport](dir, report.HotspotAnalysis, present)
	a.response = load[report.EmergencyResponseReport](dir, report.EmergencyResponse, present)
	a.trends = load[report.MonthlyTrendsReport](dir, report.MonthlyTrends, present)
	a.factors = load[report.RiskFactorsReport](dir, report.RiskFactorsAnalysis, present)
	a.severity = load[report.SeverityDistributionReport](dir, report.SeverityDistribution, present)
	a.layer = load[report.FeatureCollection](dir, report.HotspotLayer, present)
	a.summary = load[report.DatasetSummary](dir, report.AccidentsSummary, present)

	if a.monthly != nil {
		a.generated[report.MonthlySafety.File] = a.monthly.GeneratedDate
	}
	if a.hotspots != nil {
		a.generated[report.HotspotAnalysis.File] = a.hotspots.GeneratedDate
	}
	if a.response != nil {
		a.generated[report.EmergencyResponse.File] = a.response.GeneratedDate
	}
	if a.trends != nil {
		a.generated[report.MonthlyTrends.File] = a.trends.GeneratedDate
	}
	if a.factors != nil {
		a.generated[report.RiskFactorsAnalysis.File] = a.factors.GeneratedDate
	}
	if a.severity != nil {
		a.generated[report.SeverityDistribution.File] = a.severity.GeneratedDate
	}

	return []*phase{
		present,
		validateMonthly(a),
		validateHotspots(a),
		validateResponse(a),
		validateFactors(a),
		validateSeverity(a),
		validateSummary(a),
		validateGeneratedDate(a),
	}
}

func load[T any](dir string, kind report.Kind, p *phase) *T {
	data, err := os.ReadFile(filepath.Join(dir, kind.File))
	if err != nil {
		p.errorf("%s: %v", kind.File, err)
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		p.errorf("%s: decode: %v", kind.File, err)
		return nil
	}
	return &v
}

func validateMonthly(a artifacts) *phase {
	p := &phase{name: "Monthly severity breakdowns"}
	if a.monthly == nil || a.trends == nil {
		p.errorf("monthly reports not loaded")
		return p
	}
	checkTrends := func(file string, trends []report.MonthlyTrend) {
		for i, t := range trends {
			if sum := t.SeverityBreakdown.Total(); sum != t.Incidents {
				p.errorf("%s %s: severity breakdown sums to %d, incidents=%d", file, t.Month, sum, t.Incidents)
			}
			if i > 0 && trends[i-1].Month >= t.Month {
				p.errorf("%s: months out of order at %s", file, t.Month)
			}
		}
	}
	checkTrends(report.MonthlySafety.File, a.monthly.Trends)
	checkTrends(report.MonthlyTrends.File, a.trends.Trends)

	if a.monthly.TotalMonthsCovered != len(a.monthly.Trends) {
		p.errorf("total_months_covered=%d but %d trends", a.monthly.TotalMonthsCovered, len(a.monthly.Trends))
	}
	if !slices.Equal(a.monthly.Trends, a.trends.Trends) {
		p.errorf("monthly trends differ between %s and %s", report.MonthlySafety.File, report.MonthlyTrends.File)
	}
	var dated int
	for _, t := range a.monthly.Trends {
		dated += t.Incidents
	}
	if dated > a.monthly.TotalIncidents {
		p.errorf("monthly incidents %d exceed total_incidents %d", dated, a.monthly.TotalIncidents)
	}
	return p
}

func validateHotspots(a artifacts) *phase {
	p := &phase{name: "Hotspot breakdowns and risk tiers"}
	if a.hotspots == nil {
		p.errorf("hotspot report not loaded")
		return p
	}
	top := a.hotspots.TopHotspots
	if len(top) > analysis.TopHotspots {
		p.errorf("%d top hotspots, limit %d", len(top), analysis.TopHotspots)
	}
	if a.hotspots.TotalUniqueHotspots < len(top) {
		p.errorf("total_unique_hotspots=%d below listed %d", a.hotspots.TotalUniqueHotspots, len(top))
	}
	for i, h := range top {
		if sum := h.SeverityBreakdown.Total(); sum > h.Incidents {
			p.errorf("%s: severity breakdown sums to %d, above incidents=%d", h.Location, sum, h.Incidents)
		}
		if want := string(analysis.RiskTierFor(h.Incidents)); h.RiskLevel != want {
			p.errorf("%s: %d incidents labelled %s, want %s", h.Location, h.Incidents, h.RiskLevel, want)
		}
		if i > 0 && top[i-1].Incidents < h.Incidents {
			p.errorf("%s: ranked below a cell with fewer incidents", h.Location)
		}
	}

	if a.layer == nil {
		p.errorf("hotspot layer not loaded")
		return p
	}
	if len(a.layer.Features) > report.HotspotLayerMax {
		p.errorf("hotspot layer has %d features, limit %d", len(a.layer.Features), report.HotspotLayerMax)
	}
	for _, f := range a.layer.Features {
		lon, lat := f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]
		if math.Abs(lat) > 90 || math.Abs(lon) > 180 {
			p.errorf("hotspot layer feature out of range: [%v, %v]", lon, lat)
		}
		if want := string(analysis.RiskTierFor(f.Properties.Count)); f.Properties.RiskLevel != want {
			p.errorf("hotspot layer feature [%v, %v]: %d incidents labelled %s, want %s",
				lon, lat, f.Properties.Count, f.Properties.RiskLevel, want)
		}
	}
	return p
}

func validateResponse(a artifacts) *phase {
	p := &phase{name: "Police response rates"}
	if a.response == nil {
		p.errorf("emergency response report not loaded")
		return p
	}
	forces := a.response.PoliceResponse.ByPoliceForce
	if len(forces) > report.TopPoliceForces {
		p.errorf("%d police forces listed, limit %d", len(forces), report.TopPoliceForces)
	}
	for i, f := range forces {
		if f.Attended+f.NotAttended != f.TotalIncidents {
			p.errorf("force %s: attended %d + not attended %d != total %d", f.ForceID, f.Attended, f.NotAttended, f.TotalIncidents)
		}
		if want := analysis.Percent(f.Attended, f.TotalIncidents); f.ResponseRate != want {
			p.errorf("force %s: response_rate=%.2f, want %.2f", f.ForceID, f.ResponseRate, want)
		}
		if i > 0 && forces[i-1].TotalIncidents < f.TotalIncidents {
			p.errorf("force %s: ranked below a force with fewer incidents", f.ForceID)
		}
	}
	for _, h := range a.response.HourlyDistribution.AllHours {
		if h.Hour < 0 || h.Hour >= analysis.HoursPerDay {
			p.errorf("hour %d out of range", h.Hour)
		}
	}
	return p
}

func validateFactors(a artifacts) *phase {
	p := &phase{name: "Risk factor rankings"}
	if a.factors == nil {
		p.errorf("risk factors report not loaded")
		return p
	}
	f := a.factors.Factors
	for name, ranked := range map[string][]report.FactorCount{
		"light_conditions":        f.LightConditions,
		"weather_conditions":      f.WeatherConditions,
		"road_surface_conditions": f.RoadSurfaceConditions,
		"special_conditions":      f.SpecialConditions,
	} {
		if len(ranked) > report.TopRiskFactors {
			p.errorf("%s: %d factors listed, limit %d", name, len(ranked), report.TopRiskFactors)
		}
		sorted := slices.IsSortedFunc(ranked, func(x, y report.FactorCount) int {
			if x.Count != y.Count {
				return cmp.Compare(y.Count, x.Count)
			}
			return cmp.Compare(x.Factor, y.Factor)
		})
		if !sorted {
			p.errorf("%s: not ordered by count desc, factor asc", name)
		}
	}
	return p
}

func validateSeverity(a artifacts) *phase {
	p := &phase{name: "Severity distribution"}
	if a.severity == nil {
		p.errorf("severity distribution report not loaded")
		return p
	}
	s := a.severity
	var classified int
	var pct float64
	for _, d := range s.Distribution {
		classified += d.Count
		pct += d.Percentage
	}
	if classified+s.UnclassifiedIncidents != s.TotalIncidents {
		p.errorf("classified %d + unclassified %d != total %d", classified, s.UnclassifiedIncidents, s.TotalIncidents)
	}
	if len(s.Distribution) != len(domain.Severities) {
		p.errorf("%d severity levels listed, want %d", len(s.Distribution), len(domain.Severities))
	}
	for _, d := range s.Distribution {
		if want := analysis.Percent(d.Count, classified); d.Percentage != want {
			p.errorf("%s: percentage=%.2f, want %.2f", d.SeverityLevel, d.Percentage, want)
		}
	}
	if classified > 0 {
		if eps := 0.01*float64(len(s.Distribution)) + 1e-9; math.Abs(pct-100) > eps {
			p.errorf("percentages sum to %.2f, want 100 +/- %.2f", pct, eps)
		}
	}
	return p
}

func validateSummary(a artifacts) *phase {
	p := &phase{name: "Dataset summary"}
	if a.summary == nil {
		p.errorf("dataset summary not loaded")
		return p
	}
	s := a.summary
	if a.severity != nil && s.TotalRows != a.severity.TotalIncidents {
		p.errorf("total_rows=%d but severity report counts %d incidents", s.TotalRows, a.severity.TotalIncidents)
	}
	for _, dim := range []struct {
		name  string
		list  []report.KeyCount
		limit int
	}{
		{"by_severity", s.BySeverity, report.SummaryTopSeverities},
		{"by_day_of_week", s.ByDayOfWeek, report.SummaryTopDaysOfWeek},
		{"by_hour", s.ByHour, report.SummaryTopHours},
		{"by_police_force", s.ByPoliceForce, report.SummaryTopPoliceForces},
	} {
		if len(dim.list) > dim.limit {
			p.errorf("%s: %d entries, limit %d", dim.name, len(dim.list), dim.limit)
		}
		sum := 0
		for i, kc := range dim.list {
			sum += kc.Count
			if i > 0 && dim.list[i-1].Count < kc.Count {
				p.errorf("%s: key %s ranked below a key with fewer incidents", dim.name, kc.Key)
			}
		}
		if sum > s.TotalRows {
			p.errorf("%s: counts sum to %d, above total_rows %d", dim.name, sum, s.TotalRows)
		}
	}
	return p
}

func validateGeneratedDate(a artifacts) *phase {
	p := &phase{name: "Single generation timestamp"}
	var first time.Time
	for _, k := range report.Kinds {
		ts, ok := a.generated[k.File]
		if !ok {
			continue
		}
		if ts.IsZero() {
			p.errorf("%s: generated_date missing", k.File)
			continue
		}
		if first.IsZero() {
			first = ts
		} else if !ts.Equal(first) {
			p.errorf("%s: generated_date %s differs from %s", k.File, ts.Format(time.RFC3339), first.Format(time.RFC3339))
		}
	}
	return p
}

// printPhases writes a pass/fail table followed by detailed errors and
// reports whether every phase passed.
func printPhases(w io.Writer, phases []*phase) bool {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
	} else {
		fmt.Fprintln(w, "\nValidation FAILED.")
	}
	return allPassed
}
