package analysis

import (
	"testing"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(month string, sev domain.Severity, casualties int) domain.IncidentRecord {
	return domain.IncidentRecord{Month: month, Hour: domain.HourUnknown, Severity: sev, Casualties: casualties}
}

func located(lat, lon float64, sev domain.Severity) domain.IncidentRecord {
	return domain.IncidentRecord{Hour: domain.HourUnknown, Severity: sev, Geo: domain.Geo{Lat: lat, Lon: lon}}
}

func TestMonthly_SeverityBreakdown(t *testing.T) {
	records := []domain.IncidentRecord{
		rec("2024-03", domain.SeverityFatal, 2),
		rec("2024-03", domain.SeveritySlight, 1),
		rec("2024-03", domain.SeverityFatal, 0),
	}

	months := Monthly(records)

	require.Len(t, months, 1)
	assert.Equal(t, "2024-03", months[0].Month)
	assert.Equal(t, 3, months[0].Incidents)
	assert.Equal(t, 3, months[0].Casualties)
	assert.Equal(t, domain.SeverityBreakdown{Fatal: 2, Severe: 0, Slight: 1}, months[0].Severity)
}

func TestMonthly_OrderAndExclusions(t *testing.T) {
	records := []domain.IncidentRecord{
		rec("2024-02", domain.SeveritySevere, 1),
		rec("2023-12", domain.SeveritySlight, 1),
		rec("2024-01", domain.SeverityUnknown, 4), // unknown severity: out of the monthly rollup
		rec("", domain.SeverityFatal, 1),          // no month
		rec("2024-01", domain.SeveritySlight, 2),
	}

	months := Monthly(records)

	require.Len(t, months, 3)
	assert.Equal(t, []string{"2023-12", "2024-01", "2024-02"}, []string{months[0].Month, months[1].Month, months[2].Month})
	assert.Equal(t, 1, months[1].Incidents)
	assert.Equal(t, 2, months[1].Casualties)
	for _, m := range months {
		assert.Equal(t, m.Incidents, m.Severity.Total(), "breakdown must sum to incidents for %s", m.Month)
	}
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Jan 2024", MonthName("2024-01"))
	assert.Equal(t, "garbage", MonthName("garbage"))
}

func TestSummarizeMonths(t *testing.T) {
	months := []MonthlyAggregate{
		{Month: "2024-01", Tally: Tally{Incidents: 5, Casualties: 9}},
		{Month: "2024-02", Tally: Tally{Incidents: 7, Casualties: 3}},
		{Month: "2024-03", Tally: Tally{Incidents: 7, Casualties: 9}},
	}

	stats := SummarizeMonths(months, 19, 21)

	assert.Equal(t, 6.33, stats.AvgIncidentsPerMonth)
	assert.Equal(t, 1.11, stats.AvgCasualtiesPerIncident)
	assert.Equal(t, "2024-02", stats.PeakMonth, "tie resolves to the earliest month")
	assert.Equal(t, "2024-01", stats.HighestCasualtyMonth)
}

func TestSummarizeMonths_Empty(t *testing.T) {
	stats := SummarizeMonths(nil, 0, 0)

	assert.Zero(t, stats.AvgIncidentsPerMonth)
	assert.Zero(t, stats.AvgCasualtiesPerIncident)
	assert.Empty(t, stats.PeakMonth)
	assert.Empty(t, stats.HighestCasualtyMonth)
}

func TestHotspots_MergeIntoOneCell(t *testing.T) {
	records := []domain.IncidentRecord{
		located(51.5001, -0.1001, domain.SeverityFatal),
		located(51.5004, -0.1004, domain.SeverityUnknown),
	}

	cells := Hotspots(records)

	require.Len(t, cells, 1)
	assert.Equal(t, 2, cells[0].Incidents)
	assert.Equal(t, 51.5, cells[0].Lat())
	assert.Equal(t, -0.1, cells[0].Lon())
	assert.Equal(t, "51.5,-0.1", cells[0].Location())
	assert.LessOrEqual(t, cells[0].Severity.Total(), cells[0].Incidents)
	assert.Equal(t, 1, cells[0].Severity.Fatal)
}

func TestHotspots_SkipsMissingLocation(t *testing.T) {
	records := []domain.IncidentRecord{
		located(0, -0.1, domain.SeveritySlight),
		located(51.5, 0, domain.SeveritySlight),
		located(0, 0, domain.SeveritySlight),
		located(53.4808, -2.2426, domain.SeveritySlight),
	}

	cells := Hotspots(records)

	require.Len(t, cells, 1)
	assert.Equal(t, "53.481,-2.243", cells[0].Location())
}

func TestHotspots_Ordering(t *testing.T) {
	records := []domain.IncidentRecord{
		located(52.0, -1.0, domain.SeveritySlight),
		located(51.0, -1.0, domain.SeveritySlight),
		located(51.0, -2.0, domain.SeveritySlight),
		located(53.0, -1.0, domain.SeveritySlight),
		located(53.0, -1.0, domain.SeveritySlight),
	}

	cells := Hotspots(records)

	require.Len(t, cells, 4)
	got := make([]string, len(cells))
	for i, c := range cells {
		got[i] = c.Location()
	}
	assert.Equal(t, []string{"53,-1", "51,-2", "51,-1", "52,-1"}, got)
}

func TestTop(t *testing.T) {
	var records []domain.IncidentRecord
	for i := 0; i < TopHotspots+10; i++ {
		records = append(records, located(50+float64(i)/100, -1, domain.SeveritySlight))
	}

	assert.Len(t, Top(Hotspots(records), TopHotspots), TopHotspots)
	assert.Len(t, Top(Hotspots(records[:3]), TopHotspots), 3)
}

func TestRiskTierFor(t *testing.T) {
	tests := []struct {
		incidents int
		want      RiskTier
	}{
		{0, RiskMedium},
		{20, RiskMedium},
		{21, RiskHigh},
		{50, RiskHigh},
		{51, RiskCritical},
		{500, RiskCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskTierFor(tt.incidents), "incidents=%d", tt.incidents)
	}
}

func TestRiskTierFor_Monotonic(t *testing.T) {
	rank := map[RiskTier]int{RiskMedium: 0, RiskHigh: 1, RiskCritical: 2}
	prev := rank[RiskTierFor(0)]
	for n := 1; n <= 200; n++ {
		cur := rank[RiskTierFor(n)]
		assert.GreaterOrEqual(t, cur, prev, "tier dropped at %d", n)
		prev = cur
	}
}

func TestPoliceForces(t *testing.T) {
	var records []domain.IncidentRecord
	for i := 0; i < 10; i++ {
		records = append(records, domain.IncidentRecord{PoliceForce: domain.NewCode(1), PoliceAttended: i < 7})
	}
	for i := 0; i < 4; i++ {
		records = append(records, domain.IncidentRecord{PoliceForce: domain.NewCode(44)})
		records = append(records, domain.IncidentRecord{PoliceForce: domain.NewCode(3), PoliceAttended: true})
	}
	records = append(records, domain.IncidentRecord{}) // no force id

	forces := PoliceForces(records)

	require.Len(t, forces, 3)
	assert.Equal(t, 1, forces[0].ForceID)
	assert.Equal(t, 10, forces[0].Incidents)
	assert.Equal(t, 7, forces[0].Attended)
	assert.Equal(t, 3, forces[0].NotAttended())
	assert.Equal(t, 70.0, forces[0].ResponseRate())
	assert.Equal(t, 3, forces[1].ForceID, "equal counts break on ascending force id")
	assert.Equal(t, 44, forces[2].ForceID)
	assert.Equal(t, 0.0, forces[2].ResponseRate())
}

func TestOverallResponseRate(t *testing.T) {
	records := []domain.IncidentRecord{{PoliceAttended: true}, {}, {}}
	assert.Equal(t, 33.33, OverallResponseRate(records))
	assert.Zero(t, OverallResponseRate(nil))
}

func TestHourly(t *testing.T) {
	records := []domain.IncidentRecord{
		{Hour: 17}, {Hour: 17}, {Hour: 8}, {Hour: 8}, {Hour: 23}, {Hour: domain.HourUnknown},
	}

	h := Hourly(records)

	assert.Len(t, h.Counts, HoursPerDay)
	assert.Equal(t, 2, h.Counts[17])
	assert.Equal(t, 1, h.Unknown)

	peak := h.Peak(3)
	require.Len(t, peak, 3)
	assert.Equal(t, []Ranked[int]{{Key: 8, Count: 2}, {Key: 17, Count: 2}, {Key: 23, Count: 1}}, peak)
}

func TestHourlyPeak_SkipsEmptyHours(t *testing.T) {
	h := Hourly([]domain.IncidentRecord{{Hour: 3}, {Hour: 3}})

	assert.Equal(t, []Ranked[int]{{Key: 3, Count: 2}}, h.Peak(5))
	assert.Empty(t, Hourly(nil).Peak(5))
}

func TestRankFactors(t *testing.T) {
	records := []domain.IncidentRecord{
		{Weather: domain.NewCode(2)},
		{Weather: domain.NewCode(1)},
		{Weather: domain.NewCode(9)},
		{Weather: domain.NewCode(1)},
		{Weather: domain.NewCode(-1)},
		{Weather: domain.NewCode(2)},
		{}, // missing
	}

	ranked := RankFactors(records, WeatherConditions, 3)

	assert.Equal(t, []Ranked[int]{{Key: 1, Count: 2}, {Key: 2, Count: 2}, {Key: -1, Count: 1}}, ranked)
	assert.Empty(t, RankFactors(records, LightConditions, 5))
}

func TestTopN_Deterministic(t *testing.T) {
	counts := map[int]int{5: 3, 4: 3, 3: 3, 2: 3, 1: 3}
	first := TopN(counts, 0)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, TopN(counts, 0))
	}
	assert.Equal(t, 1, first[0].Key)
}

func TestBySeverity(t *testing.T) {
	records := []domain.IncidentRecord{
		{Severity: domain.SeverityFatal},
		{Severity: domain.SeveritySlight},
		{Severity: domain.SeveritySlight},
		{Severity: domain.SeverityUnknown},
	}

	b, unclassified := BySeverity(records)

	assert.Equal(t, domain.SeverityBreakdown{Fatal: 1, Slight: 2}, b)
	assert.Equal(t, 1, unclassified)
}

func TestRounding(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"thirds", Percent(1, 3), 33.33},
		{"two thirds", Percent(2, 3), 66.67},
		{"half to even down", Percent(1, 800), 0.12},
		{"half to even up", Percent(3, 800), 0.38},
		{"exact", Percent(7, 10), 70},
		{"zero denominator", Percent(5, 0), 0},
		{"ratio half to even", Ratio(1, 8), 0.12},
		{"ratio zero denominator", Ratio(3, 0), 0},
		{"round2", Round2(2.675), 2.68},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestWeekdays(t *testing.T) {
	records := []domain.IncidentRecord{
		{DayOfWeek: domain.NewCode(1)},
		{DayOfWeek: domain.NewCode(7)},
		{DayOfWeek: domain.NewCode(7)},
		{DayOfWeek: domain.NewCode(8)},
		{},
	}

	w := Weekdays(records)

	assert.Equal(t, 1, w.Counts[0])
	assert.Equal(t, 2, w.Counts[Saturday-Sunday])
	assert.Equal(t, 2, w.Unknown)
	assert.Equal(t, 3, w.Recorded())
}

func TestWeekendUplift(t *testing.T) {
	tests := []struct {
		name   string
		counts [DaysPerWeek]int
		want   float64
		ok     bool
	}{
		{"busier weekend", [DaysPerWeek]int{10, 10, 10, 10, 10, 12, 12}, 20, true},
		{"quieter weekend", [DaysPerWeek]int{10, 10, 10, 10, 10, 5, 5}, -50, true},
		{"weekend only", [DaysPerWeek]int{0, 0, 0, 0, 0, 3, 1}, 0, false},
		{"no data", [DaysPerWeek]int{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WeekdayDistribution{Counts: tt.counts}.WeekendUplift()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountBy_MissingValuesShareOneBucket(t *testing.T) {
	records := []domain.IncidentRecord{
		{PoliceForce: domain.NewCode(5)},
		{PoliceForce: domain.NewCode(5)},
		{},
		{},
		{},
	}

	assert.Equal(t, []Ranked[int]{{Key: MissingKey, Count: 3}, {Key: 5, Count: 2}}, CountBy(records, PoliceForceKey, 10))
	assert.Equal(t, []Ranked[int]{{Key: MissingKey, Count: 3}}, CountBy(records, PoliceForceKey, 1))
	assert.Equal(t, []Ranked[int]{{Key: MissingKey, Count: 5}}, CountBy(records, DayOfWeekKey, 10))
}
