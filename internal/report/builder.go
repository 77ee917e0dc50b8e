// Package report assembles the analysis results into the JSON report payloads
// written by the pipeline and served by the read-only API.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/couchcryptid/road-safety-reports/internal/analysis"
	"github.com/couchcryptid/road-safety-reports/internal/domain"
)

// Ranking sizes for the emitted lists.
const (
	TopPoliceForces = 15
	TopPeakHours    = 5
	TopRiskFactors  = 5
	HotspotLayerMax = 200

	SummaryTopSeverities   = 10
	SummaryTopDaysOfWeek   = 10
	SummaryTopHours        = 24
	SummaryTopPoliceForces = 10
)

// hotspotRecommendations are the advisory lines on every hotspot report.
var hotspotRecommendations = []string{
	"Deploy additional police units at CRITICAL risk zones during peak hours",
	"Install traffic calming measures in HIGH risk areas",
	"Implement speed monitoring and enforcement at hotspots",
	"Improve street lighting and visibility at frequent accident locations",
	"Analyze underlying causes (intersections, road design, etc.) for targeted interventions",
}

// Builder produces every report for one dataset. All payloads share a single
// generated_date taken from the domain clock when the Builder is created.
type Builder struct {
	records []domain.IncidentRecord
	now     time.Time

	months []analysis.MonthlyAggregate
	cells  []analysis.HotspotCell
}

// NewBuilder captures records and the generation timestamp.
func NewBuilder(records []domain.IncidentRecord) *Builder {
	return &Builder{records: records, now: domain.Now()}
}

// GeneratedDate is the timestamp stamped on every payload.
func (b *Builder) GeneratedDate() time.Time { return b.now }

func (b *Builder) header(k Kind) Header {
	return Header{Title: k.Title, GeneratedDate: b.now}
}

func (b *Builder) monthly() []analysis.MonthlyAggregate {
	if b.months == nil {
		b.months = analysis.Monthly(b.records)
	}
	return b.months
}

func (b *Builder) hotspots() []analysis.HotspotCell {
	if b.cells == nil {
		b.cells = analysis.Hotspots(b.records)
	}
	return b.cells
}

func (b *Builder) trends() []MonthlyTrend {
	months := b.monthly()
	out := make([]MonthlyTrend, len(months))
	for i, m := range months {
		out[i] = MonthlyTrend{
			Month:             m.Month,
			MonthName:         analysis.MonthName(m.Month),
			Incidents:         m.Incidents,
			Casualties:        m.Casualties,
			SeverityBreakdown: m.Severity,
		}
	}
	return out
}

// MonthlySafety builds monthly_safety_report.json.
func (b *Builder) MonthlySafety() MonthlySafetyReport {
	incidents, casualties := analysis.Totals(b.records)
	months := b.monthly()
	stats := analysis.SummarizeMonths(months, incidents, casualties)

	return MonthlySafetyReport{
		Header:             b.header(MonthlySafety),
		TotalIncidents:     incidents,
		TotalCasualties:    casualties,
		TotalMonthsCovered: len(months),
		Trends:             b.trends(),
		Statistics: MonthlyStatistics{
			AvgIncidentsPerMonth:     stats.AvgIncidentsPerMonth,
			AvgCasualtiesPerIncident: stats.AvgCasualtiesPerIncident,
			PeakMonth:                optional(stats.PeakMonth),
			PeakMonthName:            optional(monthNameOrEmpty(stats.PeakMonth)),
			HighestCasualtyMonth:     optional(stats.HighestCasualtyMonth),
			HighestCasualtyMonthName: optional(monthNameOrEmpty(stats.HighestCasualtyMonth)),
		},
	}
}

// MonthlyTrends builds monthly_trends.json.
func (b *Builder) MonthlyTrends() MonthlyTrendsReport {
	return MonthlyTrendsReport{Header: b.header(MonthlyTrends), Trends: b.trends()}
}

// Hotspots builds hotspot_analysis_report.json without place names; see
// AnnotateHotspots.
func (b *Builder) Hotspots() HotspotReport {
	cells := b.hotspots()
	top := analysis.Top(cells, analysis.TopHotspots)

	out := make([]Hotspot, len(top))
	for i, c := range top {
		out[i] = Hotspot{
			Location:          c.Location(),
			Lat:               c.Lat(),
			Lng:               c.Lon(),
			Incidents:         c.Incidents,
			Casualties:        c.Casualties,
			RiskLevel:         string(c.RiskTier()),
			SeverityBreakdown: c.Severity,
		}
	}

	return HotspotReport{
		Header:              b.header(HotspotAnalysis),
		TotalUniqueHotspots: len(cells),
		TopHotspots:         out,
		Recommendations:     append([]string(nil), hotspotRecommendations...),
	}
}

// HotspotLayer builds the GeoJSON point layer of the busiest cells.
func (b *Builder) HotspotLayer() FeatureCollection {
	top := analysis.Top(b.hotspots(), HotspotLayerMax)
	features := make([]Feature, len(top))
	for i, c := range top {
		features[i] = Feature{
			Type:       "Feature",
			Properties: FeatureProperties{Count: c.Incidents, RiskLevel: string(c.RiskTier())},
			Geometry:   PointGeometry{Type: "Point", Coordinates: [2]float64{c.Lon(), c.Lat()}},
		}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// EmergencyResponse builds emergency_response_metrics.json.
func (b *Builder) EmergencyResponse() EmergencyResponseReport {
	forces := analysis.PoliceForces(b.records)
	shown := forces[:min(len(forces), TopPoliceForces)]
	byForce := make([]ForceResponse, len(shown))
	for i, f := range shown {
		byForce[i] = ForceResponse{
			ForceID:        strconv.Itoa(f.ForceID),
			TotalIncidents: f.Incidents,
			Attended:       f.Attended,
			NotAttended:    f.NotAttended(),
			ResponseRate:   f.ResponseRate(),
		}
	}

	hourly := analysis.Hourly(b.records)
	all := make([]HourCount, analysis.HoursPerDay)
	for h, c := range hourly.Counts {
		all[h] = HourCount{Hour: h, Incidents: c}
	}
	peak := hourly.Peak(TopPeakHours)
	peakHours := make([]HourCount, len(peak))
	for i, p := range peak {
		peakHours[i] = HourCount{Hour: p.Key, Incidents: p.Count}
	}

	return EmergencyResponseReport{
		Header: b.header(EmergencyResponse),
		PoliceResponse: PoliceResponse{
			ByPoliceForce:       byForce,
			OverallResponseRate: analysis.OverallResponseRate(b.records),
		},
		HourlyDistribution: HourlyDistribution{
			PeakIncidentHours:    peakHours,
			AllHours:             all,
			UnknownHourIncidents: hourly.Unknown,
		},
		ResourceAllocationRecommendations: recommendResources(hourly, peak, forces, analysis.Weekdays(b.records)),
	}
}

// RiskFactors builds risk_factors_analysis.json.
func (b *Builder) RiskFactors() RiskFactorsReport {
	rank := func(pick analysis.FactorSelector) []FactorCount {
		ranked := analysis.RankFactors(b.records, pick, TopRiskFactors)
		out := make([]FactorCount, len(ranked))
		for i, r := range ranked {
			out[i] = FactorCount{Factor: r.Key, Count: r.Count}
		}
		return out
	}

	return RiskFactorsReport{
		Header: b.header(RiskFactorsAnalysis),
		Factors: RiskFactors{
			LightConditions:       rank(analysis.LightConditions),
			WeatherConditions:     rank(analysis.WeatherConditions),
			RoadSurfaceConditions: rank(analysis.RoadSurfaceConditions),
			SpecialConditions:     rank(analysis.SpecialConditions),
		},
	}
}

// SeverityDistribution builds severity_distribution.json. Every recognized
// level is listed, including those with no incidents. Percentages are over
// classified incidents.
func (b *Builder) SeverityDistribution() SeverityDistributionReport {
	breakdown, unclassified := analysis.BySeverity(b.records)
	classified := breakdown.Total()

	dist := make([]SeverityShare, 0, len(domain.Severities))
	for _, s := range domain.Severities {
		n := breakdown.Count(s)
		dist = append(dist, SeverityShare{
			SeverityLevel: s.Label(),
			Code:          int(s),
			Count:         n,
			Percentage:    analysis.Percent(n, classified),
		})
	}

	return SeverityDistributionReport{
		Header:                b.header(SeverityDistribution),
		Distribution:          dist,
		TotalIncidents:        len(b.records),
		UnclassifiedIncidents: unclassified,
	}
}

// Summary builds accidents_summary.json.
func (b *Builder) Summary() DatasetSummary {
	rank := func(key analysis.KeySelector, n int) []KeyCount {
		ranked := analysis.CountBy(b.records, key, n)
		out := make([]KeyCount, len(ranked))
		for i, r := range ranked {
			out[i] = KeyCount{Key: strconv.Itoa(r.Key), Count: r.Count}
		}
		return out
	}

	return DatasetSummary{
		TotalRows:     len(b.records),
		BySeverity:    rank(analysis.SeverityKey, SummaryTopSeverities),
		ByDayOfWeek:   rank(analysis.DayOfWeekKey, SummaryTopDaysOfWeek),
		ByHour:        rank(analysis.HourKey, SummaryTopHours),
		ByPoliceForce: rank(analysis.PoliceForceKey, SummaryTopPoliceForces),
	}
}

// nightHours is the low-demand window used for the night shift line.
const nightHours = 6

func recommendResources(hourly analysis.HourlyDistribution, peak []analysis.Ranked[int], forces []analysis.PoliceForceMetric, days analysis.WeekdayDistribution) ResourceRecommendations {
	var rec ResourceRecommendations

	timed := 0
	for _, c := range hourly.Counts {
		timed += c
	}

	if len(peak) == 0 || peak[0].Count == 0 {
		rec.PeakHours = "No timed incidents recorded"
	} else {
		h := peak[0].Key
		rec.PeakHours = fmt.Sprintf("%02d:00-%02d:00 has the highest incident volume and requires maximum coverage",
			h, (h+1)%analysis.HoursPerDay)
	}

	night := 0
	for h := 0; h < nightHours; h++ {
		night += hourly.Counts[h]
	}
	rec.NightShift = fmt.Sprintf("00:00-%02d:00 accounts for %.2f%% of timed incidents and can operate with reduced resources",
		nightHours, analysis.Percent(night, timed))

	total, top := 0, 0
	for i, f := range forces {
		total += f.Incidents
		if i < 3 {
			top += f.Incidents
		}
	}
	if total == 0 {
		rec.HighForceLoad = "No police force data recorded"
	} else {
		rec.HighForceLoad = fmt.Sprintf("The %d busiest police forces handle %.2f%% of incidents; prioritize resources there",
			min(len(forces), 3), analysis.Percent(top, total))
	}

	uplift, ok := days.WeekendUplift()
	switch {
	case !ok:
		rec.Weekend = "No day of week recorded"
	case uplift >= 0:
		rec.Weekend = fmt.Sprintf("Friday-Saturday average %.2f%% more incidents per day than Sunday-Thursday; schedule additional weekend patrols", uplift)
	default:
		rec.Weekend = fmt.Sprintf("Friday-Saturday average %.2f%% fewer incidents per day than Sunday-Thursday", -uplift)
	}
	return rec
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func monthNameOrEmpty(month string) string {
	if month == "" {
		return ""
	}
	return analysis.MonthName(month)
}
