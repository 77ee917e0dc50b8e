package analysis

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
)

// HoursPerDay is the number of hour buckets in the hourly distribution.
const HoursPerDay = 24

// HourlyDistribution counts incidents per hour of day. Every hour is present.
type HourlyDistribution struct {
	Counts  [HoursPerDay]int
	Unknown int
}

// Hourly buckets records by hour; unparseable hours land in Unknown.
func Hourly(records []domain.IncidentRecord) HourlyDistribution {
	var h HourlyDistribution
	for _, r := range records {
		if r.Hour < 0 || r.Hour >= HoursPerDay {
			h.Unknown++
			continue
		}
		h.Counts[r.Hour]++
	}
	return h
}

// Peak returns the n busiest hours, ties by earlier hour. Hours without
// incidents are never ranked.
func (h HourlyDistribution) Peak(n int) []Ranked[int] {
	counts := make(map[int]int, HoursPerDay)
	for hour, c := range h.Counts {
		if c == 0 {
			continue
		}
		counts[hour] = c
	}
	return TopN(counts, n)
}

// PoliceForceMetric is the attendance rollup for one police force.
type PoliceForceMetric struct {
	ForceID   int
	Incidents int
	Attended  int
}

// NotAttended is the number of incidents without an officer at the scene.
func (m PoliceForceMetric) NotAttended() int {
	return m.Incidents - m.Attended
}

// ResponseRate is the attended share as a percentage, 2 decimals.
func (m PoliceForceMetric) ResponseRate() float64 {
	return Percent(m.Attended, m.Incidents)
}

// PoliceForces rolls records up per force id, ordered by incidents
// descending then force id ascending. Records without a force id are skipped.
func PoliceForces(records []domain.IncidentRecord) []PoliceForceMetric {
	byForce := make(map[int]*PoliceForceMetric)
	for _, r := range records {
		if !r.PoliceForce.Valid {
			continue
		}
		m, ok := byForce[r.PoliceForce.Value]
		if !ok {
			m = &PoliceForceMetric{ForceID: r.PoliceForce.Value}
			byForce[r.PoliceForce.Value] = m
		}
		m.Incidents++
		if r.PoliceAttended {
			m.Attended++
		}
	}

	out := make([]PoliceForceMetric, 0, len(byForce))
	for _, m := range byForce {
		out = append(out, *m)
	}
	slices.SortFunc(out, func(a, b PoliceForceMetric) int {
		if a.Incidents != b.Incidents {
			return cmp.Compare(b.Incidents, a.Incidents)
		}
		return cmp.Compare(a.ForceID, b.ForceID)
	})
	return out
}

// OverallResponseRate is the attended share across every record.
func OverallResponseRate(records []domain.IncidentRecord) float64 {
	attended := 0
	for _, r := range records {
		if r.PoliceAttended {
			attended++
		}
	}
	return Percent(attended, len(records))
}
