package analysis

import (
	"sort"
	"time"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
)

// MonthlyAggregate is the per-month rollup. Only records with both a month
// and a recognized severity are counted, so the severity breakdown always
// sums to Incidents.
type MonthlyAggregate struct {
	Month string
	Tally
}

// MonthName renders "2024-01" as "Jan 2024". Unparseable keys are returned unchanged.
func MonthName(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("Jan 2006")
}

// Monthly groups records by year-month in chronological order.
func Monthly(records []domain.IncidentRecord) []MonthlyAggregate {
	groups := GroupBy(records, func(r domain.IncidentRecord) (string, bool) {
		return r.Month, r.Month != "" && r.Severity.Valid()
	})

	months := make([]string, 0, len(groups))
	for m := range groups {
		months = append(months, m)
	}
	// "YYYY-MM" sorts chronologically as a string.
	sort.Strings(months)

	out := make([]MonthlyAggregate, len(months))
	for i, m := range months {
		out[i] = MonthlyAggregate{Month: m, Tally: *groups[m]}
	}
	return out
}

// MonthlyStatistics are the derived figures on the monthly safety report.
type MonthlyStatistics struct {
	AvgIncidentsPerMonth     float64
	AvgCasualtiesPerIncident float64
	PeakMonth                string // empty when there are no months
	HighestCasualtyMonth     string
}

// SummarizeMonths derives averages and peaks. months must be in chronological
// order; the earliest month wins a tie.
func SummarizeMonths(months []MonthlyAggregate, totalIncidents, totalCasualties int) MonthlyStatistics {
	stats := MonthlyStatistics{
		AvgIncidentsPerMonth:     Ratio(totalIncidents, len(months)),
		AvgCasualtiesPerIncident: Ratio(totalCasualties, totalIncidents),
	}

	peak, worst := -1, -1
	for _, m := range months {
		if m.Incidents > peak {
			peak = m.Incidents
			stats.PeakMonth = m.Month
		}
		if m.Casualties > worst {
			worst = m.Casualties
			stats.HighestCasualtyMonth = m.Month
		}
	}
	return stats
}
