package analysis

import "github.com/couchcryptid/road-safety-reports/internal/domain"

// DaysPerWeek is the number of day-of-week buckets.
const DaysPerWeek = 7

// STATS19 day_of_week codes run from 1 (Sunday) to 7 (Saturday).
const (
	Sunday   = 1
	Friday   = 6
	Saturday = 7
)

// WeekdayDistribution counts incidents per day of week. Counts[0] is Sunday.
type WeekdayDistribution struct {
	Counts  [DaysPerWeek]int
	Unknown int
}

// Weekdays buckets records by day_of_week code. Missing or out-of-range codes
// land in Unknown.
func Weekdays(records []domain.IncidentRecord) WeekdayDistribution {
	var w WeekdayDistribution
	for _, r := range records {
		d := r.DayOfWeek
		if !d.Valid || d.Value < Sunday || d.Value > Saturday {
			w.Unknown++
			continue
		}
		w.Counts[d.Value-Sunday]++
	}
	return w
}

// Recorded is the number of incidents with a usable day of week.
func (w WeekdayDistribution) Recorded() int {
	n := 0
	for _, c := range w.Counts {
		n += c
	}
	return n
}

// WeekendUplift compares the mean daily count on Friday and Saturday with the
// mean over Sunday to Thursday, as a signed percentage. ok is false when
// Sunday to Thursday has no incidents to compare against.
func (w WeekdayDistribution) WeekendUplift() (pct float64, ok bool) {
	weekend := w.Counts[Friday-Sunday] + w.Counts[Saturday-Sunday]
	other := w.Recorded() - weekend
	if other == 0 {
		return 0, false
	}
	// (weekend/2) / (other/5) - 1
	return Percent(weekend*5-other*2, other*2), true
}
