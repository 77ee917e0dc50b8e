package analysis

import "github.com/couchcryptid/road-safety-reports/internal/domain"

// MissingKey is the bucket for records that carry no value for a dimension.
const MissingKey = -1

// KeySelector extracts one integer dimension from a record. ok is false when
// the record has no value for it.
type KeySelector func(domain.IncidentRecord) (key int, ok bool)

// Summary dimensions for the dataset overview.
var (
	SeverityKey KeySelector = func(r domain.IncidentRecord) (int, bool) {
		return int(r.Severity), r.Severity.Valid()
	}
	DayOfWeekKey KeySelector = func(r domain.IncidentRecord) (int, bool) {
		return r.DayOfWeek.Value, r.DayOfWeek.Valid
	}
	HourKey KeySelector = func(r domain.IncidentRecord) (int, bool) {
		return r.Hour, r.Hour >= 0 && r.Hour < HoursPerDay
	}
	PoliceForceKey KeySelector = func(r domain.IncidentRecord) (int, bool) {
		return r.PoliceForce.Value, r.PoliceForce.Valid
	}
)

// CountBy counts every record under the value key selects, or under
// MissingKey when it has none, and keeps the top n.
func CountBy(records []domain.IncidentRecord, key KeySelector, n int) []Ranked[int] {
	counts := make(map[int]int)
	for _, r := range records {
		k, ok := key(r)
		if !ok {
			k = MissingKey
		}
		counts[k]++
	}
	return TopN(counts, n)
}
