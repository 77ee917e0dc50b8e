// Package analysis computes the grouped counts, rankings and derived
// statistics behind every report. All functions are pure single passes over
// the normalized record slice; nothing here keeps state between calls.
//
// Every ranking is ordered by count descending, then by the natural ascending
// order of its key. Map iteration order never leaks into output.
package analysis

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
)

// Tally is the accumulator shared by every grouped dimension.
type Tally struct {
	Incidents  int
	Casualties int
	Severity   domain.SeverityBreakdown
}

func (t *Tally) add(r domain.IncidentRecord) {
	t.Incidents++
	t.Casualties += r.Casualties
	t.Severity.Add(r.Severity)
}

// GroupBy accumulates records into one Tally per key. Records for which key
// returns false are left out of this dimension only.
func GroupBy[K comparable](records []domain.IncidentRecord, key func(domain.IncidentRecord) (K, bool)) map[K]*Tally {
	groups := make(map[K]*Tally)
	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		t, exists := groups[k]
		if !exists {
			t = &Tally{}
			groups[k] = t
		}
		t.add(r)
	}
	return groups
}

// Ranked is one entry of a top-N ranking.
type Ranked[K cmp.Ordered] struct {
	Key   K
	Count int
}

// TopN ranks counts by count descending, ties by ascending key, and keeps at
// most n entries. n <= 0 keeps all of them.
func TopN[K cmp.Ordered](counts map[K]int, n int) []Ranked[K] {
	ranked := make([]Ranked[K], 0, len(counts))
	for k, c := range counts {
		ranked = append(ranked, Ranked[K]{Key: k, Count: c})
	}
	slices.SortFunc(ranked, func(a, b Ranked[K]) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Key, b.Key)
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Totals returns the record count and casualty sum over the whole dataset.
func Totals(records []domain.IncidentRecord) (incidents, casualties int) {
	for _, r := range records {
		casualties += r.Casualties
	}
	return len(records), casualties
}

// BySeverity counts classified records per severity and returns how many
// records carried no recognized severity.
func BySeverity(records []domain.IncidentRecord) (domain.SeverityBreakdown, int) {
	var b domain.SeverityBreakdown
	unclassified := 0
	for _, r := range records {
		if !r.Severity.Valid() {
			unclassified++
			continue
		}
		b.Add(r.Severity)
	}
	return b, unclassified
}
