package analysis

import "github.com/couchcryptid/road-safety-reports/internal/domain"

// FactorSelector picks one category code off a record.
type FactorSelector func(domain.IncidentRecord) domain.Code

// Risk factor columns ranked on the risk factors report.
var (
	LightConditions       FactorSelector = func(r domain.IncidentRecord) domain.Code { return r.Light }
	WeatherConditions     FactorSelector = func(r domain.IncidentRecord) domain.Code { return r.Weather }
	RoadSurfaceConditions FactorSelector = func(r domain.IncidentRecord) domain.Code { return r.RoadSurface }
	SpecialConditions     FactorSelector = func(r domain.IncidentRecord) domain.Code { return r.SpecialConditions }
)

// RankFactors counts each code of one factor column and returns the top n,
// ties by ascending code. Missing codes are not counted.
func RankFactors(records []domain.IncidentRecord, pick FactorSelector, n int) []Ranked[int] {
	counts := make(map[int]int)
	for _, r := range records {
		c := pick(r)
		if !c.Valid {
			continue
		}
		counts[c.Value]++
	}
	return TopN(counts, n)
}
