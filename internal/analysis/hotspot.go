package analysis

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
)

// Grid cells are 0.001 degrees on each axis, roughly 100 m at UK latitudes.
// Cells never merge across a rounding boundary, even when adjacent.
const (
	cellScale = 1000

	// TopHotspots is how many cells the hotspot report keeps.
	TopHotspots = 50
)

// RiskTier is the coarse label attached to a hotspot cell.
type RiskTier string

const (
	RiskCritical RiskTier = "CRITICAL"
	RiskHigh     RiskTier = "HIGH"
	RiskMedium   RiskTier = "MEDIUM"
)

// RiskTierFor maps a cell's incident count to its tier:
// more than 50 is CRITICAL, 21-50 is HIGH, anything else MEDIUM.
func RiskTierFor(incidents int) RiskTier {
	switch {
	case incidents > 50:
		return RiskCritical
	case incidents > 20:
		return RiskHigh
	default:
		return RiskMedium
	}
}

type cellKey struct {
	lat int64 // milli-degrees
	lon int64
}

func keyFor(g domain.Geo) cellKey {
	return cellKey{
		lat: int64(math.Round(g.Lat * cellScale)),
		lon: int64(math.Round(g.Lon * cellScale)),
	}
}

// HotspotCell is one grid cell with its accumulated incidents.
type HotspotCell struct {
	key cellKey
	Tally
}

// Lat is the cell latitude rounded to three decimals.
func (c HotspotCell) Lat() float64 { return float64(c.key.lat) / cellScale }

// Lon is the cell longitude rounded to three decimals.
func (c HotspotCell) Lon() float64 { return float64(c.key.lon) / cellScale }

// Location renders the cell as "lat,lng" using the shortest exact decimal form.
func (c HotspotCell) Location() string {
	return strconv.FormatFloat(c.Lat(), 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon(), 'f', -1, 64)
}

// RiskTier is derived from the incident count on every call.
func (c HotspotCell) RiskTier() RiskTier {
	return RiskTierFor(c.Incidents)
}

// Hotspots bins located records into grid cells and returns every cell ordered
// by incidents descending, then latitude and longitude ascending.
func Hotspots(records []domain.IncidentRecord) []HotspotCell {
	groups := GroupBy(records, func(r domain.IncidentRecord) (cellKey, bool) {
		if !r.Geo.Located() {
			return cellKey{}, false
		}
		return keyFor(r.Geo), true
	})

	cells := make([]HotspotCell, 0, len(groups))
	for k, t := range groups {
		cells = append(cells, HotspotCell{key: k, Tally: *t})
	}
	slices.SortFunc(cells, compareCells)
	return cells
}

func compareCells(a, b HotspotCell) int {
	if a.Incidents != b.Incidents {
		return cmp.Compare(b.Incidents, a.Incidents)
	}
	if a.key.lat != b.key.lat {
		return cmp.Compare(a.key.lat, b.key.lat)
	}
	return cmp.Compare(a.key.lon, b.key.lon)
}

// Top returns at most n leading cells of an already ordered slice.
func Top(cells []HotspotCell, n int) []HotspotCell {
	if len(cells) > n {
		return cells[:n]
	}
	return cells
}
