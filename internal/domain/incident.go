package domain

import (
	"math"
	"strconv"
)

// Severity is the collision severity code from the source dataset.
type Severity int

const (
	SeverityUnknown Severity = 0
	SeverityFatal   Severity = 1
	SeveritySevere Severity = 2
	SeveritySlight  Severity = 3
)

// Severities lists the recognized severity codes in code order.
var Severities = []Severity{SeverityFatal, SeveritySevere, SeveritySlight}

// Valid reports whether s is one of the three recognized codes.
func (s Severity) Valid() bool {
	return s >= SeverityFatal && s <= SeveritySlight
}

// Label returns the human-readable severity level.
func (s Severity) Label() string {
	switch s {
	case SeverityFatal:
		return "Fatal"
	case SeveritySevere:
		return "Severe"
	case SeveritySlight:
		return "Slight"
	default:
		return "Unknown"
	}
}

// HourUnknown is the hour bucket for records whose time field does not parse.
const HourUnknown = -1

// Code is an optional integer category code (weather, light, police force...).
// The zero value is a missing code.
type Code struct {
	Value int
	Valid bool
}

// NewCode returns a present code.
func NewCode(v int) Code {
	return Code{Value: v, Valid: true}
}

// String renders the code as its decimal value, or "" when missing.
func (c Code) String() string {
	if !c.Valid {
		return ""
	}
	return strconv.Itoa(c.Value)
}

// Geo is a WGS-84 latitude/longitude pair. Zero on either axis means the
// record carries no usable location.
type Geo struct {
	Lat float64
	Lon float64
}

// Located reports whether the coordinates can take part in spatial binning.
func (g Geo) Located() bool {
	if g.Lat == 0 || g.Lon == 0 {
		return false
	}
	return !math.IsNaN(g.Lat) && !math.IsNaN(g.Lon) && !math.IsInf(g.Lat, 0) && !math.IsInf(g.Lon, 0)
}

// IncidentRecord is one normalized traffic accident.
type IncidentRecord struct {
	Month             string // "2006-01"; empty when the date did not parse
	Hour              int    // 0-23, or HourUnknown
	Severity          Severity
	Casualties        int
	PoliceForce       Code
	Geo               Geo
	Weather           Code
	Light             Code
	RoadSurface       Code
	SpecialConditions Code
	DayOfWeek         Code // 1 = Sunday through 7 = Saturday
	PoliceAttended    bool
}

// SeverityBreakdown counts incidents per recognized severity.
type SeverityBreakdown struct {
	Fatal  int `json:"fatal"`
	Severe int `json:"severe"`
	Slight int `json:"slight"`
}

// Add counts one incident of severity s. Unrecognized severities are ignored.
func (b *SeverityBreakdown) Add(s Severity) {
	switch s {
	case SeverityFatal:
		b.Fatal++
	case SeveritySevere:
		b.Severe++
	case SeveritySlight:
		b.Slight++
	}
}

// Count returns the number of incidents recorded for s.
func (b SeverityBreakdown) Count(s Severity) int {
	switch s {
	case SeverityFatal:
		return b.Fatal
	case SeveritySevere:
		return b.Severe
	case SeveritySlight:
		return b.Slight
	default:
		return 0
	}
}

// Total is the number of classified incidents.
func (b SeverityBreakdown) Total() int {
	return b.Fatal + b.Severe + b.Slight
}
