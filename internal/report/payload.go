package report

import (
	"time"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
)

// Header is embedded in every report payload.
type Header struct {
	Title         string    `json:"report_title"`
	GeneratedDate time.Time `json:"generated_date"`
}

// MonthlyTrend is one month on the monthly safety and monthly trends reports.
type MonthlyTrend struct {
	Month             string                   `json:"month"`
	MonthName         string                   `json:"month_name"`
	Incidents         int                      `json:"incidents"`
	Casualties        int                      `json:"casualties"`
	SeverityBreakdown domain.SeverityBreakdown `json:"severity_breakdown"`
}

// MonthlyStatistics are the derived figures on the monthly safety report.
// Month fields are null when the dataset has no dated records.
type MonthlyStatistics struct {
	AvgIncidentsPerMonth     float64 `json:"avg_incidents_per_month"`
	AvgCasualtiesPerIncident float64 `json:"avg_casualties_per_incident"`
	PeakMonth                *string `json:"peak_month"`
	PeakMonthName            *string `json:"peak_month_name"`
	HighestCasualtyMonth     *string `json:"highest_casualty_month"`
	HighestCasualtyMonthName *string `json:"highest_casualty_month_name"`
}

// MonthlySafetyReport is monthly_safety_report.json.
type MonthlySafetyReport struct {
	Header
	TotalIncidents     int               `json:"total_incidents"`
	TotalCasualties    int               `json:"total_casualties"`
	TotalMonthsCovered int               `json:"total_months_covered"`
	Trends             []MonthlyTrend    `json:"trends"`
	Statistics         MonthlyStatistics `json:"statistics"`
}

// Hotspot is one grid cell on the hotspot analysis report.
type Hotspot struct {
	Location          string                   `json:"location"`
	LocationName      string                   `json:"location_name,omitempty"`
	Lat               float64                  `json:"lat"`
	Lng               float64                  `json:"lng"`
	Incidents         int                      `json:"incidents"`
	Casualties        int                      `json:"casualties"`
	RiskLevel         string                   `json:"risk_level"`
	SeverityBreakdown domain.SeverityBreakdown `json:"severity_breakdown"`
}

// HotspotReport is hotspot_analysis_report.json.
type HotspotReport struct {
	Header
	TotalUniqueHotspots int       `json:"total_unique_hotspots"`
	TopHotspots         []Hotspot `json:"top_hotspots"`
	Recommendations     []string  `json:"recommendations"`
}

// ForceResponse is one police force row on the emergency response report.
type ForceResponse struct {
	ForceID        string  `json:"force_id"`
	TotalIncidents int     `json:"total_incidents"`
	Attended       int     `json:"attended"`
	NotAttended    int     `json:"not_attended"`
	ResponseRate   float64 `json:"response_rate"`
}

// PoliceResponse groups attendance figures.
type PoliceResponse struct {
	ByPoliceForce       []ForceResponse `json:"by_police_force"`
	OverallResponseRate float64         `json:"overall_response_rate"`
}

// HourCount is the incident count for one hour of day.
type HourCount struct {
	Hour      int `json:"hour"`
	Incidents int `json:"incidents"`
}

// HourlyDistribution is the hour-of-day breakdown used for shift planning.
type HourlyDistribution struct {
	PeakIncidentHours    []HourCount `json:"peak_incident_hours"`
	AllHours             []HourCount `json:"all_hours"`
	UnknownHourIncidents int         `json:"unknown_hour_incidents"`
}

// ResourceRecommendations is advisory text for resource allocation.
type ResourceRecommendations struct {
	PeakHours     string `json:"peak_hours"`
	NightShift    string `json:"night_shift"`
	HighForceLoad string `json:"high_force_load"`
	Weekend       string `json:"weekend"`
}

// EmergencyResponseReport is emergency_response_metrics.json.
type EmergencyResponseReport struct {
	Header
	PoliceResponse                    PoliceResponse          `json:"police_response"`
	HourlyDistribution                HourlyDistribution      `json:"hourly_distribution"`
	ResourceAllocationRecommendations ResourceRecommendations `json:"resource_allocation_recommendations"`
}

// MonthlyTrendsReport is monthly_trends.json.
type MonthlyTrendsReport struct {
	Header
	Trends []MonthlyTrend `json:"trends"`
}

// FactorCount is one ranked category code.
type FactorCount struct {
	Factor int `json:"factor"`
	Count  int `json:"count"`
}

// RiskFactors holds the ranked codes per condition column.
type RiskFactors struct {
	LightConditions       []FactorCount `json:"light_conditions"`
	WeatherConditions     []FactorCount `json:"weather_conditions"`
	RoadSurfaceConditions []FactorCount `json:"road_surface_conditions"`
	SpecialConditions     []FactorCount `json:"special_conditions"`
}

// RiskFactorsReport is risk_factors_analysis.json.
type RiskFactorsReport struct {
	Header
	Factors RiskFactors `json:"factors"`
}

// SeverityShare is one severity level on the distribution report.
type SeverityShare struct {
	SeverityLevel string  `json:"severity_level"`
	Code          int     `json:"code"`
	Count         int     `json:"count"`
	Percentage    float64 `json:"percentage"`
}

// SeverityDistributionReport is severity_distribution.json. Percentages are
// shares of classified incidents.
type SeverityDistributionReport struct {
	Header
	Distribution          []SeverityShare `json:"distribution"`
	TotalIncidents        int             `json:"total_incidents"`
	UnclassifiedIncidents int             `json:"unclassified_incidents"`
}

// KeyCount is one ranked value on the dataset summary. Missing values are
// keyed "-1".
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DatasetSummary is accidents_summary.json, a raw overview of the loaded
// dataset. It carries no header so repeated runs over the same input produce
// identical bytes.
type DatasetSummary struct {
	TotalRows     int        `json:"total_rows"`
	BySeverity    []KeyCount `json:"by_severity"`
	ByDayOfWeek   []KeyCount `json:"by_day_of_week"`
	ByHour        []KeyCount `json:"by_hour"`
	ByPoliceForce []KeyCount `json:"by_police_force"`
}

// FeatureCollection is the GeoJSON hotspot layer for map front-ends.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON point feature.
type Feature struct {
	Type       string            `json:"type"`
	Properties FeatureProperties `json:"properties"`
	Geometry   PointGeometry     `json:"geometry"`
}

// FeatureProperties carry the cell statistics.
type FeatureProperties struct {
	Count     int    `json:"count"`
	RiskLevel string `json:"risk_level"`
}

// PointGeometry holds [lng, lat] as GeoJSON requires.
type PointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}
