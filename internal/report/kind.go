package report

// Kind identifies one persisted report artifact.
type Kind struct {
	Slug  string // route segment under /api/reports/
	File  string // artifact file name in the reports directory
	Title string
}

var (
	MonthlySafety = Kind{
		Slug:  "monthly-safety",
		File:  "monthly_safety_report.json",
		Title: "Monthly Safety Report: Comprehensive Analysis of Accident Trends",
	}
	HotspotAnalysis = Kind{
		Slug:  "hotspot-analysis",
		File:  "hotspot_analysis_report.json",
		Title: "Hotspot Analysis Report: High-Risk Zones and Recommendations",
	}
	EmergencyResponse = Kind{
		Slug:  "emergency-response",
		File:  "emergency_response_metrics.json",
		Title: "Emergency Response Metrics: Response Time and Resource Allocation",
	}
	MonthlyTrends = Kind{
		Slug:  "monthly-trends",
		File:  "monthly_trends.json",
		Title: "Monthly Trend Analysis",
	}
	RiskFactorsAnalysis = Kind{
		Slug:  "risk-factors",
		File:  "risk_factors_analysis.json",
		Title: "Top Risk Factors Analysis",
	}
	SeverityDistribution = Kind{
		Slug:  "severity-distribution",
		File:  "severity_distribution.json",
		Title: "Severity Distribution Analysis",
	}

	// HotspotLayer is the GeoJSON companion to the hotspot report. It has no
	// title and is not served under /api/reports.
	HotspotLayer = Kind{
		Slug: "hotspot-layer",
		File: "accidents_hotspots.geojson",
	}
	// AccidentsSummary is the untitled dataset overview. Like HotspotLayer it
	// is not served under /api/reports.
	AccidentsSummary = Kind{
		Slug: "accidents-summary",
		File: "accidents_summary.json",
	}
)

// Kinds lists the six report artifacts in generation order.
var Kinds = []Kind{
	MonthlySafety,
	HotspotAnalysis,
	EmergencyResponse,
	MonthlyTrends,
	RiskFactorsAnalysis,
	SeverityDistribution,
}

// KindBySlug looks up a report by its route segment.
func KindBySlug(slug string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Slug == slug {
			return k, true
		}
	}
	return Kind{}, false
}
