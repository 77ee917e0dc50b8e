package report

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
)

// AnnotateHotspots fills LocationName on each top hotspot using geocoder.
// A nil geocoder is a no-op. Lookup failures are logged and leave the name
// empty; the report is still valid without it. Returns the number of
// hotspots that received a name.
func AnnotateHotspots(ctx context.Context, rep *HotspotReport, geocoder domain.ReverseGeocoder, logger *slog.Logger) int {
	if geocoder == nil {
		return 0
	}

	named := 0
	for i := range rep.TopHotspots {
		h := &rep.TopHotspots[i]
		if ctx.Err() != nil {
			logger.Warn("hotspot geocoding interrupted", "remaining", len(rep.TopHotspots)-i, "error", ctx.Err())
			break
		}
		result, err := geocoder.ReverseGeocode(ctx, h.Lat, h.Lng)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"location", h.Location,
				"lat", h.Lat,
				"lng", h.Lng,
				"error", err,
			)
			continue
		}
		name := result.FormattedAddress
		if name == "" {
			name = result.PlaceName
		}
		if name == "" {
			continue
		}
		h.LocationName = name
		named++
	}
	return named
}
