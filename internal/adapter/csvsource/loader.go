package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
)

// Column names in the STATS19 collision export.
const (
	ColDate              = "date"
	ColTime              = "time"
	ColSeverity          = "collision_severity"
	ColCasualties        = "number_of_casualties"
	ColPoliceForce       = "police_force"
	ColLatitude          = "latitude"
	ColLongitude         = "longitude"
	ColWeather           = "weather_conditions"
	ColLight             = "light_conditions"
	ColRoadSurface       = "road_surface_conditions"
	ColSpecialConditions = "special_conditions_at_site"
	ColPoliceAttended    = "did_police_officer_attend_scene_of_accident"
	ColDayOfWeek         = "day_of_week"
)

// RequiredColumns must all appear in the header; each feeds at least one report.
var RequiredColumns = []string{
	ColDate, ColTime, ColSeverity, ColCasualties, ColPoliceForce,
	ColLatitude, ColLongitude, ColWeather, ColLight, ColRoadSurface,
	ColSpecialConditions, ColPoliceAttended,
}

// OptionalColumns are read when present. Their absence is not an error.
var OptionalColumns = []string{ColDayOfWeek}

// columnAliases maps older STATS19 header names onto the current ones.
var columnAliases = map[string]string{
	"accident_severity":  ColSeverity,
	"special_conditions": ColSpecialConditions,
}

// dateLayouts are tried in order. The source export is day-first.
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	time.RFC3339,
}

// Loader reads the accident dataset from a CSV file.
type Loader struct {
	path   string
	logger *slog.Logger
}

// NewLoader creates a Loader for the CSV file at path.
func NewLoader(path string, logger *slog.Logger) *Loader {
	return &Loader{path: path, logger: logger}
}

// Load opens the dataset and parses every row. Only a missing file or a
// missing required column is fatal.
func (l *Loader) Load() ([]domain.IncidentRecord, domain.LoadStats, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.LoadStats{}, fmt.Errorf("%w: %s", domain.ErrMissingSource, l.path)
		}
		return nil, domain.LoadStats{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, stats, err := Parse(f)
	if err != nil {
		return nil, stats, err
	}
	l.logger.Info("dataset loaded", "path", l.path, "rows", stats.Rows, "malformed", stats.Malformed)
	return records, stats, nil
}

// Parse reads a CSV stream with a header row into normalized records.
func Parse(r io.Reader) ([]domain.IncidentRecord, domain.LoadStats, error) {
	stats := domain.LoadStats{Malformed: make(map[string]int)}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, fmt.Errorf("%w: dataset has no header row", domain.ErrSchemaMismatch)
	}
	if err != nil {
		return nil, stats, fmt.Errorf("read header: %w", err)
	}

	idx, err := indexColumns(header)
	if err != nil {
		return nil, stats, err
	}

	var records []domain.IncidentRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			stats.Rows++
			stats.MarkMalformed("row")
			continue
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read row %d: %w", stats.Rows+2, err)
		}
		stats.Rows++
		records = append(records, parseRow(row, idx, &stats))
	}
	return records, stats, nil
}

// columnIndex resolves column positions in the header.
type columnIndex map[string]int

// cell returns the trimmed value of col, or "" when the header lacks col or
// the row is short.
func (c columnIndex) cell(row []string, col string) string {
	i, ok := c[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func indexColumns(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(RequiredColumns))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if alias, ok := columnAliases[name]; ok {
			name = alias
		}
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", domain.ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(row []string, idx columnIndex, stats *domain.LoadStats) domain.IncidentRecord {
	return domain.IncidentRecord{
		Month:             parseMonth(idx.cell(row, ColDate), stats),
		Hour:              parseHour(idx.cell(row, ColTime), stats),
		Severity:          parseSeverity(idx.cell(row, ColSeverity), stats),
		Casualties:        parseCasualties(idx.cell(row, ColCasualties), stats),
		PoliceForce:       parseCode(ColPoliceForce, idx.cell(row, ColPoliceForce), stats),
		Weather:           parseCode(ColWeather, idx.cell(row, ColWeather), stats),
		Light:             parseCode(ColLight, idx.cell(row, ColLight), stats),
		RoadSurface:       parseCode(ColRoadSurface, idx.cell(row, ColRoadSurface), stats),
		SpecialConditions: parseCode(ColSpecialConditions, idx.cell(row, ColSpecialConditions), stats),
		DayOfWeek:         parseDayOfWeek(idx.cell(row, ColDayOfWeek), stats),
		PoliceAttended:    parseAttended(idx.cell(row, ColPoliceAttended)),
		Geo: domain.Geo{
			Lat: parseCoordinate(ColLatitude, idx.cell(row, ColLatitude), stats),
			Lon: parseCoordinate(ColLongitude, idx.cell(row, ColLongitude), stats),
		},
	}
}

// parseMonth returns "YYYY-MM", or "" when no layout matches.
func parseMonth(s string, stats *domain.LoadStats) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01")
		}
	}
	// Timestamps such as "26/04/2024 00:00" carry a time suffix.
	if date, _, ok := strings.Cut(s, " "); ok {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, date); err == nil {
				return t.Format("2006-01")
			}
		}
	}
	stats.MarkMalformed(ColDate)
	return ""
}

// parseHour takes the portion of "HH:MM" before the first colon.
func parseHour(s string, stats *domain.LoadStats) int {
	if s == "" {
		return domain.HourUnknown
	}
	head, _, _ := strings.Cut(s, ":")
	h, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || h < 0 || h > 23 {
		stats.MarkMalformed(ColTime)
		return domain.HourUnknown
	}
	return h
}

func parseSeverity(s string, stats *domain.LoadStats) domain.Severity {
	v, ok := parseInteger(s)
	if !ok {
		if s != "" {
			stats.MarkMalformed(ColSeverity)
		}
		return domain.SeverityUnknown
	}
	sev := domain.Severity(v)
	if !sev.Valid() {
		stats.MarkMalformed(ColSeverity)
		return domain.SeverityUnknown
	}
	return sev
}

// parseCasualties never returns a negative count; anything unusable is 0.
func parseCasualties(s string, stats *domain.LoadStats) int {
	if s == "" {
		return 0
	}
	v, ok := parseInteger(s)
	if !ok || v < 0 {
		stats.MarkMalformed(ColCasualties)
		return 0
	}
	return v
}

func parseCode(col, s string, stats *domain.LoadStats) domain.Code {
	if s == "" {
		return domain.Code{}
	}
	v, ok := parseInteger(s)
	if !ok {
		stats.MarkMalformed(col)
		return domain.Code{}
	}
	return domain.NewCode(v)
}

// parseDayOfWeek accepts codes 1 (Sunday) to 7 (Saturday).
func parseDayOfWeek(s string, stats *domain.LoadStats) domain.Code {
	c := parseCode(ColDayOfWeek, s, stats)
	if c.Valid && (c.Value < 1 || c.Value > 7) {
		stats.MarkMalformed(ColDayOfWeek)
		return domain.Code{}
	}
	return c
}

// parseCoordinate returns 0 (no location) for empty or unparseable values.
func parseCoordinate(col, s string, stats *domain.LoadStats) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		stats.MarkMalformed(col)
		return 0
	}
	return v
}

// parseAttended treats "1" and common truthy spellings as attended. STATS19
// codes 2 and 3 both mean no officer attended.
func parseAttended(s string) bool {
	switch strings.ToLower(s) {
	case "1", "1.0", "true", "yes", "y":
		return true
	default:
		return false
	}
}

// parseInteger accepts "3" and float spellings of whole numbers such as "3.0".
// Values outside the int32 range are rejected.
func parseInteger(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int(v), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
