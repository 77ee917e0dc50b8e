package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"
)

// hub is a city centre that synthetic incidents cluster around.
type hub struct {
	lat, lon float64
	force    int
}

var syntheticHubs = []hub{
	{51.5074, -0.1278, 1},  // London, Metropolitan Police
	{53.4808, -2.2426, 6},  // Manchester, Greater Manchester
	{52.4862, -1.8904, 20}, // Birmingham, West Midlands
	{53.8008, -1.5491, 13}, // Leeds, West Yorkshire
	{55.8642, -4.2518, 99}, // Glasgow, Police Scotland
}

// SyntheticOptions controls WriteSynthetic.
type SyntheticOptions struct {
	Rows  int
	Seed  uint64
	Start time.Time // first day of the covered period
	Days  int       // length of the covered period
}

// WriteSynthetic writes a STATS19-shaped CSV with opts.Rows rows. Output is a
// pure function of opts. Roughly one row in fifty carries a malformed field
// so demos exercise the loader's degradation paths.
func WriteSynthetic(w io.Writer, opts SyntheticOptions) error {
	if opts.Rows < 0 {
		return fmt.Errorf("rows must be non-negative, got %d", opts.Rows)
	}
	if opts.Days <= 0 {
		opts.Days = 365
	}
	if opts.Start.IsZero() {
		opts.Start = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	cw := csv.NewWriter(w)

	header := append([]string{"accident_index"}, syntheticColumns()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < opts.Rows; i++ {
		if err := cw.Write(syntheticRow(rng, opts, i)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func syntheticRow(rng *rand.Rand, opts SyntheticOptions, i int) []string {
	h := syntheticHubs[rng.IntN(len(syntheticHubs))]
	day := opts.Start.AddDate(0, 0, rng.IntN(opts.Days))

	// Rush hours are busier than the small hours.
	hour := rng.IntN(24)
	if rng.IntN(3) == 0 {
		hour = 7 + rng.IntN(3)
		if rng.IntN(2) == 0 {
			hour = 16 + rng.IntN(3)
		}
	}

	severity := 3
	switch n := rng.IntN(100); {
	case n < 2:
		severity = 1
	case n < 18:
		severity = 2
	}

	// Most incidents fall within a few hundred metres of a handful of junctions.
	spread := 0.002
	if rng.IntN(4) == 0 {
		spread = 0.05
	}
	lat := h.lat + (rng.Float64()-0.5)*spread
	lon := h.lon + (rng.Float64()-0.5)*spread

	attended := "1"
	if rng.IntN(4) == 0 {
		attended = strconv.Itoa(2 + rng.IntN(2))
	}

	row := map[string]string{
		ColDate:              day.Format("02/01/2006"),
		ColTime:              fmt.Sprintf("%02d:%02d", hour, rng.IntN(60)),
		ColSeverity:          strconv.Itoa(severity),
		ColCasualties:        strconv.Itoa(1 + rng.IntN(3)),
		ColPoliceForce:       strconv.Itoa(h.force),
		ColLatitude:          strconv.FormatFloat(lat, 'f', 6, 64),
		ColLongitude:         strconv.FormatFloat(lon, 'f', 6, 64),
		ColWeather:           strconv.Itoa(weightedCode(rng, []int{1, 1, 1, 1, 2, 2, 3, 5, 8, 9})),
		ColLight:             strconv.Itoa(weightedCode(rng, []int{1, 1, 1, 4, 4, 5, 6, 7})),
		ColRoadSurface:       strconv.Itoa(weightedCode(rng, []int{1, 1, 1, 2, 2, 3, 4})),
		ColSpecialConditions: strconv.Itoa(weightedCode(rng, []int{0, 0, 0, 0, 0, 0, 1, 4, 7})),
		ColPoliceAttended:    attended,
		ColDayOfWeek:         strconv.Itoa(int(day.Weekday()) + 1),
	}

	if rng.IntN(50) == 0 {
		row[[]string{ColDate, ColTime, ColSeverity, ColLatitude}[rng.IntN(4)]] = "n/a"
	}

	cols := syntheticColumns()
	out := make([]string, 0, len(cols)+1)
	out = append(out, fmt.Sprintf("%d%07d", day.Year(), i+1))
	for _, col := range cols {
		out = append(out, row[col])
	}
	return out
}

func syntheticColumns() []string {
	return append(slices.Clone(RequiredColumns), OptionalColumns...)
}

func weightedCode(rng *rand.Rand, pool []int) int {
	return pool[rng.IntN(len(pool))]
}
