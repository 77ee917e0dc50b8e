package domain

// LoadStats summarizes data quality for one dataset load.
type LoadStats struct {
	Rows      int
	Malformed map[string]int // column -> cells that were present but failed to coerce
}

// MarkMalformed counts one unusable cell in col.
func (s *LoadStats) MarkMalformed(col string) {
	if s.Malformed == nil {
		s.Malformed = make(map[string]int)
	}
	s.Malformed[col]++
}

// Artifact describes a report file that was written.
type Artifact struct {
	Report string // report slug
	File   string
	Path   string
	Bytes  int
	SHA256 string
}
