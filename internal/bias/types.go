package bias

// Row is a single dataset row keyed by header name. All rows of a RawTable
// share the header set of the first row; rows missing the selected column
// are skipped and counted, not fatal.
type Row map[string]string

// RawTable is the parsed tabular input handed to the Summarizer.
// Headers preserves the original column order of the source file.
type RawTable struct {
	Headers []string
	Rows    []Row
}

// Category is the normalized classification of a raw gender cell.
type Category string

const (
	Male    Category = "male"
	Female  Category = "female"
	Unknown Category = "unknown"
)

// GenderSummary is the computed gender distribution for one dataset.
// Total counts only classifiable values; Unknown cells are excluded from
// the denominator but retained in the diagnostic traces.
type GenderSummary struct {
	Male          int     `json:"male"`
	Female        int     `json:"female"`
	Total         int     `json:"total"`
	MalePercent   float64 `json:"male_percent"`
	FemalePercent float64 `json:"female_percent"`
	BiasScore     float64 `json:"bias_score"`
	BiasLabel     string  `json:"bias_label"`
	BiasDetail    string  `json:"bias_detail"`
	UsedColumn    string  `json:"used_column"`
	UnknownCount  int     `json:"unknown_count"`
	MalformedRows int     `json:"malformed_rows"`

	// Per-row traces for diagnostics, in input order.
	RawValues        []string `json:"raw_values"`
	NormalizedValues []string `json:"normalized_values"`
}

// AgeGroup is one histogram bucket of the age distribution.
type AgeGroup struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// AgeSummary holds descriptive statistics for an age-like column.
// Unparsable or out-of-range values are skipped, not fatal.
type AgeSummary struct {
	UsedColumn string     `json:"used_column"`
	MeanAge    float64    `json:"mean_age"`
	MedianAge  float64    `json:"median_age"`
	MinAge     int        `json:"min_age"`
	MaxAge     int        `json:"max_age"`
	ValidCount int        `json:"valid_count"`
	Skipped    int        `json:"skipped"`
	AgeGroups  []AgeGroup `json:"age_groups"`
}

// Summary is the complete result of one summarization. Age is nil when the
// dataset has no age-like column.
type Summary struct {
	Gender GenderSummary `json:"gender"`
	Age    *AgeSummary   `json:"age,omitempty"`
}

// InsightPayload is the subset of the gender summary forwarded verbatim to
// the external insight generator.
type InsightPayload struct {
	Male          int     `json:"male"`
	Female        int     `json:"female"`
	BiasScore     float64 `json:"bias_score"`
	BiasLabel     string  `json:"bias_label"`
	MalePercent   float64 `json:"male_percent"`
	FemalePercent float64 `json:"female_percent"`
}

// InsightPayload extracts the fields the insight generator consumes.
func (s *Summary) InsightPayload() InsightPayload {
	return InsightPayload{
		Male:          s.Gender.Male,
		Female:        s.Gender.Female,
		BiasScore:     s.Gender.BiasScore,
		BiasLabel:     s.Gender.BiasLabel,
		MalePercent:   s.Gender.MalePercent,
		FemalePercent: s.Gender.FemalePercent,
	}
}
