package bias

// Threshold maps an inclusive lower bound of the bias score to a label.
// Thresholds must be sorted ascending by Min; classification picks the last
// threshold whose Min does not exceed the score.
type Threshold struct {
	Min   float64 `yaml:"min" json:"min"`
	Label string  `yaml:"label" json:"label"`
}

// AgeBucket is a fixed, non-overlapping age range. Max < 0 marks an
// open-ended bucket (e.g. 65+).
type AgeBucket struct {
	Label string `yaml:"label" json:"label"`
	Min   int    `yaml:"min" json:"min"`
	Max   int    `yaml:"max" json:"max"`
}

// Config holds the tunable parameters of the summarizer. Zero-value fields
// fall back to the defaults from DefaultConfig.
type Config struct {
	// GenderColumns is the ordered priority list of header synonyms for the
	// gender column. First matching header in priority order wins.
	GenderColumns []string `yaml:"gender_columns"`

	// AgeColumns is the ordered priority list for the optional age column.
	AgeColumns []string `yaml:"age_columns"`

	// Thresholds are the bias label boundaries, ascending by Min.
	Thresholds []Threshold `yaml:"thresholds"`

	// AgeBuckets are the histogram ranges for the age distribution.
	AgeBuckets []AgeBucket `yaml:"age_buckets"`

	// MinValidAge and MaxValidAge bound plausible ages; values outside are
	// skipped and counted.
	MinValidAge int `yaml:"min_valid_age"`
	MaxValidAge int `yaml:"max_valid_age"`
}

// Bias labels, from most to least balanced.
const (
	LabelBalanced    = "Balanced"
	LabelMild        = "Mildly Imbalanced"
	LabelSignificant = "Significantly Imbalanced"
	LabelSevere      = "Severely Imbalanced"
)

// DefaultConfig returns the stock configuration: the standard synonym lists,
// the [0,10)/[10,30)/[30,60)/[60,100] label thresholds and five age buckets.
func DefaultConfig() Config {
	return Config{
		GenderColumns: []string{"gender", "sex", "gndr", "g", "s"},
		AgeColumns:    []string{"age", "years", "yrs"},
		Thresholds: []Threshold{
			{Min: 0, Label: LabelBalanced},
			{Min: 10, Label: LabelMild},
			{Min: 30, Label: LabelSignificant},
			{Min: 60, Label: LabelSevere},
		},
		AgeBuckets: []AgeBucket{
			{Label: "0-17", Min: 0, Max: 17},
			{Label: "18-34", Min: 18, Max: 34},
			{Label: "35-49", Min: 35, Max: 49},
			{Label: "50-64", Min: 50, Max: 64},
			{Label: "65+", Min: 65, Max: -1},
		},
		MinValidAge: 0,
		MaxValidAge: 130,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if len(c.GenderColumns) == 0 {
		c.GenderColumns = def.GenderColumns
	}
	if len(c.AgeColumns) == 0 {
		c.AgeColumns = def.AgeColumns
	}
	if len(c.Thresholds) == 0 {
		c.Thresholds = def.Thresholds
	}
	if len(c.AgeBuckets) == 0 {
		c.AgeBuckets = def.AgeBuckets
	}
	if c.MaxValidAge <= 0 {
		c.MinValidAge = def.MinValidAge
		c.MaxValidAge = def.MaxValidAge
	}
	return c
}
