package bias

import "math"

// Score is the absolute percentage-point gap between male and female
// representation. Symmetric: swapping the counts yields the same score.
func Score(malePct, femalePct float64) float64 {
	return round1(math.Abs(malePct - femalePct))
}

// LabelFor classifies a bias score against the ordered thresholds: the last
// threshold whose inclusive lower bound does not exceed the score wins.
func LabelFor(score float64, thresholds []Threshold) string {
	label := ""
	for _, t := range thresholds {
		if score >= t.Min {
			label = t.Label
		}
	}
	return label
}

// labelDetails maps each bias label to its descriptive text. The table lives
// in the core so the description logic is tested and reused server-side
// instead of being duplicated in a view layer.
var labelDetails = map[string]string{
	LabelBalanced:    "Gender representation is close to even; no corrective action indicated.",
	LabelMild:        "One gender is somewhat over-represented; review sampling before drawing conclusions.",
	LabelSignificant: "The dataset leans heavily toward one gender; results will likely not generalize.",
	LabelSevere:      "The dataset is dominated by a single gender; treat any findings as unrepresentative.",
}

// DetailFor returns the descriptive text for a bias label, or an empty
// string for labels outside the standard set.
func DetailFor(label string) string {
	return labelDetails[label]
}

// LabelDetails returns a copy of the label description table for API
// consumers.
func LabelDetails() map[string]string {
	out := make(map[string]string, len(labelDetails))
	for k, v := range labelDetails {
		out[k] = v
	}
	return out
}
