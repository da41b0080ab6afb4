package bias

import (
	"context"
	"log/slog"
)

// Summarizer turns heterogeneous raw tabular content into a canonical gender
// distribution summary. It is a pure, synchronous transformation with no
// shared mutable state, so a single instance is safe for concurrent use.
type Summarizer struct {
	logger *slog.Logger
	cfg    Config
}

// NewSummarizer creates a summarizer with the given configuration. Unset
// config fields fall back to DefaultConfig.
func NewSummarizer(logger *slog.Logger, cfg Config) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{
		logger: logger,
		cfg:    cfg.withDefaults(),
	}
}

// Summarize computes the gender summary and, when an age-like column exists,
// the age summary for one table. It returns ErrNoGenderColumn when no header
// matches the synonym list and ErrEmptyDataset when no row holds a
// classifiable value. Rows missing the selected column are skipped and
// counted.
func (s *Summarizer) Summarize(ctx context.Context, table RawTable) (*Summary, error) {
	genderColumn, ok := SelectColumn(table.Headers, s.cfg.GenderColumns)
	if !ok {
		s.logger.WarnContext(ctx, "no gender column matched",
			slog.Any("headers", table.Headers))
		return nil, ErrNoGenderColumn
	}

	gender := GenderSummary{
		UsedColumn:       genderColumn,
		RawValues:        make([]string, 0, len(table.Rows)),
		NormalizedValues: make([]string, 0, len(table.Rows)),
	}

	for _, row := range table.Rows {
		raw, ok := row[genderColumn]
		if !ok {
			gender.MalformedRows++
			continue
		}

		category := Normalize(raw)
		gender.RawValues = append(gender.RawValues, raw)
		gender.NormalizedValues = append(gender.NormalizedValues, string(category))

		switch category {
		case Male:
			gender.Male++
		case Female:
			gender.Female++
		default:
			gender.UnknownCount++
		}
	}

	gender.Total = gender.Male + gender.Female
	if gender.Total == 0 {
		return nil, ErrEmptyDataset
	}

	gender.MalePercent, gender.FemalePercent = splitPercents(gender.Male, gender.Female)
	gender.BiasScore = Score(gender.MalePercent, gender.FemalePercent)
	gender.BiasLabel = LabelFor(gender.BiasScore, s.cfg.Thresholds)
	gender.BiasDetail = DetailFor(gender.BiasLabel)

	summary := &Summary{Gender: gender}

	if ageColumn, ok := SelectColumn(table.Headers, s.cfg.AgeColumns); ok {
		summary.Age = s.aggregateAges(ageColumn, table.Rows)
	}

	s.logger.InfoContext(ctx, "dataset summarized",
		slog.String("gender_column", genderColumn),
		slog.Int("male", gender.Male),
		slog.Int("female", gender.Female),
		slog.Int("unknown", gender.UnknownCount),
		slog.Int("malformed_rows", gender.MalformedRows),
		slog.Float64("bias_score", gender.BiasScore),
		slog.String("bias_label", gender.BiasLabel))

	return summary, nil
}
