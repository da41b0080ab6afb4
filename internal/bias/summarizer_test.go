package bias

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tableFromGenders builds a single-column table from a list of gender values.
func tableFromGenders(values []string) RawTable {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Row{"gender": v}
	}
	return RawTable{Headers: []string{"gender"}, Rows: rows}
}

func TestSummarizeBalancedExample(t *testing.T) {
	// Worked example: ["M","F","F","male","unknown"] -> 2/2, Balanced.
	s := NewSummarizer(slog.Default(), Config{})

	summary, err := s.Summarize(context.Background(), tableFromGenders(
		[]string{"M", "F", "F", "male", "unknown"}))
	require.NoError(t, err)

	g := summary.Gender
	assert.Equal(t, 2, g.Male)
	assert.Equal(t, 2, g.Female)
	assert.Equal(t, 4, g.Total)
	assert.Equal(t, 50.0, g.MalePercent)
	assert.Equal(t, 50.0, g.FemalePercent)
	assert.Equal(t, 0.0, g.BiasScore)
	assert.Equal(t, LabelBalanced, g.BiasLabel)
	assert.Equal(t, 1, g.UnknownCount)
	assert.Equal(t, "gender", g.UsedColumn)
	assert.Equal(t, []string{"M", "F", "F", "male", "unknown"}, g.RawValues)
	assert.Equal(t, []string{"male", "female", "female", "male", "unknown"}, g.NormalizedValues)
	assert.NotEmpty(t, g.BiasDetail)
	assert.Nil(t, summary.Age)
}

func TestSummarizeSeverelyImbalancedExample(t *testing.T) {
	// Worked example: ["M","M","M","M","F"] -> 80/20, score 60, Severe.
	s := NewSummarizer(slog.Default(), Config{})

	summary, err := s.Summarize(context.Background(), tableFromGenders(
		[]string{"M", "M", "M", "M", "F"}))
	require.NoError(t, err)

	g := summary.Gender
	assert.Equal(t, 4, g.Male)
	assert.Equal(t, 1, g.Female)
	assert.Equal(t, 5, g.Total)
	assert.Equal(t, 80.0, g.MalePercent)
	assert.Equal(t, 20.0, g.FemalePercent)
	assert.Equal(t, 60.0, g.BiasScore)
	assert.Equal(t, LabelSevere, g.BiasLabel)
}

func TestSummarizeBiasScoreSymmetry(t *testing.T) {
	s := NewSummarizer(slog.Default(), Config{})
	ctx := context.Background()

	a, err := s.Summarize(ctx, tableFromGenders([]string{"M", "M", "M", "F"}))
	require.NoError(t, err)
	b, err := s.Summarize(ctx, tableFromGenders([]string{"F", "F", "F", "M"}))
	require.NoError(t, err)

	assert.Equal(t, a.Gender.BiasScore, b.Gender.BiasScore)
	assert.Equal(t, a.Gender.BiasLabel, b.Gender.BiasLabel)
}

func TestSummarizeErrors(t *testing.T) {
	s := NewSummarizer(slog.Default(), Config{})
	ctx := context.Background()

	tests := []struct {
		name    string
		table   RawTable
		wantErr error
	}{
		{
			name:    "no gender-like header",
			table:   RawTable{Headers: []string{"name", "city"}, Rows: []Row{{"name": "a", "city": "b"}}},
			wantErr: ErrNoGenderColumn,
		},
		{
			name:    "empty table",
			table:   RawTable{Headers: []string{"gender"}},
			wantErr: ErrEmptyDataset,
		},
		{
			name:    "all unknown values",
			table:   tableFromGenders([]string{"x", "", "n/a"}),
			wantErr: ErrEmptyDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := s.Summarize(ctx, tt.table)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, summary)
		})
	}
}

func TestSummarizeSkipsMalformedRows(t *testing.T) {
	s := NewSummarizer(slog.Default(), Config{})

	table := RawTable{
		Headers: []string{"gender", "name"},
		Rows: []Row{
			{"gender": "M", "name": "a"},
			{"name": "b"}, // missing the selected column
			{"gender": "F", "name": "c"},
		},
	}

	summary, err := s.Summarize(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Gender.MalformedRows)
	assert.Equal(t, 2, summary.Gender.Total)
}

func TestSummarizeWithAgeColumn(t *testing.T) {
	s := NewSummarizer(slog.Default(), Config{})

	table := RawTable{
		Headers: []string{"gender", "age"},
		Rows: []Row{
			{"gender": "M", "age": "17"},
			{"gender": "F", "age": "20"},
			{"gender": "M", "age": "40"},
			{"gender": "F", "age": "70"},
			{"gender": "M", "age": "not-a-number"},
			{"gender": "F", "age": "999"}, // out of plausible range
		},
	}

	summary, err := s.Summarize(context.Background(), table)
	require.NoError(t, err)
	require.NotNil(t, summary.Age)

	age := summary.Age
	assert.Equal(t, "age", age.UsedColumn)
	assert.Equal(t, 4, age.ValidCount)
	assert.Equal(t, 2, age.Skipped)
	assert.Equal(t, 17, age.MinAge)
	assert.Equal(t, 70, age.MaxAge)
	assert.Equal(t, 36.8, age.MeanAge)   // (17+20+40+70)/4 = 36.75 -> 36.8
	assert.Equal(t, 30.0, age.MedianAge) // (20+40)/2

	wantCounts := map[string]int{"0-17": 1, "18-34": 1, "35-49": 1, "50-64": 0, "65+": 1}
	sum := 0.0
	total := 0
	for _, group := range age.AgeGroups {
		assert.Equal(t, wantCounts[group.Label], group.Count, group.Label)
		sum += group.Percent
		total += group.Count
	}
	assert.Equal(t, age.ValidCount, total)
	assert.Equal(t, 100.0, round1(sum))
}

func TestSummarizeAgeColumnAllInvalid(t *testing.T) {
	s := NewSummarizer(slog.Default(), Config{})

	table := RawTable{
		Headers: []string{"gender", "age"},
		Rows: []Row{
			{"gender": "M", "age": "abc"},
			{"gender": "F", "age": "-4"},
		},
	}

	summary, err := s.Summarize(context.Background(), table)
	require.NoError(t, err)
	assert.Nil(t, summary.Age)
}

func TestSummarizeCustomThresholds(t *testing.T) {
	s := NewSummarizer(slog.Default(), Config{
		Thresholds: []Threshold{
			{Min: 0, Label: "ok"},
			{Min: 50, Label: "skewed"},
		},
	})

	summary, err := s.Summarize(context.Background(), tableFromGenders(
		[]string{"M", "M", "M", "M", "F"}))
	require.NoError(t, err)
	assert.Equal(t, "skewed", summary.Gender.BiasLabel)
}

func TestInsightPayload(t *testing.T) {
	s := NewSummarizer(slog.Default(), Config{})

	summary, err := s.Summarize(context.Background(), tableFromGenders(
		[]string{"M", "M", "F"}))
	require.NoError(t, err)

	payload := summary.InsightPayload()
	assert.Equal(t, summary.Gender.Male, payload.Male)
	assert.Equal(t, summary.Gender.Female, payload.Female)
	assert.Equal(t, summary.Gender.BiasScore, payload.BiasScore)
	assert.Equal(t, summary.Gender.BiasLabel, payload.BiasLabel)
	assert.Equal(t, summary.Gender.MalePercent, payload.MalePercent)
	assert.Equal(t, summary.Gender.FemalePercent, payload.FemalePercent)
}

func TestLabelFor(t *testing.T) {
	thresholds := DefaultConfig().Thresholds

	tests := []struct {
		score float64
		want  string
	}{
		{0, LabelBalanced},
		{9.9, LabelBalanced},
		{10, LabelMild},
		{29.9, LabelMild},
		{30, LabelSignificant},
		{59.9, LabelSignificant},
		{60, LabelSevere},
		{100, LabelSevere},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LabelFor(tt.score, thresholds), "score %.1f", tt.score)
	}
}

func TestDetailFor(t *testing.T) {
	for _, label := range []string{LabelBalanced, LabelMild, LabelSignificant, LabelSevere} {
		assert.NotEmpty(t, DetailFor(label), label)
	}
	assert.Empty(t, DetailFor("nonsense"))
}
