package bias

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectColumn(t *testing.T) {
	candidates := DefaultConfig().GenderColumns

	tests := []struct {
		name    string
		headers []string
		want    string
		wantOK  bool
	}{
		{
			name:    "exact match",
			headers: []string{"name", "gender", "age"},
			want:    "gender",
			wantOK:  true,
		},
		{
			name:    "case insensitive",
			headers: []string{"Name", "GENDER", "Age"},
			want:    "GENDER",
			wantOK:  true,
		},
		{
			name:    "padded header",
			headers: []string{"name", " Sex ", "age"},
			want:    " Sex ",
			wantOK:  true,
		},
		{
			name:    "priority order wins over header order",
			headers: []string{"s", "sex", "gender"},
			want:    "gender",
			wantOK:  true,
		},
		{
			name:    "synonym fallback",
			headers: []string{"name", "gndr"},
			want:    "gndr",
			wantOK:  true,
		},
		{
			name:    "no match",
			headers: []string{"name", "city", "income"},
			wantOK:  false,
		},
		{
			name:    "no fuzzy matching",
			headers: []string{"genders", "sexes"},
			wantOK:  false,
		},
		{
			name:    "empty headers",
			headers: nil,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectColumn(tt.headers, candidates)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectColumnAlternateSynonyms(t *testing.T) {
	// The priority list is configuration, not a constant.
	got, ok := SelectColumn([]string{"id", "geschlecht"}, []string{"geschlecht"})
	assert.True(t, ok)
	assert.Equal(t, "geschlecht", got)
}
