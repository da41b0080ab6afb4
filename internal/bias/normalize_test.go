package bias

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Category
	}{
		{name: "lowercase male", raw: "male", want: Male},
		{name: "capitalized male", raw: "Male", want: Male},
		{name: "padded male", raw: " male ", want: Male},
		{name: "single letter m", raw: "M", want: Male},
		{name: "numeric one", raw: "1", want: Male},
		{name: "lowercase female", raw: "female", want: Female},
		{name: "uppercase female", raw: "FEMALE", want: Female},
		{name: "single letter f", raw: "f", want: Female},
		{name: "numeric zero", raw: "0", want: Female},
		{name: "empty string", raw: "", want: Unknown},
		{name: "whitespace only", raw: "   ", want: Unknown},
		{name: "unrecognized token", raw: "nonbinary", want: Unknown},
		{name: "numeric out of range", raw: "2", want: Unknown},
		{name: "partial match", raw: "mal", want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIsPure(t *testing.T) {
	// Same input must classify identically on repeated calls and across
	// case/whitespace variants.
	variants := []string{"Male", " male ", "M", "1", "MALE"}
	for _, v := range variants {
		first := Normalize(v)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, Normalize(v), "variant %q", v)
		}
		assert.Equal(t, Male, first, "variant %q", v)
	}
}
