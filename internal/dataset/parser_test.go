package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "Gender,Age,Name\nM,30,Alice\nF,25,Bob\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Gender", "Age", "Name"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "M", table.Rows[0]["Gender"])
	assert.Equal(t, "25", table.Rows[1]["Age"])
}

func TestParseCSVBlankHeadersNamed(t *testing.T) {
	input := "gender,,age\nM,x,20\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"gender", "Column_2", "age"}, table.Headers)
	assert.Equal(t, "x", table.Rows[0]["Column_2"])
}

func TestParseCSVShortRows(t *testing.T) {
	// A short row keeps its present cells; the missing header key is absent.
	input := "gender,age\nM\nF,30\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	_, hasAge := table.Rows[0]["age"]
	assert.False(t, hasAge)
	assert.Equal(t, "30", table.Rows[1]["age"])
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		maxBytes int64
		wantErr  error
	}{
		{name: "valid csv", filename: "data.csv", size: 100},
		{name: "valid xlsx", filename: "Data.XLSX", size: 100},
		{name: "valid xls", filename: "old.xls", size: 100},
		{name: "rejected extension", filename: "data.json", size: 100, wantErr: ErrInvalidFileType},
		{name: "no extension", filename: "data", size: 100, wantErr: ErrInvalidFileType},
		{name: "empty file", filename: "data.csv", size: 0, wantErr: ErrEmptyFile},
		{name: "over limit", filename: "data.csv", size: 200, maxBytes: 100, wantErr: ErrFileTooLarge},
		{name: "default limit applies", filename: "data.csv", size: DefaultMaxUploadBytes + 1, wantErr: ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.filename, tt.size, tt.maxBytes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDispatchesOnExtension(t *testing.T) {
	table, err := Parse(strings.NewReader("gender\nM\n"), "upload.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"gender"}, table.Headers)

	// A CSV stream with an Excel extension must fail in the workbook reader.
	_, err = Parse(strings.NewReader("gender\nM\n"), "upload.xlsx")
	assert.Error(t, err)
}
