package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"biaslens/internal/bias"
)

// ParseCSV reads a CSV stream into a RawTable. The first record is the
// header row; blank headers are named Column_N so every cell stays
// addressable. Rows shorter than the header are kept; the missing cells are
// simply absent from the row map and counted as malformed downstream.
func ParseCSV(r io.Reader) (bias.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return bias.RawTable{}, fmt.Errorf("%w: read csv: %v", ErrMalformedFile, err)
	}

	return tableFromRecords(records)
}

// ParseExcel reads the first sheet of an Excel workbook into a RawTable.
func ParseExcel(r io.Reader) (bias.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return bias.RawTable{}, fmt.Errorf("%w: open workbook: %v", ErrMalformedFile, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return bias.RawTable{}, ErrEmptyFile
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return bias.RawTable{}, fmt.Errorf("%w: read sheet %q: %v", ErrMalformedFile, sheet, err)
	}

	return tableFromRecords(records)
}

// Parse dispatches on the file extension. Extension must already have passed
// ValidateUpload.
func Parse(r io.Reader, filename string) (bias.RawTable, error) {
	if isExcelExt(extOf(filename)) {
		return ParseExcel(r)
	}
	return ParseCSV(r)
}

func tableFromRecords(records [][]string) (bias.RawTable, error) {
	if len(records) == 0 {
		return bias.RawTable{}, ErrEmptyFile
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}

	rows := make([]bias.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(bias.Row, len(headers))
		for i, value := range record {
			if i >= len(headers) {
				break
			}
			row[headers[i]] = value
		}
		rows = append(rows, row)
	}

	return bias.RawTable{Headers: headers, Rows: rows}, nil
}
