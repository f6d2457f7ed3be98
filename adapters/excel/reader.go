package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"rehabengine/domain/dataset"
	apperrors "rehabengine/internal/errors"
)

// ParseUpload parses an uploaded CSV or XLSX payload into a table. The first
// row is the header; short rows are padded so every row matches the header
// width, rows wider than the header are rejected.
func ParseUpload(name string, content []byte, format string) (*dataset.Table, error) {
	switch strings.ToLower(format) {
	case "csv":
		return parseCSV(name, content)
	case "xlsx":
		return parseXLSX(name, content)
	default:
		return nil, apperrors.UploadError(fmt.Sprintf("unsupported upload format: %s", format))
	}
}

func parseCSV(name string, content []byte) (*dataset.Table, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse CSV upload")
	}
	return tableFromRecords(name, records)
}

func parseXLSX(name string, content []byte) (*dataset.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open XLSX upload")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.UploadError("XLSX upload has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read XLSX sheet")
	}
	return tableFromRecords(name, records)
}

func tableFromRecords(name string, records [][]string) (*dataset.Table, error) {
	if len(records) == 0 {
		return nil, apperrors.UploadError("upload contains no rows")
	}

	headers := records[0]
	if len(headers) == 0 {
		return nil, apperrors.UploadError("upload has an empty header row")
	}

	rows := make([][]string, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) > len(headers) {
			return nil, apperrors.UploadError(fmt.Sprintf(
				"row %d has %d cells but the header has %d columns", i+2, len(rec), len(headers)))
		}
		row := make([]string, len(headers))
		copy(row, rec)
		rows = append(rows, row)
	}

	return &dataset.Table{Name: name, Headers: headers, Rows: rows}, nil
}
