package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
)

// MaxCSVSize caps uploaded spreadsheets
const MaxCSVSize = 10 * 1024 * 1024

// ParsedCSV is a header row plus one map per non-empty data row
type ParsedCSV struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}

// ReadCSV reads a spreadsheet with a header row. Empty lines are skipped,
// short rows leave their missing columns empty.
func ReadCSV(r io.Reader) (ParsedCSV, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return ParsedCSV{}, fmt.Errorf("csv has no header row")
	}
	if err != nil {
		return ParsedCSV{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i, h := range headers {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		headers[i] = strings.TrimSpace(h)
	}

	parsed := ParsedCSV{Headers: headers}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ParsedCSV{}, fmt.Errorf("failed to read csv: %w", err)
		}
		if blank(record) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		parsed.Rows = append(parsed.Rows, row)
	}
	return parsed, nil
}

// ReadUploadedCSV parses a multipart upload
func ReadUploadedCSV(fileHeader *multipart.FileHeader) (ParsedCSV, error) {
	if fileHeader.Size > MaxCSVSize {
		return ParsedCSV{}, fmt.Errorf("file too large (max %d MB)", MaxCSVSize/(1024*1024))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ParsedCSV{}, err
	}
	defer file.Close()

	return ReadCSV(io.LimitReader(file, MaxCSVSize))
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
