package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"econ-pipeline/internal/model"
	"econ-pipeline/pkg/utils"
)

// RawRow is one ingested row keyed by canonical field name, values still
// unparsed strings. Missing cells are simply absent from the map.
type RawRow map[string]string

// LoadCSV reads the raw table from a file path or an http(s) URL and maps its
// columns onto the canonical schema. The mapping is validated once up front:
// a required column that cannot be located in the header is a
// ConfigurationError, before any row is read.
func LoadCSV(pathOrURL string, mapping model.SchemaMapping) ([]RawRow, error) {
	var reader io.Reader
	if strings.HasPrefix(pathOrURL, "http") {
		resp, err := http.Get(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("failed to GET CSV: %w", err)
		}
		defer resp.Body.Close()
		reader = resp.Body
	} else {
		file, err := os.Open(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()
		reader = file
	}
	return readCSV(reader, mapping)
}

func readCSV(reader io.Reader, mapping model.SchemaMapping) ([]RawRow, error) {
	csvReader := csv.NewReader(reader)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns, err := resolveColumns(headers, mapping)
	if err != nil {
		return nil, err
	}

	var rows []RawRow
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}

		row := make(RawRow, len(columns))
		for field, idx := range columns {
			if idx < len(record) {
				if v := strings.TrimSpace(record[idx]); v != "" {
					row[field] = v
				}
			}
		}
		rows = append(rows, row)
	}

	fmt.Printf("📄 Ingest: %d rows read\n", len(rows))
	return rows, nil
}

// resolveColumns matches the schema mapping against the header row. Headers
// are compared after normalization so casing and stray whitespace in the
// source file do not matter.
func resolveColumns(headers []string, mapping model.SchemaMapping) (map[string]int, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[utils.NormalizeHeader(h)] = i
	}

	columns := make(map[string]int, len(mapping))
	for _, field := range model.RequiredFields {
		raw, ok := mapping[field]
		if !ok {
			return nil, model.NewConfigurationError("schema", "no column mapped for required field %q", field)
		}
		idx, ok := index[utils.NormalizeHeader(raw)]
		if !ok {
			return nil, model.NewConfigurationError("schema", "column %q (field %q) not found in header", raw, field)
		}
		columns[field] = idx
	}
	return columns, nil
}
