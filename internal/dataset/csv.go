package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"realestate-backend/internal/models"
)

// columnLayout maps dataset fields to column indices after header detection.
type columnLayout struct {
	area   int
	year   int
	price  int
	demand int
}

// ParseCSV reads records from CSV data. Headers are matched fuzzily: the
// area column is the first header containing "area" or "location", and the
// year/price/demand columns the first containing those words. Rows with an
// unparseable year or price are skipped rather than failing the load.
func ParseCSV(r io.Reader) ([]models.Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	headers, rows, err := readRows(raw, ',')
	if err != nil || len(headers) < 2 {
		// Retry with semicolon separator before giving up.
		headers, rows, err = readRows(raw, ';')
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
	}

	layout, err := detectColumns(headers)
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		rec, ok := parseRow(row, layout)
		if ok {
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no usable rows in csv")
	}
	return records, nil
}

// LoadCSVFile parses a dataset from a CSV file on disk.
func LoadCSVFile(path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCSV(f)
}

func readRows(raw []byte, comma rune) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read headers: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed rows and keep going.
			continue
		}
		rows = append(rows, record)
	}
	return headers, rows, nil
}

func detectColumns(headers []string) (columnLayout, error) {
	layout := columnLayout{area: -1, year: -1, price: -1, demand: -1}

	for i, h := range headers {
		name := strings.ToLower(h)
		switch {
		case layout.area == -1 && (strings.Contains(name, "area") || strings.Contains(name, "location")):
			layout.area = i
		case layout.year == -1 && strings.Contains(name, "year"):
			layout.year = i
		case layout.price == -1 && strings.Contains(name, "price"):
			layout.price = i
		case layout.demand == -1 && strings.Contains(name, "demand"):
			layout.demand = i
		}
	}

	var missing []string
	if layout.area == -1 {
		missing = append(missing, "area")
	}
	if layout.year == -1 {
		missing = append(missing, "year")
	}
	if layout.price == -1 {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return layout, fmt.Errorf("csv missing required columns: %s", strings.Join(missing, ", "))
	}
	return layout, nil
}

func parseRow(row []string, layout columnLayout) (models.Record, bool) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	area := field(layout.area)
	if area == "" {
		return models.Record{}, false
	}

	year, err := strconv.Atoi(field(layout.year))
	if err != nil {
		return models.Record{}, false
	}

	price, err := strconv.ParseFloat(field(layout.price), 64)
	if err != nil {
		return models.Record{}, false
	}

	// Demand is optional; missing or bad values load as 0.
	demand, _ := strconv.ParseFloat(field(layout.demand), 64)

	return models.Record{Area: area, Year: year, Price: price, Demand: demand}, true
}
