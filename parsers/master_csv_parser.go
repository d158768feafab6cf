package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// MasterColumns lists the header columns each master kind reads. The first column is the
// natural key and must be non-empty.
var MasterColumns = map[string][]string{
	"suppliers":     {"name", "contact_person", "phone"},
	"raw-materials": {"name", "unit"},
	"products":      {"name", "type", "unit_price"},
	"machines":      {"name", "type"},
	"trucks":        {"truck_number", "capacity", "driver_name"},
	"parties":       {"name", "contact_person", "phone", "address", "credit_limit"},
}

// ParsedMasterRecord is one data row keyed by column name.
type ParsedMasterRecord struct {
	Line   int
	Fields map[string]string
}

func (r ParsedMasterRecord) Get(key string) string {
	return r.Fields[key]
}

// ParseMasterCSV reads a master CSV with a header row. Columns other than the kind's are
// ignored and missing optional columns read as "". Rows that cannot be read or lack the key
// column are returned as skip messages.
func ParseMasterCSV(kind string, r io.Reader) ([]ParsedMasterRecord, []string, error) {
	columns, ok := MasterColumns[kind]
	if !ok {
		return nil, nil, fmt.Errorf("unknown master kind %q", kind)
	}

	reader := csv.NewReader(SkipBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	key := columns[0]
	colIndex, err := getColIndex(header, []string{key})
	if err != nil {
		return nil, nil, err
	}

	var records []ParsedMasterRecord
	var skipped []string
	line := 1

	for {
		line++
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			zap.L().Warn("skipping unreadable CSV row", zap.String("kind", kind), zap.Int("line", line), zap.Error(err))
			skipped = append(skipped, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		fields := make(map[string]string, len(columns))
		for _, col := range columns {
			if idx, ok := colIndex[col]; ok && idx < len(rec) {
				fields[col] = strings.TrimSpace(rec[idx])
			}
		}
		if fields[key] == "" {
			skipped = append(skipped, fmt.Sprintf("line %d: %s is empty", line, key))
			continue
		}

		records = append(records, ParsedMasterRecord{Line: line, Fields: fields})
	}

	return records, skipped, nil
}
