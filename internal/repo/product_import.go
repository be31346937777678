package repo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rogerio-castellano/inventory-keeper/pkg/ptr"
)

// ImportMode decides what happens to CSV rows whose code already exists.
type ImportMode string

const (
	// ImportModeSkip reports existing codes as row errors.
	ImportModeSkip ImportMode = "skip"
	// ImportModeUpdate overwrites existing products with the row values.
	ImportModeUpdate ImportMode = "update"
)

// ParseImportMode maps a user supplied mode to an ImportMode, defaulting to skip.
func ParseImportMode(s string) ImportMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ImportModeUpdate)) {
		return ImportModeUpdate
	}
	return ImportModeSkip
}

// ImportError is a rejected CSV row. Row numbers count the header as row 1.
type ImportError struct {
	Row int
	Err error
}

func (e ImportError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e ImportError) Unwrap() error {
	return e.Err
}

type ImportResult struct {
	Imported int
	Errors   []ImportError
}

type csvRow struct {
	num      int
	code     string
	name     string
	price    string
	quantity string
	err      error
}

var csvColumns = [][]string{codeKeys, nameKeys, priceKeys, quantityKeys}

func parseCSV(r io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header: %w", err)
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make([]int, len(csvColumns))
	for c, keys := range csvColumns {
		cols[c] = -1
		for _, k := range keys {
			if i, ok := index[k]; ok {
				cols[c] = i
				break
			}
		}
		if cols[c] < 0 {
			return nil, fmt.Errorf("missing column %q", keys[0])
		}
	}

	var rows []csvRow
	for num := 2; ; num++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}

		row := csvRow{num: num}
		if len(record) != len(headers) {
			row.err = fmt.Errorf("expected %d fields, got %d", len(headers), len(record))
		} else {
			row.code = record[cols[0]]
			row.name = record[cols[1]]
			row.price = record[cols[2]]
			row.quantity = record[cols[3]]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ImportCSV adds the products of a CSV file to store. Rows go through the store's
// own validation; each rejected row is reported and the rest are still imported.
func ImportCSV(r io.Reader, store ProductRepository, mode ImportMode) (ImportResult, error) {
	rows, err := parseCSV(r)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Errors: []ImportError{}}
	for _, row := range rows {
		if err := importRow(store, row, mode); err != nil {
			result.Errors = append(result.Errors, ImportError{Row: row.num, Err: err})
			continue
		}
		result.Imported++
	}
	return result, nil
}

func importRow(store ProductRepository, row csvRow, mode ImportMode) error {
	if row.err != nil {
		return row.err
	}
	price, err := ParsePrice(row.price)
	if err != nil {
		return fmt.Errorf("price %q: %w", row.price, err)
	}
	quantity, err := ParseQuantity(row.quantity)
	if err != nil {
		return fmt.Errorf("quantity %q: %w", row.quantity, err)
	}

	if !store.Exists(row.code) {
		return store.Add(row.code, row.name, price, quantity)
	}
	if mode != ImportModeUpdate {
		return fmt.Errorf("product %q: %w", strings.TrimSpace(row.code), ErrDuplicateCode)
	}

	fields := ProductUpdate{Price: &price, Quantity: &quantity}
	if name := strings.TrimSpace(row.name); name != "" {
		fields.Name = ptr.New(name)
	}
	return store.Update(row.code, fields)
}
