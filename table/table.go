// Package table normalizes tabular input into the record shapes the map
// endpoints expect. Input is a columnar table (for example a CSV file with a
// header row). When the required column names are present they are used as
// is; otherwise the first N columns are positionally reinterpreted as the
// required ones, provided at least N columns exist.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gosom/bharatviz-go/bharatviz"
	"github.com/gosom/bharatviz-go/entities"
)

// Table is a columnar table: a header row plus data rows of equal width.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Read parses CSV content, first row is the header.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bharatviz.ErrValidation, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: data cannot be empty", bharatviz.ErrValidation)
	}

	return &Table{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

// StateValues normalizes the table into state records using the
// state/value columns, or the first two columns positionally.
func (t *Table) StateValues() ([]entities.StateValue, error) {
	idx, err := t.indices("state", "value")
	if err != nil {
		return nil, err
	}

	ans := make([]entities.StateValue, 0, len(t.Rows))

	for i, row := range t.Rows {
		value, err := parseValue(row, idx[1], i)
		if err != nil {
			return nil, err
		}

		ans = append(ans, entities.StateValue{
			State: row[idx[0]],
			Value: value,
		})
	}

	if len(ans) == 0 {
		return nil, fmt.Errorf("%w: data cannot be empty", bharatviz.ErrValidation)
	}

	return ans, nil
}

// DistrictValues normalizes the table into district records using the
// state/district/value columns, or the first three columns positionally.
func (t *Table) DistrictValues() ([]entities.DistrictValue, error) {
	idx, err := t.indices("state", "district", "value")
	if err != nil {
		return nil, err
	}

	ans := make([]entities.DistrictValue, 0, len(t.Rows))

	for i, row := range t.Rows {
		value, err := parseValue(row, idx[2], i)
		if err != nil {
			return nil, err
		}

		ans = append(ans, entities.DistrictValue{
			State:    row[idx[0]],
			District: row[idx[1]],
			Value:    value,
		})
	}

	if len(ans) == 0 {
		return nil, fmt.Errorf("%w: data cannot be empty", bharatviz.ErrValidation)
	}

	return ans, nil
}

// indices maps the required column names to column positions. Name matches
// win; otherwise the first len(required) columns are used positionally.
func (t *Table) indices(required ...string) ([]int, error) {
	idx := make([]int, len(required))
	byName := true

	for i, name := range required {
		pos := -1

		for j, col := range t.Columns {
			if col == name {
				pos = j

				break
			}
		}

		if pos < 0 {
			byName = false

			break
		}

		idx[i] = pos
	}

	if byName {
		return idx, nil
	}

	if len(t.Columns) >= len(required) {
		for i := range required {
			idx[i] = i
		}

		return idx, nil
	}

	return nil, fmt.Errorf("%w: table must have %s columns, got: %s",
		bharatviz.ErrValidation,
		strings.Join(required, ", "),
		strings.Join(t.Columns, ", "),
	)
}

func parseValue(row []string, col, rowNum int) (float64, error) {
	if col >= len(row) {
		return 0, fmt.Errorf("%w: row %d has %d columns, expected at least %d",
			bharatviz.ErrValidation, rowNum+1, len(row), col+1)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: row %d value %q is not a finite number",
			bharatviz.ErrValidation, rowNum+1, row[col])
	}

	return value, nil
}

// FromMap converts a state to value mapping into records, sorted by state
// name so that the request body is deterministic.
func FromMap(values map[string]float64) []entities.StateValue {
	ans := make([]entities.StateValue, 0, len(values))

	for state, value := range values {
		ans = append(ans, entities.StateValue{State: state, Value: value})
	}

	sort.Slice(ans, func(i, j int) bool {
		return ans[i].State < ans[j].State
	})

	return ans
}

// FromColumns zips parallel state and value slices into records.
func FromColumns(states []string, values []float64) ([]entities.StateValue, error) {
	if len(states) != len(values) {
		return nil, fmt.Errorf("%w: states and values must have the same length (%d vs %d)",
			bharatviz.ErrValidation, len(states), len(values))
	}

	ans := make([]entities.StateValue, 0, len(states))

	for i := range states {
		ans = append(ans, entities.StateValue{State: states[i], Value: values[i]})
	}

	return ans, nil
}

// FromDistrictColumns zips parallel state, district and value slices into
// district records.
func FromDistrictColumns(states, districts []string, values []float64) ([]entities.DistrictValue, error) {
	if len(states) != len(districts) || len(states) != len(values) {
		return nil, fmt.Errorf("%w: states, districts and values must have the same length",
			bharatviz.ErrValidation)
	}

	ans := make([]entities.DistrictValue, 0, len(states))

	for i := range states {
		ans = append(ans, entities.DistrictValue{
			State:    states[i],
			District: districts[i],
			Value:    values[i],
		})
	}

	return ans, nil
}
