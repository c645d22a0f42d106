package datalink

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"marketmood/pkg/cot"
)

// datasetEnvelope is the wire shape of a dataset response.
type datasetEnvelope struct {
	Dataset Dataset `json:"dataset"`
}

// Dataset holds the fields of a Data Link dataset this package consumes.
// Data rows arrive newest first; row values align with ColumnNames.
type Dataset struct {
	Code        string          `json:"dataset_code"`
	Name        string          `json:"name"`
	ColumnNames []string        `json:"column_names"`
	Data        [][]interface{} `json:"data"`
	NewestDate  string          `json:"newest_available_date"`
}

// latestRecord maps the newest dataset row onto a positioning record.
// Columns are found by normalized name rather than position because the
// dataset family shuffles column order across report formats.
func (c *Client) latestRecord(ctx context.Context, market string) (*cot.Record, error) {
	ds, err := c.GetDataset(ctx)
	if err != nil {
		return nil, err
	}
	if len(ds.Data) == 0 {
		return nil, fmt.Errorf("datalink: dataset %s has no rows", c.dataset)
	}

	dateIdx, ok := findColumn(ds.ColumnNames, "DATE")
	if !ok {
		return nil, fmt.Errorf("datalink: dataset %s has no date column (columns: %v)", c.dataset, ds.ColumnNames)
	}
	longIdx, ok := findColumn(ds.ColumnNames, "NONCOMMERCIAL LONG")
	if !ok {
		return nil, fmt.Errorf("datalink: dataset %s has no noncommercial long column (columns: %v)", c.dataset, ds.ColumnNames)
	}
	shortIdx, ok := findColumn(ds.ColumnNames, "NONCOMMERCIAL SHORT")
	if !ok {
		return nil, fmt.Errorf("datalink: dataset %s has no noncommercial short column (columns: %v)", c.dataset, ds.ColumnNames)
	}

	row := ds.Data[0]
	width := len(row)
	if dateIdx >= width || longIdx >= width || shortIdx >= width {
		return nil, fmt.Errorf("datalink: dataset %s row has %d values for %d columns", c.dataset, width, len(ds.ColumnNames))
	}

	return &cot.Record{
		Market:       market,
		ReportDate:   cot.CanonicalDate(cellString(row[dateIdx])),
		NonCommLong:  cellCount(row[longIdx]),
		NonCommShort: cellCount(row[shortIdx]),
	}, nil
}

// findColumn locates a column by normalized name, exact match first, then
// the first name containing the wanted form as a substring.
func findColumn(names []string, want string) (int, bool) {
	for i, name := range names {
		if cot.Normalize(name) == want {
			return i, true
		}
	}
	for i, name := range names {
		if strings.Contains(cot.Normalize(name), want) {
			return i, true
		}
	}
	return 0, false
}

// cellString renders a dataset cell for the date decoder.
func cellString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

// cellCount decodes a dataset cell with the same leniency as report text.
func cellCount(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		return cot.ParseCount(val)
	case nil:
		return 0
	default:
		return cot.ParseCount(fmt.Sprintf("%v", val))
	}
}
