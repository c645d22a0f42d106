package cot

import (
	"fmt"
	"regexp"
	"strings"
)

// Field positions in the delimited short-format report layout.
const (
	delimMinFields   = 10
	delimFieldMarket = 0
	delimFieldYYMMDD = 1
	delimFieldDate   = 2
	delimFieldLong   = 8
	delimFieldShort  = 9
)

// Record is one instrument's reading from a weekly report.
type Record struct {
	Market       string
	ReportDate   string
	NonCommLong  float64
	NonCommShort float64
}

// Net returns the net non-commercial position, long minus short.
func (r *Record) Net() float64 {
	return r.NonCommLong - r.NonCommShort
}

// ParseRecordLine extracts a Record from a located report line. A comma
// anywhere in the line marks the delimited format, otherwise the line is
// treated as fixed-width. Shape failures return an error with a distinct
// message per cause; malformed individual values decode to zero.
func ParseRecordLine(line string) (*Record, error) {
	if strings.Contains(line, ",") {
		return parseDelimited(line)
	}
	return parseFixedWidth(line)
}

func parseDelimited(line string) (*Record, error) {
	fields := splitQuoted(line)
	if len(fields) < delimMinFields {
		return nil, fmt.Errorf("cot: delimited line has %d fields, need at least %d", len(fields), delimMinFields)
	}
	date := stripQuotes(fields[delimFieldDate])
	if date == "" {
		date = stripQuotes(fields[delimFieldYYMMDD])
	}
	return &Record{
		Market:       stripQuotes(fields[delimFieldMarket]),
		ReportDate:   CanonicalDate(date),
		NonCommLong:  ParseCount(fields[delimFieldLong]),
		NonCommShort: ParseCount(fields[delimFieldShort]),
	}, nil
}

// splitQuoted splits on commas outside double quotes. A quote character
// toggles quoted mode; quotes stay in the field for the caller to strip.
func splitQuoted(line string) []string {
	var (
		fields []string
		field  strings.Builder
		quoted bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			field.WriteRune(r)
		case r == ',' && !quoted:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	fields = append(fields, field.String())
	return fields
}

func stripQuotes(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
}

// positionPairs are the candidate (long, short) column pairs for the
// fixed-width layout, probed in order. Report revisions shift the position
// columns, so the first in-bounds pair with a positive value wins. Rows
// whose long and short are both legitimately zero cannot be told apart
// from a misaligned pair; such rows fail the parse.
var positionPairs = [4][2]int{{3, 4}, {2, 3}, {4, 5}, {5, 6}}

const fixedMinColumns = 5

var columnGap = regexp.MustCompile(` {2,}`)

func parseFixedWidth(line string) (*Record, error) {
	cols := columnGap.Split(strings.TrimSpace(line), -1)
	if len(cols) < fixedMinColumns {
		return nil, fmt.Errorf("cot: fixed-width line has %d columns, need at least %d", len(cols), fixedMinColumns)
	}
	for _, pair := range positionPairs {
		if pair[1] >= len(cols) {
			continue
		}
		long := ParseCount(cols[pair[0]])
		short := ParseCount(cols[pair[1]])
		if long > 0 || short > 0 {
			return &Record{
				Market:       strings.TrimSpace(cols[0]),
				ReportDate:   CanonicalDate(cols[1]),
				NonCommLong:  long,
				NonCommShort: short,
			}, nil
		}
	}
	return nil, fmt.Errorf("cot: no plausible long/short column pair in fixed-width line %q", line)
}
