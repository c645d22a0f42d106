package cot

import (
	"fmt"
	"strconv"
	"strings"
)

// CanonicalDate converts a date token of unknown encoding to YYYY-MM-DD.
// Recognized encodings, tried in order: already-canonical YYYY-MM-DD,
// six-digit YYMMDD, and MM/DD/YY or MM/DD/YYYY. Unrecognized tokens pass
// through unchanged so the caller sees the raw value rather than an error.
//
// Two-digit years expand with a fixed pivot: values above 70 map to the
// 1900s, the rest to the 2000s. The pivot is intentional.
func CanonicalDate(tok string) string {
	tok = strings.TrimSpace(tok)
	if isCanonical(tok) {
		return tok
	}
	if len(tok) == 6 && allDigits(tok) {
		yy, _ := strconv.Atoi(tok[:2])
		return fmt.Sprintf("%d-%s-%s", expandYear(yy), tok[2:4], tok[4:6])
	}
	if parts := strings.Split(tok, "/"); len(parts) == 3 {
		mm, dd, year := parts[0], parts[1], parts[2]
		if allDigits(mm) && allDigits(dd) && allDigits(year) {
			switch len(year) {
			case 2:
				yy, _ := strconv.Atoi(year)
				year = strconv.Itoa(expandYear(yy))
			case 4:
				// already a full year
			default:
				return tok
			}
			// Month and day keep whatever padding the source used.
			return year + "-" + mm + "-" + dd
		}
	}
	return tok
}

func isCanonical(tok string) bool {
	if len(tok) != 10 || tok[4] != '-' || tok[7] != '-' {
		return false
	}
	return allDigits(tok[:4]) && allDigits(tok[5:7]) && allDigits(tok[8:])
}

func expandYear(yy int) int {
	if yy > 70 {
		return 1900 + yy
	}
	return 2000 + yy
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
