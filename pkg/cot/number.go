package cot

import (
	"math"
	"strconv"
	"strings"
)

// countCleaner strips the decorations report numeric fields carry.
var countCleaner = strings.NewReplacer(",", "", `"`, "")

// ParseCount decodes a locale-formatted count token. Thousands separators,
// quote characters and a leading plus sign are stripped before parsing.
// Absent or malformed tokens decode to 0 rather than failing; only the
// line's overall shape can abort a parse, never a single value.
func ParseCount(tok string) float64 {
	tok = strings.TrimSpace(countCleaner.Replace(tok))
	tok = strings.TrimPrefix(tok, "+")
	if tok == "" {
		return 0
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
