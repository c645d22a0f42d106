// Package cot extracts futures-positioning readings from weekly
// Commitments of Traders report text. The report layout drifts across
// revisions, so matching and parsing lean lenient: lines are normalized
// before comparison, dates are decoded from several encodings, and
// malformed numeric tokens decode to zero instead of failing the run.
package cot

import "strings"

// dashVariants maps typographic dash runes to a plain hyphen.
var dashVariants = strings.NewReplacer(
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
)

// Normalize canonicalizes text for substring matching: uppercase, dash
// variants collapsed to "-", whitespace runs collapsed to single spaces,
// outer space trimmed. Total function, never fails.
func Normalize(s string) string {
	s = dashVariants.Replace(s)
	s = strings.ToUpper(s)
	return strings.Join(strings.Fields(s), " ")
}
