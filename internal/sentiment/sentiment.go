// Package sentiment builds the survey overlay rows from environment
// variables. The AAII survey has no machine-readable feed, so the weekly
// percentages are keyed in by hand before a run.
package sentiment

import (
	"os"
	"strings"

	"marketmood/pkg/cot"

	"marketmood/internal/artifact"
)

// Environment variables holding the current survey readings.
const (
	EnvBullish = "AAII_BULLISH"
	EnvNeutral = "AAII_NEUTRAL"
	EnvBearish = "AAII_BEARISH"
)

// Environment variables holding the prior-week readings.
const (
	EnvPrevBullish = "AAII_PREV_BULLISH"
	EnvPrevNeutral = "AAII_PREV_NEUTRAL"
	EnvPrevBearish = "AAII_PREV_BEARISH"
)

// Source marks manually keyed survey rows in the artifact.
const Source = "manual"

// surveyMax is the display ceiling for percentage rows.
const surveyMax = 100

// FromEnv assembles the survey block from the environment. Absent or
// malformed readings come through as zero; a prev pointer is set only
// when the matching prior-week variable is present and non-blank.
func FromEnv() artifact.AaiiBlock {
	return artifact.AaiiBlock{
		Source: Source,
		Rows: []artifact.Row{
			row(artifact.LabelBullish, EnvBullish, EnvPrevBullish),
			row(artifact.LabelNeutral, EnvNeutral, EnvPrevNeutral),
			row(artifact.LabelBearish, EnvBearish, EnvPrevBearish),
		},
	}
}

func row(label, envCurrent, envPrev string) artifact.Row {
	r := artifact.Row{
		Label: label,
		Value: cot.ParseCount(os.Getenv(envCurrent)),
		Max:   surveyMax,
	}
	if raw, ok := os.LookupEnv(envPrev); ok && strings.TrimSpace(raw) != "" {
		v := cot.ParseCount(raw)
		r.Prev = &v
	}
	return r
}
