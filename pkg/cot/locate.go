package cot

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLineNotFound indicates that no report line matched the instrument.
var ErrLineNotFound = errors.New("cot: instrument line not found")

// maxSampleLines bounds the near-miss sample carried by NotFoundError.
const maxSampleLines = 12

// Locator holds the immutable matching configuration for one instrument.
// Patterns are tried in declaration order, first match wins; Anchor and
// Qualifier drive the fuzzy fallback once every exact pattern misses.
type Locator struct {
	Patterns  []string
	Anchor    string
	Qualifier string
}

// Match is a located report line, returned unnormalized. Fuzzy is set when
// the anchor/qualifier fallback produced the match instead of an exact
// pattern, so callers can log the weaker confidence.
type Match struct {
	Line    string
	Pattern string
	Fuzzy   bool
}

// NotFoundError carries a bounded sample of near-miss lines to help a
// human update the pattern list after a report layout change. It unwraps
// to ErrLineNotFound.
type NotFoundError struct {
	Patterns []string
	Sample   []string
}

func (e *NotFoundError) Error() string {
	if len(e.Sample) == 0 {
		return fmt.Sprintf("cot: no line matched patterns %v and no near-miss candidates found", e.Patterns)
	}
	return fmt.Sprintf("cot: no line matched patterns %v; near-miss candidates:\n%s", e.Patterns, strings.Join(e.Sample, "\n"))
}

func (e *NotFoundError) Unwrap() error { return ErrLineNotFound }

// Locate scans lines top to bottom for the configured instrument. Each
// pattern is matched as a normalized substring against every line before
// the next pattern is tried. The anchor/qualifier pair is the last resort:
// the first line containing both tokens wins, flagged as fuzzy.
func (l Locator) Locate(lines []string) (Match, error) {
	normalized := make([]string, len(lines))
	for i, line := range lines {
		normalized[i] = Normalize(line)
	}

	for _, pattern := range l.Patterns {
		want := Normalize(pattern)
		if want == "" {
			continue
		}
		for i, norm := range normalized {
			if strings.Contains(norm, want) {
				return Match{Line: lines[i], Pattern: pattern}, nil
			}
		}
	}

	anchor := Normalize(l.Anchor)
	qualifier := Normalize(l.Qualifier)
	if anchor != "" && qualifier != "" {
		for i, norm := range normalized {
			if strings.Contains(norm, anchor) && strings.Contains(norm, qualifier) {
				return Match{Line: lines[i], Pattern: anchor + "+" + qualifier, Fuzzy: true}, nil
			}
		}
	}

	return Match{}, &NotFoundError{
		Patterns: l.Patterns,
		Sample:   nearMisses(lines, normalized, anchor, qualifier),
	}
}

// nearMisses collects up to maxSampleLines original lines containing
// either fuzzy token.
func nearMisses(lines, normalized []string, anchor, qualifier string) []string {
	var sample []string
	for i, norm := range normalized {
		if len(sample) >= maxSampleLines {
			break
		}
		if anchor != "" && strings.Contains(norm, anchor) {
			sample = append(sample, lines[i])
			continue
		}
		if qualifier != "" && strings.Contains(norm, qualifier) {
			sample = append(sample, lines[i])
		}
	}
	return sample
}
