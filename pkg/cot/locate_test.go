package cot

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocator() Locator {
	return Locator{
		Patterns:  []string{"E-MINI NASDAQ-100 STOCK INDEX", "NASDAQ-100 STOCK INDEX"},
		Anchor:    "NASDAQ",
		Qualifier: "MINI",
	}
}

// TestLocateExactPattern tests exact pattern matching across line variants.
func TestLocateExactPattern(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name: "plain line",
			lines: []string{
				"WHEAT-SRW - CHICAGO BOARD OF TRADE",
				"E-MINI NASDAQ-100 STOCK INDEX - CHICAGO MERCANTILE EXCHANGE",
				"GOLD - COMMODITY EXCHANGE INC.",
			},
			want: "E-MINI NASDAQ-100 STOCK INDEX - CHICAGO MERCANTILE EXCHANGE",
		},
		{
			name: "en dash rendering",
			lines: []string{
				"GOLD - COMMODITY EXCHANGE INC.",
				"E–MINI NASDAQ–100 STOCK INDEX",
			},
			want: "E–MINI NASDAQ–100 STOCK INDEX",
		},
		{
			name: "extra whitespace rendering",
			lines: []string{
				"E-MINI  NASDAQ-100   STOCK  INDEX  250805",
			},
			want: "E-MINI  NASDAQ-100   STOCK  INDEX  250805",
		},
		{
			name: "lowercase rendering",
			lines: []string{
				"e-mini nasdaq-100 stock index,250805",
			},
			want: "e-mini nasdaq-100 stock index,250805",
		},
	}

	loc := testLocator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := loc.Locate(tt.lines)
			require.NoError(t, err)
			assert.Equal(t, tt.want, match.Line)
			assert.False(t, match.Fuzzy)
		})
	}
}

// TestLocatePatternPriority verifies that pattern order outranks line order.
func TestLocatePatternPriority(t *testing.T) {
	loc := Locator{
		Patterns: []string{"SECOND CHOICE", "FIRST LINE"},
	}
	lines := []string{
		"FIRST LINE HERE",
		"SECOND CHOICE HERE",
	}

	match, err := loc.Locate(lines)
	require.NoError(t, err)
	assert.Equal(t, "SECOND CHOICE HERE", match.Line)
	assert.Equal(t, "SECOND CHOICE", match.Pattern)
}

// TestLocateFirstLineWins verifies top-to-bottom scanning within a pattern.
func TestLocateFirstLineWins(t *testing.T) {
	loc := testLocator()
	lines := []string{
		"E-MINI NASDAQ-100 STOCK INDEX row one",
		"E-MINI NASDAQ-100 STOCK INDEX row two",
	}

	match, err := loc.Locate(lines)
	require.NoError(t, err)
	assert.Equal(t, lines[0], match.Line)
}

// TestLocateFuzzyFallback tests the anchor/qualifier fallback path.
func TestLocateFuzzyFallback(t *testing.T) {
	loc := testLocator()
	lines := []string{
		"GOLD - COMMODITY EXCHANGE INC.",
		"MICRO MINI NASDAQ COMPOSITE - CME",
	}

	match, err := loc.Locate(lines)
	require.NoError(t, err)
	assert.Equal(t, "MICRO MINI NASDAQ COMPOSITE - CME", match.Line)
	assert.True(t, match.Fuzzy)
}

// TestLocateNotFound tests the failure diagnostics.
func TestLocateNotFound(t *testing.T) {
	loc := testLocator()
	lines := []string{
		"GOLD - COMMODITY EXCHANGE INC.",
		"NASDAQ COMPOSITE FULL SIZE",
		"WHEAT-SRW - CHICAGO BOARD OF TRADE",
	}

	_, err := loc.Locate(lines)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLineNotFound))

	var nfe *NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, []string{"NASDAQ COMPOSITE FULL SIZE"}, nfe.Sample)
	assert.Contains(t, err.Error(), "NASDAQ COMPOSITE FULL SIZE")
}

// TestLocateSampleBounded verifies the near-miss sample stays bounded.
func TestLocateSampleBounded(t *testing.T) {
	loc := testLocator()
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("NASDAQ COMPOSITE VARIANT %d", i))
	}

	_, err := loc.Locate(lines)
	require.Error(t, err)

	var nfe *NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Len(t, nfe.Sample, maxSampleLines)
}

// TestLocateEmptyInput tests locating over no lines at all.
func TestLocateEmptyInput(t *testing.T) {
	loc := testLocator()

	_, err := loc.Locate(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLineNotFound))

	var nfe *NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Empty(t, nfe.Sample)
}
