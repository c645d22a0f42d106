package cot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalize tests the Normalize helper.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "uppercases and trims",
			in:   "  e-mini nasdaq-100 stock index  ",
			want: "E-MINI NASDAQ-100 STOCK INDEX",
		},
		{
			name: "collapses whitespace runs",
			in:   "E-MINI\t\tNASDAQ-100   STOCK  INDEX",
			want: "E-MINI NASDAQ-100 STOCK INDEX",
		},
		{
			name: "en dash becomes hyphen",
			in:   "E–MINI NASDAQ–100",
			want: "E-MINI NASDAQ-100",
		},
		{
			name: "em dash becomes hyphen",
			in:   "E—MINI",
			want: "E-MINI",
		},
		{
			name: "minus sign and figure dash become hyphens",
			in:   "NASDAQ−100 E‒MINI",
			want: "NASDAQ-100 E-MINI",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   " \t \n ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

// TestNormalizeEquivalence verifies that variant renderings of the same
// instrument name normalize to the same string.
func TestNormalizeEquivalence(t *testing.T) {
	variants := []string{
		"E-MINI NASDAQ-100 STOCK INDEX",
		"e-mini nasdaq-100 stock index",
		"E–MINI  NASDAQ–100  STOCK  INDEX",
		"  E—MINI NASDAQ−100 STOCK\tINDEX ",
	}

	want := Normalize(variants[0])
	for _, v := range variants {
		assert.Equal(t, want, Normalize(v), "variant %q", v)
	}
}

// TestNormalizeIdempotent verifies Normalize(Normalize(s)) == Normalize(s).
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"E–MINI  NASDAQ–100",
		"  mixed Case\tand   spaces ",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}
