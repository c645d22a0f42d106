package cot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseCount tests the lenient count decoder.
func TestParseCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{
			name: "thousands separator",
			in:   "12,345",
			want: 12345,
		},
		{
			name: "quoted with separator",
			in:   `"1,000"`,
			want: 1000,
		},
		{
			name: "leading plus",
			in:   "+50",
			want: 50,
		},
		{
			name: "absent",
			in:   "",
			want: 0,
		},
		{
			name: "malformed",
			in:   "abc",
			want: 0,
		},
		{
			name: "negative",
			in:   "-2,500",
			want: -2500,
		},
		{
			name: "surrounding whitespace",
			in:   "  42  ",
			want: 42,
		},
		{
			name: "decimal",
			in:   "17.5",
			want: 17.5,
		},
		{
			name: "nan token decodes to zero",
			in:   "NaN",
			want: 0,
		},
		{
			name: "infinity token decodes to zero",
			in:   "+Inf",
			want: 0,
		},
		{
			name: "whitespace only",
			in:   "   ",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCount(tt.in))
		})
	}
}
