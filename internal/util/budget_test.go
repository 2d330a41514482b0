package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetValue(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$5000", 5000},
		{"$1,500 USDC", 1500},
		{"2500.50", 2500.50},
		{"up to 300 dollars", 300},
		{"negotiable", 0},
		{"", 0},
		{"$2k-$5k", 2},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, BudgetValue(tc.in), "input %q", tc.in)
	}
}
