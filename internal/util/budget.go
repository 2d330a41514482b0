package util

import (
	"regexp"
	"strconv"
	"strings"
)

var decimalRun = regexp.MustCompile(`\d+(?:\.\d+)?`)

// BudgetValue extracts a sortable numeric value from a free-form budget
// string like "$1,500 USDC". The first decimal run wins; anything
// without digits is worth 0.
func BudgetValue(budget string) float64 {
	normalized := strings.ReplaceAll(budget, ",", "")
	match := decimalRun.FindString(normalized)
	if match == "" {
		return 0
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value
}
