package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseIntOrZero parses a form-style integer; anything unparseable yields 0.
func ParseIntOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ParseDecimalOrZero parses a form-style money amount; anything unparseable yields zero.
func ParseDecimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
