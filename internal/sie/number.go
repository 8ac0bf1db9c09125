package sie

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Ledger exports write amounts either machine-style ("-1234567.89") or
// display-style with space-grouped thousands and a comma decimal
// ("-1 234 567,89"). Both forms are accepted.
var amountPattern = regexp.MustCompile(`^[+-]?\d+(?: \d{3})*(?:[.,]\d+)?`)

// ParseAmount parses a ledger amount string into a decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	m := amountPattern.FindString(s)
	if m != s {
		return decimal.Zero, fmt.Errorf("malformed amount %q", s)
	}
	normalized := strings.ReplaceAll(m, " ", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}
