package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Posting is a single signed amount against one account within a voucher.
// Positive amounts are debits, negative amounts are credits.
type Posting struct {
	Account int
	Amount  decimal.Decimal
}

// Debit returns the debit side of the posting (zero if this is a credit).
func (p Posting) Debit() decimal.Decimal {
	if p.Amount.IsPositive() {
		return p.Amount
	}
	return decimal.Zero
}

// Credit returns the credit side of the posting as a positive number
// (zero if this is a debit).
func (p Posting) Credit() decimal.Decimal {
	if p.Amount.IsNegative() {
		return p.Amount.Neg()
	}
	return decimal.Zero
}

// Voucher is one journal entry: the postings that together record a single
// bookkeeping event. Posting order is preserved from the source document.
type Voucher struct {
	Series   string
	Number   int
	Date     time.Time
	Title    string
	Postings []Posting
}

// Key returns the voucher's (series, number) key.
func (v Voucher) Key() VoucherKey {
	return VoucherKey{Series: v.Series, Number: v.Number}
}

// VoucherKey identifies a voucher within one ledger document.
type VoucherKey struct {
	Series string
	Number int
}

// String formats a key like "A-123".
func (k VoucherKey) String() string {
	return fmt.Sprintf("%s-%d", k.Series, k.Number)
}

// ParseVoucherKey parses "A-123" into a VoucherKey.
func ParseVoucherKey(s string) (VoucherKey, error) {
	series, num, ok := strings.Cut(s, "-")
	if !ok || series == "" {
		return VoucherKey{}, fmt.Errorf("invalid voucher key format: %q", s)
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return VoucherKey{}, fmt.Errorf("invalid number in voucher key %q: %w", s, err)
	}
	return VoucherKey{Series: series, Number: n}, nil
}
