package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// BalanceKind distinguishes the three balance declaration forms in a
// ledger export.
type BalanceKind string

const (
	// KindOpening is an opening balance (#IB) for a balance-sheet account.
	KindOpening BalanceKind = "IB"
	// KindClosing is a closing balance (#UB) for a balance-sheet account.
	KindClosing BalanceKind = "UB"
	// KindResult is a fiscal-year total (#RES) for a result account.
	KindResult BalanceKind = "RES"
)

// BalanceDeclaration is one declared balance. YearOffset 0 is the current
// fiscal year; -1 is the prior fiscal year as declared in the same document.
type BalanceDeclaration struct {
	Kind       BalanceKind
	YearOffset int
	Account    int
	Amount     decimal.Decimal
}

type balanceKey struct {
	kind    BalanceKind
	offset  int
	account int
}

// BalanceSet indexes balance declarations for lookup by kind, year offset,
// and account. Later declarations for the same key overwrite earlier ones.
type BalanceSet struct {
	values map[balanceKey]decimal.Decimal
}

// NewBalanceSet builds a BalanceSet from declarations.
func NewBalanceSet(decls []BalanceDeclaration) *BalanceSet {
	s := &BalanceSet{values: make(map[balanceKey]decimal.Decimal, len(decls))}
	for _, d := range decls {
		s.Add(d)
	}
	return s
}

// Add records one declaration.
func (s *BalanceSet) Add(d BalanceDeclaration) {
	if s.values == nil {
		s.values = make(map[balanceKey]decimal.Decimal)
	}
	s.values[balanceKey{d.Kind, d.YearOffset, d.Account}] = d.Amount
}

func (s *BalanceSet) get(kind BalanceKind, offset, account int) decimal.Decimal {
	if s == nil || s.values == nil {
		return decimal.Zero
	}
	return s.values[balanceKey{kind, offset, account}]
}

// Opening returns the declared opening balance for an account, or zero.
func (s *BalanceSet) Opening(offset, account int) decimal.Decimal {
	return s.get(KindOpening, offset, account)
}

// Closing returns the declared closing balance for an account, or zero.
func (s *BalanceSet) Closing(offset, account int) decimal.Decimal {
	return s.get(KindClosing, offset, account)
}

// Result returns the declared result-account total for an account, or zero.
func (s *BalanceSet) Result(offset, account int) decimal.Decimal {
	return s.get(KindResult, offset, account)
}

// Value returns the reportable balance for an account in the given year:
// the closing balance if one was declared, otherwise the result total.
// Balance-sheet accounts carry #UB and result accounts carry #RES, so the
// two never compete for the same account.
func (s *BalanceSet) Value(offset, account int) decimal.Decimal {
	if s == nil || s.values == nil {
		return decimal.Zero
	}
	if v, ok := s.values[balanceKey{KindClosing, offset, account}]; ok {
		return v
	}
	return s.values[balanceKey{KindResult, offset, account}]
}

// Sum adds up declarations of one kind and year offset over every account
// accepted by the predicate.
func (s *BalanceSet) Sum(kind BalanceKind, offset int, accept func(account int) bool) decimal.Decimal {
	total := decimal.Zero
	if s == nil {
		return total
	}
	for k, v := range s.values {
		if k.kind == kind && k.offset == offset && accept(k.account) {
			total = total.Add(v)
		}
	}
	return total
}

// Accounts returns, in ascending order, the accounts that carry a declared
// value (closing or result) for the given year offset.
func (s *BalanceSet) Accounts(offset int) []int {
	if s == nil {
		return nil
	}
	seen := make(map[int]bool)
	for k := range s.values {
		if k.offset == offset && (k.kind == KindClosing || k.kind == KindResult) {
			seen[k.account] = true
		}
	}
	accounts := make([]int, 0, len(seen))
	for a := range seen {
		accounts = append(accounts, a)
	}
	sort.Ints(accounts)
	return accounts
}
