// Package resolve computes reportable line items from account balances.
// Each line item is either a direct sum over account ranges or a formula
// over other line items; resolution is a pure two-pass batch over the
// mapping tables, run once per fiscal year.
package resolve

import (
	"fmt"
)

// ConfigError marks a mapping table that cannot be used at all, as opposed
// to a data problem in the ledger. Callers should treat it as a
// configuration fault and abort.
type ConfigError struct {
	Statement string
	Item      string
	Err       error
}

func (e *ConfigError) Error() string {
	msg := "mapping configuration"
	if e.Statement != "" {
		msg = "mapping table " + e.Statement
	}
	if e.Item != "" {
		msg += ", item " + e.Item
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// AccountRange is an inclusive account ID interval.
type AccountRange struct {
	From, To int
}

// Contains reports whether the account falls inside the range.
func (r AccountRange) Contains(account int) bool {
	return account >= r.From && account <= r.To
}

// Sign controls the reported sign of a direct variable.
type Sign string

const (
	// SignAuto negates the sum when the mapped accounts sit in the
	// natural-credit band (2000-8999: equity, liabilities and all result
	// accounts carry credit balances in a BAS chart), so income and
	// liabilities report as positive figures.
	SignAuto Sign = ""
	// SignPlus reports the raw debit-positive sum.
	SignPlus Sign = "plus"
	// SignMinus always negates the sum.
	SignMinus Sign = "minus"
)

// naturalCreditBand is the BAS account span whose accounts carry credit
// balances when in their normal state.
var naturalCreditBand = AccountRange{From: 2000, To: 8999}

// AccountSpec selects the accounts behind a direct variable.
type AccountSpec struct {
	Ranges          []AccountRange
	Accounts        []int
	ExcludeRanges   []AccountRange
	ExcludeAccounts []int
	Sign            Sign
}

// Matches reports whether the account is included and not excluded.
func (s AccountSpec) Matches(account int) bool {
	included := false
	for _, r := range s.Ranges {
		if r.Contains(account) {
			included = true
			break
		}
	}
	if !included {
		for _, a := range s.Accounts {
			if a == account {
				included = true
				break
			}
		}
	}
	if !included {
		return false
	}
	for _, r := range s.ExcludeRanges {
		if r.Contains(account) {
			return false
		}
	}
	for _, a := range s.ExcludeAccounts {
		if a == account {
			return false
		}
	}
	return true
}

// flip reports whether the summed balance should be negated before it is
// reported.
func (s AccountSpec) flip() bool {
	switch s.Sign {
	case SignPlus:
		return false
	case SignMinus:
		return true
	}
	// Auto: decide from the first included range or account.
	if len(s.Ranges) > 0 {
		return naturalCreditBand.Contains(s.Ranges[0].From)
	}
	if len(s.Accounts) > 0 {
		return naturalCreditBand.Contains(s.Accounts[0])
	}
	return false
}

// LineItemMapping is one reportable line item: either a direct
// account-based variable (Accounts set) or a formula over other variables
// (Formula set). RowID orders formula evaluation; Style and Hidden are
// carried through for the rendering layer and never read here.
type LineItemMapping struct {
	Name     string
	Title    string
	RowID    int
	Accounts *AccountSpec
	Formula  string
	Style    string
	Hidden   bool
}

// IsFormula reports whether the item is formula-based.
func (m LineItemMapping) IsFormula() bool {
	return m.Formula != ""
}

// Table is one statement's mapping table with every formula parsed.
type Table struct {
	Statement string
	Items     []LineItemMapping

	exprs map[string]Expr // by item name, formula items only
}

// NewTable builds a table and parses its formulas up front. An empty table
// or a formula that does not parse is a *ConfigError: the table is
// structurally unusable, which is fatal where bad ledger data is not.
func NewTable(statement string, items []LineItemMapping) (*Table, error) {
	if len(items) == 0 {
		return nil, &ConfigError{Statement: statement, Err: fmt.Errorf("empty mapping table")}
	}
	t := &Table{Statement: statement, Items: items, exprs: make(map[string]Expr)}
	for _, item := range items {
		if item.Name == "" {
			return nil, &ConfigError{Statement: statement, Err: fmt.Errorf("item without a name")}
		}
		if item.IsFormula() == (item.Accounts != nil) {
			return nil, &ConfigError{Statement: statement, Item: item.Name,
				Err: fmt.Errorf("exactly one of accounts or formula must be set")}
		}
		if item.IsFormula() {
			e, err := ParseExpr(item.Formula)
			if err != nil {
				return nil, &ConfigError{Statement: statement, Item: item.Name, Err: err}
			}
			t.exprs[item.Name] = e
		}
	}
	return t, nil
}

// Expr returns the parsed formula for a formula item.
func (t *Table) Expr(name string) (Expr, bool) {
	e, ok := t.exprs[name]
	return e, ok
}
