package resolve

import (
	"errors"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bokslut-dev/bokslut/internal/model"
)

// Amount carries a variable's value for both reported fiscal years.
type Amount struct {
	Current decimal.Decimal
	Prior   decimal.Decimal
}

// AccountDetail is one account's contribution to a direct variable, for
// note drill-down rendering.
type AccountDetail struct {
	Account int
	Name    string
	Current decimal.Decimal
	Prior   decimal.Decimal
}

// Options adjusts one resolution run.
type Options struct {
	// Chart supplies declared account names for drill-down details.
	Chart *model.Chart
	// Aux is a read-only variable set visible to formulas but not
	// reported, for cross-statement references.
	Aux map[string]Amount
	// Seed injects precomputed variables (category movement totals) that
	// formulas and the output may reference. Seeded names are reserved: a
	// mapping item with the same name is skipped with a warning.
	Seed map[string]Amount
	// Overrides replaces a variable's current-year value before both
	// passes, so every formula referencing it sees the override.
	Overrides map[string]decimal.Decimal
	Logger    zerolog.Logger
}

// Row is one resolved line item in statement order.
type Row struct {
	Statement string
	Name      string
	Title     string
	RowID     int
	Formula   bool
	Hidden    bool
	Amount    Amount
	Details   []AccountDetail
}

// ResultSet holds every resolved variable for both fiscal years.
type ResultSet struct {
	rows   []Row
	byName map[string]Amount
}

// Value returns a variable's current and prior amounts. Unknown names
// return zeros.
func (r *ResultSet) Value(name string) (current, prior decimal.Decimal) {
	a := r.byName[name]
	return a.Current, a.Prior
}

// Rows returns every resolved row in mapping-table order.
func (r *ResultSet) Rows() []Row {
	return r.rows
}

// Statement returns the rows of one statement in table order.
func (r *ResultSet) Statement(name string) []Row {
	var rows []Row
	for _, row := range r.rows {
		if row.Statement == name {
			rows = append(rows, row)
		}
	}
	return rows
}

// Values returns a copy of the full name-to-amount map, suitable as the
// Aux set of a later resolution run.
func (r *ResultSet) Values() map[string]Amount {
	out := make(map[string]Amount, len(r.byName))
	for k, v := range r.byName {
		out[k] = v
	}
	return out
}

// Resolve evaluates every mapping table against the balance set, in two
// passes per fiscal year: pass 1 computes all direct variables from
// account balances, pass 2 computes all formula variables in ascending
// RowID order across tables, substituting already-resolved values and
// zero for anything else. The computation is pure: it owns all of its
// intermediate maps and reads nothing but its arguments.
func Resolve(tables []*Table, balances *model.BalanceSet, opts Options) (*ResultSet, error) {
	if len(tables) == 0 {
		return nil, &ConfigError{Err: errNoTables}
	}
	for _, t := range tables {
		if t == nil || len(t.Items) == 0 {
			return nil, &ConfigError{Err: errNoTables}
		}
	}

	rs := &ResultSet{byName: make(map[string]Amount)}
	for name, a := range opts.Seed {
		rs.byName[name] = a
	}

	// Pass 1: direct variables, both years, plus drill-down details.
	for _, t := range tables {
		for _, item := range t.Items {
			if _, seeded := opts.Seed[item.Name]; seeded {
				opts.Logger.Warn().Str("variable", item.Name).
					Str("statement", t.Statement).
					Msg("mapping item shadows a seeded variable, skipping")
				continue
			}
			row := Row{
				Statement: t.Statement,
				Name:      item.Name,
				Title:     item.Title,
				RowID:     item.RowID,
				Formula:   item.IsFormula(),
				Hidden:    item.Hidden,
			}
			if !item.IsFormula() {
				row.Amount, row.Details = evalDirect(*item.Accounts, balances, opts.Chart)
				rs.byName[item.Name] = row.Amount
			}
			rs.rows = append(rs.rows, row)
		}
	}

	// Overrides take precedence over pass-1 results for the current year.
	for name, v := range opts.Overrides {
		if a, ok := rs.byName[name]; ok {
			a.Current = v
			rs.byName[name] = a
		}
	}
	for i := range rs.rows {
		if v, ok := opts.Overrides[rs.rows[i].Name]; ok && !rs.rows[i].Formula {
			rs.rows[i].Amount.Current = v
		}
	}

	// Pass 2: formula variables in ascending RowID order. The table
	// authoring convention puts dependencies at lower row IDs; a forward
	// reference resolves to zero by contract.
	order := make([]int, 0, len(rs.rows))
	for i, row := range rs.rows {
		if row.Formula {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return rs.rows[order[i]].RowID < rs.rows[order[j]].RowID
	})

	lookup := func(year int) func(string) (decimal.Decimal, bool) {
		return func(name string) (decimal.Decimal, bool) {
			if a, ok := rs.byName[name]; ok {
				return pick(a, year), true
			}
			if a, ok := opts.Aux[name]; ok {
				return pick(a, year), true
			}
			return decimal.Zero, false
		}
	}
	for _, i := range order {
		row := &rs.rows[i]
		expr, ok := exprFor(tables, row.Statement, row.Name)
		if !ok {
			continue
		}
		logger := opts.Logger.With().Str("variable", row.Name).Logger()
		row.Amount.Current = expr.Eval(lookup(0), logger)
		row.Amount.Prior = expr.Eval(lookup(-1), logger)
		if v, ok := opts.Overrides[row.Name]; ok {
			row.Amount.Current = v
		}
		rs.byName[row.Name] = row.Amount
	}

	return rs, nil
}

// MergeResults combines per-statement result sets into one. Later sets win
// on duplicate variable names.
func MergeResults(sets ...*ResultSet) *ResultSet {
	merged := &ResultSet{byName: make(map[string]Amount)}
	for _, s := range sets {
		if s == nil {
			continue
		}
		merged.rows = append(merged.rows, s.rows...)
		for k, v := range s.byName {
			merged.byName[k] = v
		}
	}
	return merged
}

var errNoTables = errors.New("no usable mapping tables")

func pick(a Amount, year int) decimal.Decimal {
	if year == 0 {
		return a.Current
	}
	return a.Prior
}

func exprFor(tables []*Table, statement, name string) (Expr, bool) {
	for _, t := range tables {
		if t.Statement == statement {
			if e, ok := t.Expr(name); ok {
				return e, true
			}
		}
	}
	return nil, false
}

// evalDirect sums the matching declared balances for both years and
// collects the per-account breakdown.
func evalDirect(spec AccountSpec, balances *model.BalanceSet, chart *model.Chart) (Amount, []AccountDetail) {
	var details []AccountDetail
	var current, prior decimal.Decimal

	seen := make(map[int]bool)
	accounts := append(balances.Accounts(0), balances.Accounts(-1)...)
	sort.Ints(accounts)
	for _, account := range accounts {
		if seen[account] || !spec.Matches(account) {
			continue
		}
		seen[account] = true
		cur := balances.Value(0, account)
		pri := balances.Value(-1, account)
		if cur.IsZero() && pri.IsZero() {
			continue
		}
		current = current.Add(cur)
		prior = prior.Add(pri)
		d := AccountDetail{Account: account, Current: cur, Prior: pri}
		if chart != nil {
			d.Name = chart.Name(account)
		}
		details = append(details, d)
	}

	if spec.flip() {
		current, prior = current.Neg(), prior.Neg()
		for i := range details {
			details[i].Current = details[i].Current.Neg()
			details[i].Prior = details[i].Prior.Neg()
		}
	}
	return Amount{Current: current, Prior: prior}, details
}
