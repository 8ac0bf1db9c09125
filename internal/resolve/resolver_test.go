package resolve

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bokslut-dev/bokslut/internal/model"
)

func closing(offset, account int, amount string) model.BalanceDeclaration {
	return model.BalanceDeclaration{
		Kind: model.KindClosing, YearOffset: offset, Account: account, Amount: dec(amount),
	}
}

func result(offset, account int, amount string) model.BalanceDeclaration {
	return model.BalanceDeclaration{
		Kind: model.KindResult, YearOffset: offset, Account: account, Amount: dec(amount),
	}
}

func direct(name string, rowID int, accounts ...int) LineItemMapping {
	return LineItemMapping{
		Name:  name,
		RowID: rowID,
		Accounts: &AccountSpec{
			Accounts: accounts,
			Sign:     SignPlus,
		},
	}
}

func formula(name string, rowID int, expr string) LineItemMapping {
	return LineItemMapping{Name: name, RowID: rowID, Formula: expr}
}

func table(t *testing.T, statement string, items ...LineItemMapping) *Table {
	t.Helper()
	tbl, err := NewTable(statement, items)
	require.NoError(t, err)
	return tbl
}

func resolveOne(t *testing.T, tbl *Table, balances *model.BalanceSet, opts Options) *ResultSet {
	t.Helper()
	rs, err := Resolve([]*Table{tbl}, balances, opts)
	require.NoError(t, err)
	return rs
}

func assertValue(t *testing.T, rs *ResultSet, name, current, prior string) {
	t.Helper()
	cur, pri := rs.Value(name)
	assert.True(t, cur.Equal(dec(current)), "%s current = %s, want %s", name, cur, current)
	assert.True(t, pri.Equal(dec(prior)), "%s prior = %s, want %s", name, pri, prior)
}

func TestFormulaUsesDirectValueRegardlessOfListOrder(t *testing.T) {
	balances := model.NewBalanceSet([]model.BalanceDeclaration{
		closing(0, 1000, "300"),
	})
	// The formula item comes first in the list but has a higher row id.
	tbl := table(t, "test",
		formula("B", 20, "A + 50"),
		direct("A", 10, 1000),
	)

	rs := resolveOne(t, tbl, balances, Options{Logger: zerolog.Nop()})

	assertValue(t, rs, "A", "300", "0")
	assertValue(t, rs, "B", "350", "50")
}

func TestForwardReferenceResolvesToZero(t *testing.T) {
	balances := model.NewBalanceSet([]model.BalanceDeclaration{
		closing(0, 1000, "300"),
	})
	// C has a lower row id than the formula B it references, so it sees
	// zero. The authoring convention, documented, not enforced.
	tbl := table(t, "test",
		direct("A", 10, 1000),
		formula("C", 15, "B + 1"),
		formula("B", 20, "A + 50"),
	)

	rs := resolveOne(t, tbl, balances, Options{Logger: zerolog.Nop()})

	assertValue(t, rs, "C", "1", "1")
	assertValue(t, rs, "B", "350", "50")
}

func TestOverrideTakesPrecedence(t *testing.T) {
	balances := model.NewBalanceSet([]model.BalanceDeclaration{
		closing(0, 1000, "300"),
	})
	tbl := table(t, "test",
		direct("A", 10, 1000),
		formula("B", 20, "A + 50"),
	)

	rs := resolveOne(t, tbl, balances, Options{
		Logger:    zerolog.Nop(),
		Overrides: map[string]decimal.Decimal{"A": dec("100")},
	})

	cur, _ := rs.Value("A")
	assert.True(t, cur.Equal(dec("100")))
	cur, _ = rs.Value("B")
	assert.True(t, cur.Equal(dec("150")), "formula must see the override, got %s", cur)

	// The prior year is untouched by overrides.
	_, prior := rs.Value("B")
	assert.True(t, prior.Equal(dec("50")))
}

func TestPass1IndependentOfFormulas(t *testing.T) {
	balances := model.NewBalanceSet([]model.BalanceDeclaration{
		closing(0, 1000, "300"),
	})
	for _, f := range []string{"A + 50", "A * 99", "0"} {
		tbl := table(t, "test", direct("A", 10, 1000), formula("B", 20, f))
		rs := resolveOne(t, tbl, balances, Options{Logger: zerolog.Nop()})
		assertValue(t, rs, "A", "300", "0")
	}
}

func TestAutoSignFlipsNaturalCreditBand(t *testing.T) {
	balances := model.NewBalanceSet([]model.BalanceDeclaration{
		result(0, 3010, "-500"), // sales, credit balance
		closing(0, 1930, "200"), // bank, debit balance
		closing(0, 2350, "-80"), // loan, credit balance
	})
	tbl := table(t, "test",
		LineItemMapping{Name: "sales", RowID: 10,
			Accounts: &AccountSpec{Ranges: []AccountRange{{3000, 3799}}}},
		LineItemMapping{Name: "bank", RowID: 20,
			Accounts: &AccountSpec{Ranges: []AccountRange{{1900, 1999}}}},
		LineItemMapping{Name: "loans", RowID: 30,
			Accounts: &AccountSpec{Ranges: []AccountRange{{2300, 2399}}}},
	)

	rs := resolveOne(t, tbl, balances, Options{Logger: zerolog.Nop()})

	assertValue(t, rs, "sales", "500", "0")
	assertValue(t, rs, "bank", "200", "0")
	assertValue(t, rs, "loans", "80", "0")
}

func TestExplicitSignOverride(t *testing.T) {
	balances := model.NewBalanceSet([]model.BalanceDeclaration{
		result(0, 3010, "-500"),
	})
	tbl := table(t, "test",
		LineItemMapping{Name: "raw", RowID: 10,
			Accounts: &AccountSpec{Ranges: []AccountRange{{3000, 3799}}, Sign: SignPlus}},
		LineItemMapping{Name: "neg", RowID: 20,
			Accounts: &AccountSpec{Ranges: []AccountRange{{3000, 3799}}, Sign: SignMinus}},
	)

	rs := resolveOne(t, tbl, balances, Options{Logger: zerolog.Nop()})

	assertValue(t, rs, "raw", "-500", "0")
	assertValue(t, rs, "neg", "500", "0")
}

func TestExclusions(t *testing.T) {
	balances := model.NewBalanceSet([]model.BalanceDeclaration{
		closing(0, 1910, "100"),
		closing(0, 1930, "40"),
		closing(0, 1940, "5"),
	})
	tbl := table(t, "test",
		LineItemMapping{Name: "cash", RowID: 10, Accounts: &AccountSpec{
			Ranges:          []AccountRange{{1900, 1999}},
			ExcludeAccounts: []int{1930},
			ExcludeRanges:   []AccountRange{{1940, 1949}},
		}},
	)

	rs := resolveOne(t, tbl, balances, Options{Logger: zerolog.Nop()})

	assertValue(t, rs, "cash", "100", "0")
}

func TestDrillDownDetails(t *testing.T) {
	chart := model.NewChart([]model.Account{
		{ID: 1910, Name: "Kassa"},
		{ID: 1930, Name: "Företagskonto"},
	})
	balances := model.NewBalanceSet([]model.BalanceDeclaration{
		closing(0, 1910, "100"),
		closing(-1, 1910, "80"),
		closing(0, 1930, "40"),
	})
	tbl := table(t, "test",
		LineItemMapping{Name: "cash", RowID: 10, Accounts: &AccountSpec{
			Ranges: []AccountRange{{1900, 1999}},
		}},
	)

	rs := resolveOne(t, tbl, balances, Options{Chart: chart, Logger: zerolog.Nop()})

	rows := rs.Statement("test")
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Details, 2)
	assert.Equal(t, 1910, rows[0].Details[0].Account)
	assert.Equal(t, "Kassa", rows[0].Details[0].Name)
	assert.True(t, rows[0].Details[0].Current.Equal(dec("100")))
	assert.True(t, rows[0].Details[0].Prior.Equal(dec("80")))
	assert.Equal(t, "Företagskonto", rows[0].Details[1].Name)
}

func TestSeedAndAuxVisibleToFormulas(t *testing.T) {
	balances := model.NewBalanceSet(nil)
	tbl := table(t, "notes",
		formula("note_total", 10, "machinery_purchase + operating_profit"),
	)

	rs := resolveOne(t, tbl, balances, Options{
		Logger: zerolog.Nop(),
		Seed:   map[string]Amount{"machinery_purchase": {Current: dec("100"), Prior: dec("70")}},
		Aux:    map[string]Amount{"operating_profit": {Current: dec("25"), Prior: dec("10")}},
	})

	assertValue(t, rs, "note_total", "125", "80")
}

func TestResolveDeterminism(t *testing.T) {
	balances := model.NewBalanceSet([]model.BalanceDeclaration{
		closing(0, 1000, "300"),
		closing(0, 1910, "50"),
	})
	tbl := table(t, "test",
		direct("A", 10, 1000),
		direct("B", 20, 1910),
		formula("C", 30, "A + B"),
	)

	first := resolveOne(t, tbl, balances, Options{Logger: zerolog.Nop()})
	for i := 0; i < 10; i++ {
		again := resolveOne(t, tbl, balances, Options{Logger: zerolog.Nop()})
		assert.Equal(t, first.Values(), again.Values())
		assert.Equal(t, first.Rows(), again.Rows())
	}
}

func TestEmptyTableIsConfigError(t *testing.T) {
	_, err := NewTable("empty", nil)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)

	_, err = Resolve(nil, model.NewBalanceSet(nil), Options{Logger: zerolog.Nop()})
	require.ErrorAs(t, err, &cfgErr)
}

func TestUnparseableFormulaIsConfigError(t *testing.T) {
	_, err := NewTable("bad", []LineItemMapping{formula("X", 10, "1 + + 2")})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "X", cfgErr.Item)
}

func TestItemNeedsExactlyOneSource(t *testing.T) {
	_, err := NewTable("bad", []LineItemMapping{{Name: "X", RowID: 10}})
	assert.Error(t, err)

	_, err = NewTable("bad", []LineItemMapping{{
		Name: "X", RowID: 10, Formula: "1",
		Accounts: &AccountSpec{Accounts: []int{1000}},
	}})
	assert.Error(t, err)
}

func TestMergeResults(t *testing.T) {
	balances := model.NewBalanceSet([]model.BalanceDeclaration{closing(0, 1000, "5")})
	a := resolveOne(t, table(t, "one", direct("A", 10, 1000)), balances, Options{Logger: zerolog.Nop()})
	b := resolveOne(t, table(t, "two", formula("B", 10, "2")), balances, Options{Logger: zerolog.Nop()})

	merged := MergeResults(a, b)
	assertValue(t, merged, "A", "5", "0")
	assertValue(t, merged, "B", "2", "2")
	assert.Len(t, merged.Rows(), 2)
}

func TestConfigErrorDistinctFromDataError(t *testing.T) {
	err := &ConfigError{Statement: "tax", Item: "current_tax", Err: errors.New("boom")}
	assert.Contains(t, err.Error(), "tax")
	assert.Contains(t, err.Error(), "current_tax")
}
