package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bokslut-dev/bokslut/internal/model"
	"github.com/bokslut-dev/bokslut/internal/resolve"
)

const sampleTable = `statement: income_statement
items:
  - name: net_sales
    title: Nettoomsättning
    row: 10
    accounts:
      include: ["3000-3799"]
      exclude: ["3740"]
  - name: other_income
    title: Övriga rörelseintäkter
    row: 20
    accounts:
      include: ["3900-3999"]
  - name: income_total
    title: Summa
    row: 30
    formula: net_sales + other_income
    style: sum
`

func writeTable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTable(t, t.TempDir(), "income.yaml", sampleTable)

	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "income_statement", tbl.Statement)
	require.Len(t, tbl.Items, 3)

	sales := tbl.Items[0]
	assert.Equal(t, "net_sales", sales.Name)
	assert.Equal(t, 10, sales.RowID)
	require.NotNil(t, sales.Accounts)
	assert.True(t, sales.Accounts.Matches(3010))
	assert.False(t, sales.Accounts.Matches(3740), "excluded account")
	assert.False(t, sales.Accounts.Matches(3900))

	total := tbl.Items[2]
	assert.True(t, total.IsFormula())
	_, ok := tbl.Expr("income_total")
	assert.True(t, ok)
}

func TestLoadBadFormula(t *testing.T) {
	path := writeTable(t, t.TempDir(), "bad.yaml", `statement: x
items:
  - name: broken
    row: 10
    formula: "1 + ("
`)

	_, err := Load(path)
	var cfgErr *resolve.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoadBadRange(t *testing.T) {
	path := writeTable(t, t.TempDir(), "bad.yaml", `statement: x
items:
  - name: broken
    row: 10
    accounts:
      include: ["3799-3000"]
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "empty interval")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "10-income.yaml", sampleTable)
	writeTable(t, dir, "20-balance.yaml", `statement: balance_sheet
items:
  - name: cash
    row: 10
    accounts:
      include: ["1900-1999"]
`)
	writeTable(t, dir, "notes.txt", "not a table")

	tables, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "income_statement", tables[0].Statement)
	assert.Equal(t, "balance_sheet", tables[1].Statement)
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	assert.Error(t, err)
}

func TestDefaultsResolve(t *testing.T) {
	tables := Defaults()
	require.Len(t, tables, 4)

	balances := model.NewBalanceSet([]model.BalanceDeclaration{
		{Kind: model.KindResult, YearOffset: 0, Account: 3010, Amount: dec("-1000")},
		{Kind: model.KindResult, YearOffset: 0, Account: 5010, Amount: dec("400")},
		{Kind: model.KindClosing, YearOffset: 0, Account: 1930, Amount: dec("600")},
	})

	aux := make(map[string]resolve.Amount)
	var sets []*resolve.ResultSet
	for _, tbl := range tables {
		rs, err := resolve.Resolve([]*resolve.Table{tbl}, balances, resolve.Options{
			Aux: aux, Logger: zerolog.Nop(),
		})
		require.NoError(t, err)
		for k, v := range rs.Values() {
			aux[k] = v
		}
		sets = append(sets, rs)
	}
	merged := resolve.MergeResults(sets...)

	cur, _ := merged.Value("net_sales")
	assert.True(t, cur.Equal(dec("1000")), "net_sales = %s", cur)
	cur, _ = merged.Value("other_external_costs")
	assert.True(t, cur.Equal(dec("-400")), "other_external_costs = %s", cur)
	cur, _ = merged.Value("operating_profit")
	assert.True(t, cur.Equal(dec("600")), "operating_profit = %s", cur)
	cur, _ = merged.Value("cash_bank")
	assert.True(t, cur.Equal(dec("600")), "cash_bank = %s", cur)

	// The tax table sees the income statement through the aux set.
	cur, _ = merged.Value("pretax_profit")
	assert.True(t, cur.Equal(dec("600")), "pretax_profit = %s", cur)
	cur, _ = merged.Value("current_tax")
	assert.True(t, cur.Equal(dec("123.6")), "current_tax = %s", cur)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}
