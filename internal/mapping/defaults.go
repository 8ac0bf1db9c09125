package mapping

import "github.com/bokslut-dev/bokslut/internal/resolve"

// Defaults returns the built-in K2-style mapping tables: income statement,
// balance sheet, tax computation and fixed-asset notes over the standard
// BAS chart. Tables are data; a caller wanting different mappings loads
// its own YAML files instead.
func Defaults() []*resolve.Table {
	tables := []*resolve.Table{
		mustTable("income_statement", incomeStatement()),
		mustTable("balance_sheet", balanceSheet()),
		mustTable("tax", taxComputation()),
		mustTable("notes", fixedAssetNotes()),
	}
	return tables
}

// mustTable builds a table from compiled-in items. The built-in tables are
// covered by tests; a parse failure here is a programming error.
func mustTable(statement string, items []resolve.LineItemMapping) *resolve.Table {
	t, err := resolve.NewTable(statement, items)
	if err != nil {
		panic(err)
	}
	return t
}

func ranges(rs ...resolve.AccountRange) *resolve.AccountSpec {
	return &resolve.AccountSpec{Ranges: rs}
}

func span(from, to int) resolve.AccountRange {
	return resolve.AccountRange{From: from, To: to}
}

// Income and cost accounts sit in the natural-credit band, so the auto
// sign rule reports income positive and costs negative; every subtotal is
// then a plain sum of its rows.
func incomeStatement() []resolve.LineItemMapping {
	return []resolve.LineItemMapping{
		{Name: "net_sales", Title: "Nettoomsättning", RowID: 10,
			Accounts: ranges(span(3000, 3799))},
		{Name: "other_operating_income", Title: "Övriga rörelseintäkter", RowID: 20,
			Accounts: ranges(span(3900, 3999))},
		{Name: "operating_income_total", Title: "Summa rörelseintäkter", RowID: 30,
			Formula: "net_sales + other_operating_income", Style: "sum"},
		{Name: "raw_materials", Title: "Råvaror och förnödenheter", RowID: 40,
			Accounts: ranges(span(4000, 4999))},
		{Name: "other_external_costs", Title: "Övriga externa kostnader", RowID: 50,
			Accounts: ranges(span(5000, 6999))},
		{Name: "personnel_costs", Title: "Personalkostnader", RowID: 60,
			Accounts: ranges(span(7000, 7699))},
		{Name: "depreciation_impairment", Title: "Av- och nedskrivningar av anläggningstillgångar", RowID: 70,
			Accounts: ranges(span(7700, 7899))},
		{Name: "other_operating_costs", Title: "Övriga rörelsekostnader", RowID: 80,
			Accounts: ranges(span(7900, 7999))},
		{Name: "operating_profit", Title: "Rörelseresultat", RowID: 90, Style: "sum",
			Formula: "operating_income_total + raw_materials + other_external_costs + personnel_costs + depreciation_impairment + other_operating_costs"},
		{Name: "result_group_shares", Title: "Resultat från andelar i koncernföretag", RowID: 100,
			Accounts: ranges(span(8000, 8099))},
		{Name: "result_associate_shares", Title: "Resultat från andelar i intresseföretag", RowID: 110,
			Accounts: ranges(span(8100, 8199))},
		{Name: "result_other_securities", Title: "Resultat från övriga finansiella anläggningstillgångar", RowID: 120,
			Accounts: ranges(span(8200, 8299))},
		{Name: "interest_income", Title: "Ränteintäkter och liknande resultatposter", RowID: 130,
			Accounts: ranges(span(8300, 8399))},
		{Name: "interest_expense", Title: "Räntekostnader och liknande resultatposter", RowID: 140,
			Accounts: ranges(span(8400, 8499))},
		{Name: "profit_after_financial", Title: "Resultat efter finansiella poster", RowID: 150, Style: "sum",
			Formula: "operating_profit + result_group_shares + result_associate_shares + result_other_securities + interest_income + interest_expense"},
		{Name: "appropriations", Title: "Bokslutsdispositioner", RowID: 160,
			Accounts: ranges(span(8800, 8899))},
		{Name: "tax_expense", Title: "Skatt på årets resultat", RowID: 170,
			Accounts: ranges(span(8900, 8989))},
		{Name: "net_profit", Title: "Årets resultat", RowID: 180, Style: "sum",
			Formula: "profit_after_financial + appropriations + tax_expense"},
	}
}

func balanceSheet() []resolve.LineItemMapping {
	return []resolve.LineItemMapping{
		{Name: "intangible_assets", Title: "Immateriella anläggningstillgångar", RowID: 10,
			Accounts: ranges(span(1000, 1099))},
		{Name: "buildings_land", Title: "Byggnader och mark", RowID: 20,
			Accounts: ranges(span(1100, 1199))},
		{Name: "machinery_plant", Title: "Maskiner och andra tekniska anläggningar", RowID: 30,
			Accounts: ranges(span(1210, 1219))},
		{Name: "equipment_tools", Title: "Inventarier, verktyg och installationer", RowID: 40,
			Accounts: ranges(span(1220, 1289))},
		{Name: "other_tangible_assets", Title: "Övriga materiella anläggningstillgångar", RowID: 50,
			Accounts: ranges(span(1290, 1299))},
		{Name: "financial_assets", Title: "Finansiella anläggningstillgångar", RowID: 60,
			Accounts: ranges(span(1300, 1399))},
		{Name: "fixed_assets_total", Title: "Summa anläggningstillgångar", RowID: 70, Style: "sum",
			Formula: "intangible_assets + buildings_land + machinery_plant + equipment_tools + other_tangible_assets + financial_assets"},
		{Name: "inventory", Title: "Varulager m.m.", RowID: 80,
			Accounts: ranges(span(1400, 1499))},
		{Name: "current_receivables", Title: "Kortfristiga fordringar", RowID: 90,
			Accounts: ranges(span(1500, 1799))},
		{Name: "short_term_investments", Title: "Kortfristiga placeringar", RowID: 100,
			Accounts: ranges(span(1800, 1899))},
		{Name: "cash_bank", Title: "Kassa och bank", RowID: 110,
			Accounts: ranges(span(1900, 1999))},
		{Name: "current_assets_total", Title: "Summa omsättningstillgångar", RowID: 120, Style: "sum",
			Formula: "inventory + current_receivables + short_term_investments + cash_bank"},
		{Name: "assets_total", Title: "Summa tillgångar", RowID: 130, Style: "total",
			Formula: "fixed_assets_total + current_assets_total"},
		{Name: "equity", Title: "Eget kapital", RowID: 140,
			Accounts: ranges(span(2000, 2099))},
		{Name: "untaxed_reserves", Title: "Obeskattade reserver", RowID: 150,
			Accounts: ranges(span(2100, 2199))},
		{Name: "provisions", Title: "Avsättningar", RowID: 160,
			Accounts: ranges(span(2200, 2299))},
		{Name: "long_term_liabilities", Title: "Långfristiga skulder", RowID: 170,
			Accounts: ranges(span(2300, 2399))},
		{Name: "current_liabilities", Title: "Kortfristiga skulder", RowID: 180,
			Accounts: ranges(span(2400, 2999))},
		{Name: "equity_liabilities_total", Title: "Summa eget kapital och skulder", RowID: 190, Style: "total",
			Formula: "equity + untaxed_reserves + provisions + long_term_liabilities + current_liabilities"},
	}
}

// The tax computation references income-statement totals through the Aux
// variable set: the income statement resolves first and its values feed
// this table.
func taxComputation() []resolve.LineItemMapping {
	return []resolve.LineItemMapping{
		{Name: "pretax_profit", Title: "Resultat före skatt", RowID: 10,
			Formula: "profit_after_financial + appropriations"},
		{Name: "nondeductible_expenses", Title: "Ej avdragsgilla kostnader", RowID: 20,
			Accounts: &resolve.AccountSpec{
				Accounts: []int{6072, 6982, 6992, 7622, 8423},
				Sign:     resolve.SignPlus,
			}},
		{Name: "nontaxable_income", Title: "Ej skattepliktiga intäkter", RowID: 30,
			Accounts: &resolve.AccountSpec{Accounts: []int{8254, 8314}}},
		{Name: "taxable_income", Title: "Skattemässigt resultat", RowID: 40, Style: "sum",
			Formula: "pretax_profit + nondeductible_expenses - nontaxable_income"},
		{Name: "current_tax", Title: "Beräknad skatt", RowID: 50,
			Formula: "taxable_income * 0.206"},
	}
}

// The fixed-asset notes reference the seeded category variables produced
// by the classification engine.
func fixedAssetNotes() []resolve.LineItemMapping {
	var items []resolve.LineItemMapping
	row := 0
	for _, key := range []string{"buildings", "machinery", "equipment"} {
		for _, f := range []struct {
			suffix, title, formula string
		}{
			{"opening_cost", "Ingående anskaffningsvärden", key + "_opening_cost"},
			{"additions", "Inköp", key + "_purchase + " + key + "_merger_inflow"},
			{"disposals", "Försäljningar och utrangeringar", "0 - " + key + "_disposal"},
			{"reclassifications", "Omklassificeringar", key + "_reclassification"},
			{"closing_cost", "Utgående anskaffningsvärden",
				key + "_opening_cost + " + key + "_purchase + " + key + "_merger_inflow - " + key + "_disposal + " + key + "_reclassification"},
			{"carrying_value", "Redovisat värde", key + "_carrying_value"},
		} {
			row += 10
			items = append(items, resolve.LineItemMapping{
				Name:    "note_" + key + "_" + f.suffix,
				Title:   f.title,
				RowID:   row,
				Formula: f.formula,
			})
		}
	}
	return items
}
