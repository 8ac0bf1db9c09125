// Package report composes the full pipeline: parsed ledger documents in,
// classified category movements and resolved line items out. One Run owns
// every intermediate structure it allocates, so concurrent runs need no
// coordination.
package report

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bokslut-dev/bokslut/internal/category"
	"github.com/bokslut-dev/bokslut/internal/model"
	"github.com/bokslut-dev/bokslut/internal/resolve"
	"github.com/bokslut-dev/bokslut/internal/sie"
)

// Input is everything one report run consumes.
type Input struct {
	// Current is the current fiscal year's ledger document.
	Current *sie.Document
	// Prior is the prior year's ledger document, when available. Without
	// it the comparative year falls back to the balance-delta heuristic.
	Prior *sie.Document
	// Tables are resolved in order; earlier statements' variables are
	// visible to later statements' formulas.
	Tables []*resolve.Table
	// Categories defaults to category.DefaultConfigs when empty.
	Categories []category.Config
	// Overrides force current-year values for named variables.
	Overrides map[string]decimal.Decimal
}

// AccountLine is one account's declared balances, for note drill-down.
type AccountLine struct {
	Account int
	Name    string
	Opening decimal.Decimal
	Closing decimal.Decimal
}

// CategoryResult is one asset category's classified and rolled-forward
// year pair.
type CategoryResult struct {
	Config  category.Config
	Current category.Summary
	Prior   category.Summary

	// Accounts lists the category's asset accounts that carry a declared
	// balance in the current document.
	Accounts []AccountLine
}

// Result is one run's output.
type Result struct {
	Variables  *resolve.ResultSet
	Categories []CategoryResult
}

// Run executes the pipeline: classify every category, roll balances
// forward, derive the comparative year, then resolve every mapping table
// with the category totals seeded as variables.
func Run(in Input, logger zerolog.Logger) (*Result, error) {
	if in.Current == nil {
		return nil, fmt.Errorf("no current-year ledger document")
	}
	configs := in.Categories
	if len(configs) == 0 {
		configs = category.DefaultConfigs()
	}

	res := &Result{}
	seed := make(map[string]resolve.Amount)
	chart := in.Current.Chart()

	for _, cfg := range configs {
		buckets := category.Classify(cfg, in.Current.Vouchers, logger)
		cr := CategoryResult{
			Config:  cfg,
			Current: category.RollForward(cfg, buckets, in.Current.Balances, 0),
		}
		if in.Prior != nil {
			cr.Prior = category.DeriveFromLedger(cfg, in.Prior.Vouchers, in.Prior.Balances, logger)
		} else {
			cr.Prior = category.DeriveFromBalances(cfg, in.Current.Balances)
		}
		cr.Accounts = accountLines(cfg, in.Current, chart)
		res.Categories = append(res.Categories, cr)
		seedCategory(seed, cfg.Key, cr)
	}

	aux := make(map[string]resolve.Amount)
	var sets []*resolve.ResultSet
	for _, t := range in.Tables {
		rs, err := resolve.Resolve([]*resolve.Table{t}, in.Current.Balances, resolve.Options{
			Chart:     chart,
			Aux:       aux,
			Seed:      seed,
			Overrides: in.Overrides,
			Logger:    logger.With().Str("statement", t.Statement).Logger(),
		})
		if err != nil {
			return nil, err
		}
		for k, v := range rs.Values() {
			aux[k] = v
		}
		sets = append(sets, rs)
	}
	res.Variables = resolve.MergeResults(sets...)
	return res, nil
}

// seedCategory exposes a category's movement totals and closing positions
// as resolver variables named "<key>_<figure>".
func seedCategory(seed map[string]resolve.Amount, key string, cr CategoryResult) {
	pair := func(f func(category.Summary) decimal.Decimal) resolve.Amount {
		return resolve.Amount{Current: f(cr.Current), Prior: f(cr.Prior)}
	}
	seed[key+"_opening_cost"] = pair(func(s category.Summary) decimal.Decimal { return s.Cost.Opening })
	seed[key+"_closing_cost"] = pair(func(s category.Summary) decimal.Decimal { return s.Cost.Closing })
	seed[key+"_purchase"] = pair(func(s category.Summary) decimal.Decimal { return s.Buckets.Purchase })
	seed[key+"_merger_inflow"] = pair(func(s category.Summary) decimal.Decimal { return s.Buckets.MergerInflow })
	seed[key+"_contribution_given"] = pair(func(s category.Summary) decimal.Decimal { return s.Buckets.ContributionGiven })
	seed[key+"_contribution_repaid"] = pair(func(s category.Summary) decimal.Decimal { return s.Buckets.ContributionRepaid })
	seed[key+"_disposal"] = pair(func(s category.Summary) decimal.Decimal { return s.Buckets.Disposal })
	seed[key+"_reclassification"] = pair(func(s category.Summary) decimal.Decimal { return s.Buckets.Reclassification })
	seed[key+"_revaluation"] = pair(func(s category.Summary) decimal.Decimal { return s.Buckets.Revaluation })
	seed[key+"_depreciation"] = pair(func(s category.Summary) decimal.Decimal { return s.Buckets.Depreciation })
	seed[key+"_depreciation_disposal"] = pair(func(s category.Summary) decimal.Decimal { return s.Buckets.DepreciationDisposal })
	seed[key+"_impairment"] = pair(func(s category.Summary) decimal.Decimal { return s.Buckets.Impairment })
	seed[key+"_impairment_reversal"] = pair(func(s category.Summary) decimal.Decimal { return s.Buckets.ImpairmentReversal })
	seed[key+"_impairment_disposal"] = pair(func(s category.Summary) decimal.Decimal { return s.Buckets.ImpairmentDisposal })
	seed[key+"_result_share"] = pair(func(s category.Summary) decimal.Decimal { return s.Buckets.ResultShare })
	seed[key+"_closing_depreciation"] = pair(func(s category.Summary) decimal.Decimal { return s.Depreciation.Closing })
	seed[key+"_closing_impairment"] = pair(func(s category.Summary) decimal.Decimal { return s.Impairment.Closing })
	seed[key+"_carrying_value"] = pair(category.Summary.CarryingValue)
}

func accountLines(cfg category.Config, doc *sie.Document, chart *model.Chart) []AccountLine {
	var lines []AccountLine
	for _, a := range chart.All() {
		if !cfg.IsAsset(a.ID) {
			continue
		}
		opening := doc.Balances.Opening(0, a.ID)
		closing := doc.Balances.Closing(0, a.ID)
		if opening.IsZero() && closing.IsZero() {
			continue
		}
		lines = append(lines, AccountLine{
			Account: a.ID,
			Name:    a.Name,
			Opening: opening,
			Closing: closing,
		})
	}
	return lines
}
