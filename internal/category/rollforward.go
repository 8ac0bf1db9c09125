package category

import (
	"github.com/shopspring/decimal"

	"github.com/bokslut-dev/bokslut/internal/model"
)

// GroupBalance is the opening and closing balance for one account group.
// Cost and revaluation balances are positive; the accumulated contra
// balances keep their natural credit sign and are negative.
type GroupBalance struct {
	Opening decimal.Decimal
	Closing decimal.Decimal
}

// Movement returns closing minus opening.
func (g GroupBalance) Movement() decimal.Decimal {
	return g.Closing.Sub(g.Opening)
}

// Summary is one category's rolled-forward year: classified buckets plus
// the balances they reconcile to.
type Summary struct {
	Buckets Buckets

	Cost         GroupBalance
	Revaluation  GroupBalance
	Depreciation GroupBalance
	Impairment   GroupBalance
}

// CarryingValue returns the closing carrying value: cost plus revaluation
// plus the (negative) accumulated depreciation and impairment.
func (s Summary) CarryingValue() decimal.Decimal {
	return s.Cost.Closing.
		Add(s.Revaluation.Closing).
		Add(s.Depreciation.Closing).
		Add(s.Impairment.Closing)
}

// OpeningCarryingValue returns the carrying value at the start of the year.
func (s Summary) OpeningCarryingValue() decimal.Decimal {
	return s.Cost.Opening.
		Add(s.Revaluation.Opening).
		Add(s.Depreciation.Opening).
		Add(s.Impairment.Opening)
}

// RollForward computes closing balances from declared openings plus the
// classified buckets for the given declaration year offset (0 = current
// year). Contra closings are derived arithmetically unless the category
// trusts the ledger's declared closing balances.
func RollForward(cfg Config, b Buckets, balances *model.BalanceSet, offset int) Summary {
	s := Summary{Buckets: b}

	s.Cost.Opening = balances.Sum(model.KindOpening, offset, cfg.IsAsset)
	s.Cost.Closing = s.Cost.Opening.
		Add(b.Purchase).
		Add(b.MergerInflow).
		Add(b.ContributionGiven).
		Sub(b.ContributionRepaid).
		Sub(b.Disposal).
		Add(b.Reclassification).
		Add(b.ResultShare)

	// Revaluation reserves carry credit balances; the category tracks the
	// revalued amount as a positive figure.
	s.Revaluation.Opening = balances.Sum(model.KindOpening, offset, func(a int) bool {
		return contains(cfg.RevaluationAccounts, a)
	}).Neg()
	s.Revaluation.Closing = s.Revaluation.Opening.
		Add(b.Revaluation).
		Sub(b.RevaluationDisposal).
		Sub(b.RevaluationDepreciation)

	s.Depreciation.Opening = balances.Sum(model.KindOpening, offset, func(a int) bool {
		return contains(cfg.DepreciationAccounts, a)
	})
	s.Impairment.Opening = balances.Sum(model.KindOpening, offset, func(a int) bool {
		return contains(cfg.ImpairmentAccounts, a)
	})

	if cfg.TrustLedgerContra {
		// Documented exception: the declared UB is ground truth for
		// these categories, not the bucket arithmetic.
		s.Depreciation.Closing = balances.Sum(model.KindClosing, offset, func(a int) bool {
			return contains(cfg.DepreciationAccounts, a)
		})
		s.Impairment.Closing = balances.Sum(model.KindClosing, offset, func(a int) bool {
			return contains(cfg.ImpairmentAccounts, a)
		})
	} else {
		s.Depreciation.Closing = s.Depreciation.Opening.
			Sub(b.Depreciation).
			Add(b.DepreciationDisposal).
			Add(b.DepreciationReclass)
		s.Impairment.Closing = s.Impairment.Opening.
			Sub(b.Impairment).
			Add(b.ImpairmentDisposal).
			Add(b.ImpairmentReversal).
			Add(b.ImpairmentReclass)
	}

	return s
}
