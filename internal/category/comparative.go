package category

import (
	"github.com/rs/zerolog"

	"github.com/bokslut-dev/bokslut/internal/model"
)

// DeriveFromLedger produces the prior-year summary from a full prior-year
// ledger document: the same pure pipeline, run independently.
func DeriveFromLedger(cfg Config, vouchers []model.Voucher, balances *model.BalanceSet, logger zerolog.Logger) Summary {
	b := Classify(cfg, vouchers, logger)
	return RollForward(cfg, b, balances, 0)
}

// DeriveFromBalances approximates the prior year's movements from the
// prior-year balance declarations in the current document (year offset -1),
// for when no prior ledger is supplied. A cost decrease is attributed
// wholly to disposal and an increase wholly to purchase; a contra-balance
// magnitude decrease is attributed wholly to reversal and an increase
// wholly to the year's charge. No merger, reclassification, or revaluation
// activity is inferred. A coarse and documented approximation.
func DeriveFromBalances(cfg Config, balances *model.BalanceSet) Summary {
	const offset = -1
	var s Summary

	s.Cost.Opening = balances.Sum(model.KindOpening, offset, cfg.IsAsset)
	s.Cost.Closing = balances.Sum(model.KindClosing, offset, cfg.IsAsset)
	delta := s.Cost.Movement()
	if delta.IsPositive() {
		s.Buckets.Purchase = delta
	} else {
		s.Buckets.Disposal = delta.Neg()
	}

	s.Revaluation.Opening = balances.Sum(model.KindOpening, offset, func(a int) bool {
		return contains(cfg.RevaluationAccounts, a)
	}).Neg()
	s.Revaluation.Closing = balances.Sum(model.KindClosing, offset, func(a int) bool {
		return contains(cfg.RevaluationAccounts, a)
	}).Neg()

	s.Depreciation.Opening = balances.Sum(model.KindOpening, offset, func(a int) bool {
		return contains(cfg.DepreciationAccounts, a)
	})
	s.Depreciation.Closing = balances.Sum(model.KindClosing, offset, func(a int) bool {
		return contains(cfg.DepreciationAccounts, a)
	})
	// Contra balances are negative; a more negative closing means a charge.
	depDelta := s.Depreciation.Opening.Sub(s.Depreciation.Closing)
	if depDelta.IsPositive() {
		s.Buckets.Depreciation = depDelta
	} else {
		s.Buckets.DepreciationDisposal = depDelta.Neg()
	}

	s.Impairment.Opening = balances.Sum(model.KindOpening, offset, func(a int) bool {
		return contains(cfg.ImpairmentAccounts, a)
	})
	s.Impairment.Closing = balances.Sum(model.KindClosing, offset, func(a int) bool {
		return contains(cfg.ImpairmentAccounts, a)
	})
	impDelta := s.Impairment.Opening.Sub(s.Impairment.Closing)
	if impDelta.IsPositive() {
		s.Buckets.Impairment = impDelta
	} else {
		s.Buckets.ImpairmentReversal = impDelta.Neg()
	}

	return s
}
