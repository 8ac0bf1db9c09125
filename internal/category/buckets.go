package category

import "github.com/shopspring/decimal"

// Buckets accumulates one category's classified movements for one fiscal
// year. Amounts are positive magnitudes except the Reclassification fields
// and ResultShare, which are signed (debit minus credit).
type Buckets struct {
	// Asset cost movements.
	Purchase           decimal.Decimal
	MergerInflow       decimal.Decimal
	ContributionGiven  decimal.Decimal
	ContributionRepaid decimal.Decimal
	Disposal           decimal.Decimal
	Reclassification   decimal.Decimal

	// Revaluation reserve movements.
	Revaluation             decimal.Decimal
	RevaluationDisposal     decimal.Decimal // reversal on disposal
	RevaluationDepreciation decimal.Decimal

	// Accumulated depreciation movements.
	Depreciation         decimal.Decimal
	DepreciationDisposal decimal.Decimal // reversal on disposal
	DepreciationReclass  decimal.Decimal

	// Accumulated impairment movements.
	Impairment         decimal.Decimal
	ImpairmentDisposal decimal.Decimal // reversal on disposal
	ImpairmentReversal decimal.Decimal // standalone reversal
	ImpairmentReclass  decimal.Decimal

	// Partnership result shares: positive for accrued profit shares,
	// negative for settled payouts and loss shares.
	ResultShare decimal.Decimal
}

// add accumulates another voucher's buckets into b.
func (b Buckets) add(o Buckets) Buckets {
	b.Purchase = b.Purchase.Add(o.Purchase)
	b.MergerInflow = b.MergerInflow.Add(o.MergerInflow)
	b.ContributionGiven = b.ContributionGiven.Add(o.ContributionGiven)
	b.ContributionRepaid = b.ContributionRepaid.Add(o.ContributionRepaid)
	b.Disposal = b.Disposal.Add(o.Disposal)
	b.Reclassification = b.Reclassification.Add(o.Reclassification)
	b.Revaluation = b.Revaluation.Add(o.Revaluation)
	b.RevaluationDisposal = b.RevaluationDisposal.Add(o.RevaluationDisposal)
	b.RevaluationDepreciation = b.RevaluationDepreciation.Add(o.RevaluationDepreciation)
	b.Depreciation = b.Depreciation.Add(o.Depreciation)
	b.DepreciationDisposal = b.DepreciationDisposal.Add(o.DepreciationDisposal)
	b.DepreciationReclass = b.DepreciationReclass.Add(o.DepreciationReclass)
	b.Impairment = b.Impairment.Add(o.Impairment)
	b.ImpairmentDisposal = b.ImpairmentDisposal.Add(o.ImpairmentDisposal)
	b.ImpairmentReversal = b.ImpairmentReversal.Add(o.ImpairmentReversal)
	b.ImpairmentReclass = b.ImpairmentReclass.Add(o.ImpairmentReclass)
	b.ResultShare = b.ResultShare.Add(o.ResultShare)
	return b
}

// IsZero reports whether no movement was recorded.
func (b Buckets) IsZero() bool {
	return b.Purchase.IsZero() && b.MergerInflow.IsZero() &&
		b.ContributionGiven.IsZero() && b.ContributionRepaid.IsZero() &&
		b.Disposal.IsZero() && b.Reclassification.IsZero() &&
		b.Revaluation.IsZero() && b.RevaluationDisposal.IsZero() &&
		b.RevaluationDepreciation.IsZero() &&
		b.Depreciation.IsZero() && b.DepreciationDisposal.IsZero() &&
		b.DepreciationReclass.IsZero() &&
		b.Impairment.IsZero() && b.ImpairmentDisposal.IsZero() &&
		b.ImpairmentReversal.IsZero() && b.ImpairmentReclass.IsZero() &&
		b.ResultShare.IsZero()
}
