package category

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bokslut-dev/bokslut/internal/model"
)

// Voucher titles mentioning a merger route asset additions to the
// merger-inflow bucket instead of purchases.
var mergerKeywords = []string{"fusion", "merger"}

// Shareholder-contribution titles route movements on partnership-like
// categories to the contribution buckets.
var contributionKeywords = []string{"aktieägartillskott", "tillskott", "shareholder contribution"}

func titleHas(title string, keywords []string) bool {
	t := strings.ToLower(title)
	for _, k := range keywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

// totals aggregates one voucher's postings per account group for one
// category, plus the boolean signals the decision rules test.
type totals struct {
	assetDebit, assetCredit decimal.Decimal
	depDebit, depCredit     decimal.Decimal
	impDebit, impCredit     decimal.Decimal
	revalDebit, revalCredit decimal.Decimal
	shareDebit, shareCredit decimal.Decimal
	bankDebit, bankCredit   decimal.Decimal

	hasDisposalResult    bool
	hasDepreciationCost  bool // depreciation cost account debited
	hasImpairmentCost    bool // impairment cost account debited
	hasReversalCredit    bool // impairment cost/reversal account credited
	touchesOutsideBank   bool // accounts beyond the category and bank
}

func sumVoucher(cfg Config, v model.Voucher) totals {
	var t totals
	for _, p := range v.Postings {
		debit, credit := p.Debit(), p.Credit()
		switch cfg.group(p.Account) {
		case groupAsset:
			t.assetDebit = t.assetDebit.Add(debit)
			t.assetCredit = t.assetCredit.Add(credit)
		case groupDepreciation:
			t.depDebit = t.depDebit.Add(debit)
			t.depCredit = t.depCredit.Add(credit)
		case groupImpairment:
			t.impDebit = t.impDebit.Add(debit)
			t.impCredit = t.impCredit.Add(credit)
		case groupRevaluation:
			t.revalDebit = t.revalDebit.Add(debit)
			t.revalCredit = t.revalCredit.Add(credit)
		case groupResultShare:
			t.shareDebit = t.shareDebit.Add(debit)
			t.shareCredit = t.shareCredit.Add(credit)
		case groupBank:
			t.bankDebit = t.bankDebit.Add(debit)
			t.bankCredit = t.bankCredit.Add(credit)
		default:
			if contains(cfg.DisposalResultAccounts, p.Account) {
				t.hasDisposalResult = true
			}
			if contains(cfg.DepreciationCostAccounts, p.Account) && debit.IsPositive() {
				t.hasDepreciationCost = true
			}
			if contains(cfg.ImpairmentCostAccounts, p.Account) {
				if debit.IsPositive() {
					t.hasImpairmentCost = true
				}
				if credit.IsPositive() {
					t.hasReversalCredit = true
				}
			}
			if contains(cfg.ImpairmentReversalAccounts, p.Account) && credit.IsPositive() {
				t.hasReversalCredit = true
			}
			if !isSignalAccount(cfg, p.Account) {
				t.touchesOutsideBank = true
			}
		}
	}
	return t
}

func isSignalAccount(cfg Config, account int) bool {
	return contains(cfg.DisposalResultAccounts, account) ||
		contains(cfg.DepreciationCostAccounts, account) ||
		contains(cfg.ImpairmentCostAccounts, account) ||
		contains(cfg.ImpairmentReversalAccounts, account)
}

// Classify buckets every voucher's postings into movement types for one
// category. Each voucher is classified independently; within a voucher the
// decision rules run in fixed order and may split amounts across buckets.
// Anything that matches no rule is parked in reclassification rather than
// guessed.
func Classify(cfg Config, vouchers []model.Voucher, logger zerolog.Logger) Buckets {
	var total Buckets
	for _, v := range vouchers {
		b := classifyVoucher(cfg, v)
		if b.IsZero() {
			continue
		}
		logger.Debug().
			Str("category", cfg.Key).
			Str("voucher", v.Key().String()).
			Msg("classified voucher")
		total = total.add(b)
	}
	return total
}

func classifyVoucher(cfg Config, v model.Voucher) Buckets {
	t := sumVoucher(cfg, v)
	merger := titleHas(v.Title, mergerKeywords)
	contribution := cfg.HasResultShare() && titleHas(v.Title, contributionKeywords)

	remAssetDebit, remAssetCredit := t.assetDebit, t.assetCredit
	remDepDebit, remDepCredit := t.depDebit, t.depCredit
	remImpDebit, remImpCredit := t.impDebit, t.impCredit
	remRevalDebit, remRevalCredit := t.revalDebit, t.revalCredit
	remShareCredit := t.shareCredit

	var b Buckets
	disposal := false

	// Rule 1: disposal. An asset credit backed by a disposal signal books
	// as disposal; co-occurring contra debits reverse out of their
	// accumulated balances.
	if remAssetCredit.IsPositive() &&
		(remDepDebit.IsPositive() || t.hasDisposalResult || remRevalDebit.IsPositive()) {
		disposal = true
		b.Disposal = remAssetCredit
		remAssetCredit = decimal.Zero
		b.DepreciationDisposal = remDepDebit
		remDepDebit = decimal.Zero
		b.ImpairmentDisposal = remImpDebit
		remImpDebit = decimal.Zero
		b.RevaluationDisposal = remRevalDebit
		remRevalDebit = decimal.Zero
	}

	// Rule 5: partnership cash settlement. An unsignalled asset credit
	// whose only counterparts are bank debits of the same size is the
	// payout of a previously accrued result share, not a sale.
	if cfg.HasResultShare() && remAssetCredit.IsPositive() &&
		!t.hasDisposalResult && !t.touchesOutsideBank &&
		t.depDebit.IsZero() && t.depCredit.IsZero() &&
		t.impDebit.IsZero() && t.impCredit.IsZero() &&
		t.revalDebit.IsZero() && t.revalCredit.IsZero() &&
		t.shareDebit.IsZero() && t.shareCredit.IsZero() &&
		t.bankDebit.Sub(t.bankCredit).Equal(remAssetCredit) {
		b.ResultShare = b.ResultShare.Sub(remAssetCredit)
		remAssetCredit = decimal.Zero
	}

	// Contribution repayment: an unsignalled asset credit on a
	// contribution-titled voucher.
	if contribution && !disposal && remAssetCredit.IsPositive() {
		b.ContributionRepaid = remAssetCredit
		remAssetCredit = decimal.Zero
	}

	// Rule 2: asset debits funded by a revaluation-reserve credit or an
	// accrued partnership result share consume their matching credits
	// before any debit can be matched as an internal transfer.
	if remAssetDebit.IsPositive() {
		m := decimal.Min(remAssetDebit, remRevalCredit)
		b.Revaluation = m
		remAssetDebit = remAssetDebit.Sub(m)
		remRevalCredit = remRevalCredit.Sub(m)

		s := decimal.Min(remAssetDebit, remShareCredit)
		b.ResultShare = b.ResultShare.Add(s)
		remAssetDebit = remAssetDebit.Sub(s)
		remShareCredit = remShareCredit.Sub(s)
	}

	// Rule 6a: offsetting debit and credit within the category's asset
	// accounts with no other signal is an internal transfer between
	// sub-accounts.
	if remAssetDebit.IsPositive() && remAssetCredit.IsPositive() {
		m := decimal.Min(remAssetDebit, remAssetCredit)
		b.Reclassification = b.Reclassification.Add(m)
		remAssetDebit = remAssetDebit.Sub(m)
		remAssetCredit = remAssetCredit.Sub(m)
	}

	// Remaining asset debits book as merger inflow, contribution, or
	// ordinary purchase.
	if remAssetDebit.IsPositive() {
		switch {
		case merger:
			b.MergerInflow = remAssetDebit
		case contribution:
			b.ContributionGiven = remAssetDebit
		default:
			b.Purchase = remAssetDebit
		}
		remAssetDebit = decimal.Zero
	}

	// An asset credit that survived every rule is parked conservatively.
	if remAssetCredit.IsPositive() {
		b.Reclassification = b.Reclassification.Sub(remAssetCredit)
		remAssetCredit = decimal.Zero
	}

	// Rule 3: depreciation. A contra credit matched by a depreciation
	// cost debit is the year's charge; with a revaluation debit present
	// the matched part depreciates the revaluation instead.
	if remDepCredit.IsPositive() && t.hasDepreciationCost {
		if remRevalDebit.IsPositive() {
			m := decimal.Min(remDepCredit, remRevalDebit)
			b.RevaluationDepreciation = m
			remDepCredit = remDepCredit.Sub(m)
			remRevalDebit = remRevalDebit.Sub(m)
		}
		b.Depreciation = remDepCredit
		remDepCredit = decimal.Zero
	}

	// Rule 4: impairment and standalone reversal.
	if remImpCredit.IsPositive() && t.hasImpairmentCost {
		b.Impairment = remImpCredit
		remImpCredit = decimal.Zero
	}
	// A standalone reversal needs the absence of any disposal signal, not
	// just an unfired rule 1: a disposal P&L posting without an asset
	// credit still disqualifies it.
	if remImpDebit.IsPositive() && t.hasReversalCredit && !disposal && !t.hasDisposalResult {
		b.ImpairmentReversal = remImpDebit
		remImpDebit = decimal.Zero
	}

	// Rule 6b: leftover contra movement with no asset signal books as
	// reclassification of the contra balance (debit minus credit).
	if t.assetDebit.IsZero() && t.assetCredit.IsZero() {
		if !remDepDebit.IsZero() || !remDepCredit.IsZero() {
			b.DepreciationReclass = remDepDebit.Sub(remDepCredit)
		}
		if !remImpDebit.IsZero() || !remImpCredit.IsZero() {
			b.ImpairmentReclass = remImpDebit.Sub(remImpCredit)
		}
	}

	return b
}
