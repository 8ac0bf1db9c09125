// Package category buckets voucher postings into asset-movement types
// (purchase, disposal, depreciation, ...) and rolls opening balances
// forward to closing balances. One classification algorithm serves every
// asset category; categories differ only in their Config data.
package category

// AccountRange is an inclusive account ID interval.
type AccountRange struct {
	From, To int
}

// Contains reports whether the account falls inside the range.
func (r AccountRange) Contains(account int) bool {
	return account >= r.From && account <= r.To
}

// bankRange covers cash and bank accounts in the BAS chart, used by the
// partnership cash-settlement rule.
var bankRange = AccountRange{From: 1900, To: 1999}

// Config instantiates the classifier for one asset category. Account sets
// are BAS chart IDs; contra accounts must not overlap AssetRanges.
type Config struct {
	Key   string
	Title string

	// Balance-sheet account groups.
	AssetRanges          []AccountRange
	DepreciationAccounts []int // accumulated depreciation (credit balances)
	ImpairmentAccounts   []int // accumulated impairment (credit balances)
	RevaluationAccounts  []int // revaluation reserve

	// Result-account signals.
	DisposalResultAccounts     []int // profit/loss on disposal
	DepreciationCostAccounts   []int
	ImpairmentCostAccounts     []int
	ImpairmentReversalAccounts []int
	ResultShareAccounts        []int // partnership result shares

	// TrustLedgerContra takes the contra-account closing balances from the
	// ledger's declared UB instead of deriving them from buckets. Used for
	// categories where impairment reversals are common and not always
	// fully attributable.
	TrustLedgerContra bool
}

// HasResultShare reports whether the category is partnership-like.
func (c Config) HasResultShare() bool {
	return len(c.ResultShareAccounts) > 0
}

// accountGroup is the role an account plays for one category.
type accountGroup int

const (
	groupOther accountGroup = iota
	groupAsset
	groupDepreciation
	groupImpairment
	groupRevaluation
	groupResultShare
	groupBank
)

// group classifies an account. Contra and signal sets take precedence over
// asset ranges so a contra account accidentally inside a range is still
// treated as contra.
func (c Config) group(account int) accountGroup {
	switch {
	case contains(c.DepreciationAccounts, account):
		return groupDepreciation
	case contains(c.ImpairmentAccounts, account):
		return groupImpairment
	case contains(c.RevaluationAccounts, account):
		return groupRevaluation
	case contains(c.ResultShareAccounts, account):
		return groupResultShare
	}
	for _, r := range c.AssetRanges {
		if r.Contains(account) {
			return groupAsset
		}
	}
	if bankRange.Contains(account) {
		return groupBank
	}
	return groupOther
}

// IsAsset reports whether the account belongs to the category's asset cost
// accounts.
func (c Config) IsAsset(account int) bool {
	return c.group(account) == groupAsset
}

func contains(set []int, account int) bool {
	for _, a := range set {
		if a == account {
			return true
		}
	}
	return false
}
