package category

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bokslut-dev/bokslut/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func post(account int, amount string) model.Posting {
	return model.Posting{Account: account, Amount: dec(amount)}
}

func voucher(title string, postings ...model.Posting) model.Voucher {
	return model.Voucher{Series: "A", Number: 1, Title: title, Postings: postings}
}

func machineryConfig() Config {
	for _, c := range DefaultConfigs() {
		if c.Key == "machinery" {
			return c
		}
	}
	panic("machinery config missing")
}

func config(t *testing.T, key string) Config {
	t.Helper()
	for _, c := range DefaultConfigs() {
		if c.Key == key {
			return c
		}
	}
	t.Fatalf("no category %q", key)
	return Config{}
}

func classify(cfg Config, vouchers ...model.Voucher) Buckets {
	return Classify(cfg, vouchers, zerolog.Nop())
}

func assertEq(t *testing.T, want string, got decimal.Decimal, name string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s = %s, want %s", name, got, want)
}

func TestPurchase(t *testing.T) {
	b := classify(machineryConfig(),
		voucher("Inköp svarv", post(1210, "100"), post(1910, "-100")))

	assertEq(t, "100", b.Purchase, "purchase")
	assertEq(t, "0", b.Disposal, "disposal")
	assertEq(t, "0", b.Reclassification, "reclassification")
}

func TestDisposalWithPartialDepreciation(t *testing.T) {
	b := classify(machineryConfig(),
		voucher("Försäljning maskin",
			post(1210, "-100"), post(1219, "80"), post(1910, "20")))

	assertEq(t, "100", b.Disposal, "disposal")
	assertEq(t, "80", b.DepreciationDisposal, "depreciation reversal on disposal")
	assertEq(t, "0", b.Purchase, "purchase")
}

func TestDisposalSignaledByResultAccount(t *testing.T) {
	// Fully depreciated in a prior step; the P&L account is the only signal.
	b := classify(machineryConfig(),
		voucher("Avyttring",
			post(1210, "-100"), post(1910, "110"), post(3973, "-10")))

	assertEq(t, "100", b.Disposal, "disposal")
	assertEq(t, "0", b.Reclassification, "reclassification")
}

func TestAmbiguousReclass(t *testing.T) {
	b := classify(machineryConfig(),
		voucher("Omföring", post(1210, "50"), post(1211, "-50")))

	assertEq(t, "50", b.Reclassification, "reclassification")
	assertEq(t, "0", b.Purchase, "purchase")
	assertEq(t, "0", b.Disposal, "disposal")
	assertEq(t, "0", b.Depreciation, "depreciation")
}

func TestUnsignaledCreditParkedInReclass(t *testing.T) {
	b := classify(machineryConfig(),
		voucher("Oklart", post(1210, "-75"), post(1910, "75")))

	assertEq(t, "-75", b.Reclassification, "reclassification")
	assertEq(t, "0", b.Disposal, "disposal")
}

func TestMergerInflow(t *testing.T) {
	b := classify(machineryConfig(),
		voucher("Övertagna tillgångar vid fusion",
			post(1210, "300"), post(2081, "-300")))

	assertEq(t, "300", b.MergerInflow, "merger inflow")
	assertEq(t, "0", b.Purchase, "purchase")
}

func TestDepreciation(t *testing.T) {
	b := classify(machineryConfig(),
		voucher("Årets avskrivningar", post(7830, "40"), post(1219, "-40")))

	assertEq(t, "40", b.Depreciation, "depreciation")
	assertEq(t, "0", b.DepreciationReclass, "depreciation reclass")
}

func TestDepreciationCreditWithoutCostIsReclass(t *testing.T) {
	// Contra movement with no cost debit and no asset signal.
	b := classify(machineryConfig(),
		voucher("Justering", post(1219, "-40"), post(2099, "40")))

	assertEq(t, "0", b.Depreciation, "depreciation")
	assertEq(t, "-40", b.DepreciationReclass, "depreciation reclass")
}

func TestRevaluationFundedPurchaseSplit(t *testing.T) {
	cfg := config(t, "buildings")
	b := classify(cfg,
		voucher("Uppskrivning och tillbyggnad",
			post(1110, "500"), post(2085, "-200"), post(1910, "-300")))

	assertEq(t, "200", b.Revaluation, "revaluation")
	assertEq(t, "300", b.Purchase, "purchase")
}

func TestRevaluationCreditConsumedBeforeReclass(t *testing.T) {
	cfg := config(t, "buildings")

	// A reserve-funded debit alongside an offsetting sub-account credit:
	// the reserve credit claims the debit first, so the reserve
	// roll-forward still reconciles; the unmatched credit is parked.
	b := classify(cfg,
		voucher("Uppskrivning och omföring",
			post(1110, "100"), post(1111, "-100"), post(2085, "-100"), post(1910, "100")))

	assertEq(t, "100", b.Revaluation, "revaluation")
	assertEq(t, "-100", b.Reclassification, "reclassification")
	assertEq(t, "0", b.Purchase, "purchase")

	// The reserve roll-forward reconciles to the declared closing balance.
	balances := model.NewBalanceSet([]model.BalanceDeclaration{
		{Kind: model.KindOpening, Account: 2085, Amount: dec("-300")},
		{Kind: model.KindClosing, Account: 2085, Amount: dec("-400")},
	})
	s := RollForward(cfg, b, balances, 0)
	assertEq(t, "400", s.Revaluation.Closing, "reserve closing")
}

func TestResultShareCreditConsumedBeforeReclass(t *testing.T) {
	cfg := config(t, "shares_associates")

	b := classify(cfg,
		voucher("Resultatandel och omföring",
			post(1330, "80"), post(1331, "-80"), post(8130, "-80"), post(1930, "80")))

	assertEq(t, "80", b.ResultShare, "result share")
	assertEq(t, "-80", b.Reclassification, "reclassification")
	assertEq(t, "0", b.Purchase, "purchase")
}

func TestRevaluationDepreciation(t *testing.T) {
	cfg := config(t, "buildings")
	b := classify(cfg,
		voucher("Avskrivning på uppskrivet belopp",
			post(7820, "60"), post(1119, "-100"), post(2085, "40"), post(2089, "-40")))

	assertEq(t, "40", b.RevaluationDepreciation, "revaluation depreciation")
	assertEq(t, "60", b.Depreciation, "depreciation")
}

func TestImpairment(t *testing.T) {
	b := classify(machineryConfig(),
		voucher("Nedskrivning", post(7730, "90"), post(1218, "-90")))

	assertEq(t, "90", b.Impairment, "impairment")
}

func TestStandaloneImpairmentReversal(t *testing.T) {
	b := classify(machineryConfig(),
		voucher("Återföring nedskrivning", post(1218, "90"), post(7780, "-90")))

	assertEq(t, "90", b.ImpairmentReversal, "impairment reversal")
	assertEq(t, "0", b.ImpairmentDisposal, "impairment reversal on disposal")
	assertEq(t, "0", b.Disposal, "disposal")
}

func TestReversalWithDisposalResultIsParked(t *testing.T) {
	// A disposal P&L posting without an asset credit still counts as a
	// disposal signal, so no standalone reversal is booked; the contra
	// debit is parked conservatively.
	b := classify(machineryConfig(),
		voucher("Justering efter avyttring",
			post(1218, "90"), post(7780, "-70"), post(7973, "-20")))

	assertEq(t, "0", b.ImpairmentReversal, "standalone reversal")
	assertEq(t, "0", b.ImpairmentDisposal, "impairment reversal on disposal")
	assertEq(t, "90", b.ImpairmentReclass, "impairment reclass")
}

func TestImpairmentReversalOnDisposal(t *testing.T) {
	b := classify(machineryConfig(),
		voucher("Utrangering",
			post(1210, "-200"), post(1219, "150"), post(1218, "30"), post(7973, "20")))

	assertEq(t, "200", b.Disposal, "disposal")
	assertEq(t, "150", b.DepreciationDisposal, "depreciation reversal on disposal")
	assertEq(t, "30", b.ImpairmentDisposal, "impairment reversal on disposal")
	assertEq(t, "0", b.ImpairmentReversal, "standalone reversal")
}

func TestPartnershipCashSettlement(t *testing.T) {
	cfg := config(t, "shares_associates")
	require.True(t, cfg.HasResultShare())

	// Payout of an accrued result share: asset credit balanced by bank
	// debits only, no disposal P&L.
	b := classify(cfg,
		voucher("Uttag resultatandel HB",
			post(1330, "-120"), post(1930, "120")))

	assertEq(t, "-120", b.ResultShare, "result share")
	assertEq(t, "0", b.Disposal, "disposal")
	assertEq(t, "0", b.Reclassification, "reclassification")
}

func TestPartnershipSettlementRequiresBalancedBank(t *testing.T) {
	cfg := config(t, "shares_associates")

	// Amounts do not balance against bank; parked in reclassification.
	b := classify(cfg,
		voucher("Uttag", post(1330, "-120"), post(1930, "100"), post(6570, "20")))

	assertEq(t, "0", b.ResultShare, "result share")
	assertEq(t, "-120", b.Reclassification, "reclassification")
}

func TestResultShareAccrual(t *testing.T) {
	cfg := config(t, "shares_associates")
	b := classify(cfg,
		voucher("Resultatandel HB", post(1330, "80"), post(8130, "-80")))

	assertEq(t, "80", b.ResultShare, "result share")
	assertEq(t, "0", b.Purchase, "purchase")
}

func TestShareholderContribution(t *testing.T) {
	cfg := config(t, "shares_group")
	b := classify(cfg,
		voucher("Aktieägartillskott till dotterbolag",
			post(1310, "500"), post(1930, "-500")))

	assertEq(t, "500", b.ContributionGiven, "contribution given")
	assertEq(t, "0", b.Purchase, "purchase")

	b = classify(cfg,
		voucher("Återbetalt aktieägartillskott",
			post(1310, "-200"), post(1930, "200")))

	assertEq(t, "200", b.ContributionRepaid, "contribution repaid")
	assertEq(t, "0", b.Disposal, "disposal")
}

func TestCategoriesIgnoreForeignAccounts(t *testing.T) {
	// A machinery purchase leaves the buildings buckets untouched.
	v := voucher("Inköp svarv", post(1210, "100"), post(1910, "-100"))

	b := classify(config(t, "buildings"), v)
	assert.True(t, b.IsZero())
}

func TestClassifyDeterminism(t *testing.T) {
	vouchers := []model.Voucher{
		voucher("Inköp", post(1210, "100"), post(1910, "-100")),
		voucher("Försäljning", post(1210, "-40"), post(1219, "30"), post(1910, "10")),
		voucher("Avskrivning", post(7830, "20"), post(1219, "-20")),
	}
	first := classify(machineryConfig(), vouchers...)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, classify(machineryConfig(), vouchers...))
	}
}
