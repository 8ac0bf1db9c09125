package category

// DefaultConfigs returns the standard categories for a BAS-chart ledger.
// Every category runs the same classifier; only this data differs.
func DefaultConfigs() []Config {
	return []Config{
		{
			Key:                        "buildings",
			Title:                      "Byggnader och mark",
			AssetRanges:                []AccountRange{{1110, 1117}, {1130, 1137}, {1150, 1157}},
			DepreciationAccounts:       []int{1119, 1159},
			ImpairmentAccounts:         []int{1118, 1138, 1158},
			RevaluationAccounts:        []int{2085},
			DisposalResultAccounts:     []int{3972, 7972},
			DepreciationCostAccounts:   []int{7820, 7821, 7824, 7829},
			ImpairmentCostAccounts:     []int{7720},
			ImpairmentReversalAccounts: []int{7770},
		},
		{
			Key:                        "machinery",
			Title:                      "Maskiner och andra tekniska anläggningar",
			AssetRanges:                []AccountRange{{1210, 1217}},
			DepreciationAccounts:       []int{1219},
			ImpairmentAccounts:         []int{1218},
			DisposalResultAccounts:     []int{3973, 7973},
			DepreciationCostAccounts:   []int{7830, 7831},
			ImpairmentCostAccounts:     []int{7730},
			ImpairmentReversalAccounts: []int{7780},
		},
		{
			Key:                        "equipment",
			Title:                      "Inventarier, verktyg och installationer",
			AssetRanges:                []AccountRange{{1220, 1227}, {1240, 1247}, {1250, 1257}},
			DepreciationAccounts:       []int{1229, 1249, 1259},
			ImpairmentAccounts:         []int{1228},
			DisposalResultAccounts:     []int{3973, 7973},
			DepreciationCostAccounts:   []int{7832, 7834, 7835, 7836},
			ImpairmentCostAccounts:     []int{7730},
			ImpairmentReversalAccounts: []int{7780},
		},
		{
			Key:                        "other_tangible",
			Title:                      "Övriga materiella anläggningstillgångar",
			AssetRanges:                []AccountRange{{1290, 1297}},
			DepreciationAccounts:       []int{1299},
			ImpairmentAccounts:         []int{1298},
			DisposalResultAccounts:     []int{3979, 7979},
			DepreciationCostAccounts:   []int{7839},
			ImpairmentCostAccounts:     []int{7730},
			ImpairmentReversalAccounts: []int{7780},
		},
		{
			Key:                        "shares_group",
			Title:                      "Andelar i koncernföretag",
			AssetRanges:                []AccountRange{{1310, 1317}},
			ImpairmentAccounts:         []int{1318},
			DisposalResultAccounts:     []int{8020, 8022},
			ImpairmentCostAccounts:     []int{8070},
			ImpairmentReversalAccounts: []int{8080},
			ResultShareAccounts:        []int{8030, 8031},
			TrustLedgerContra:          true,
		},
		{
			Key:                        "receivables_group",
			Title:                      "Fordringar hos koncernföretag",
			AssetRanges:                []AccountRange{{1320, 1327}},
			ImpairmentAccounts:         []int{1328},
			DisposalResultAccounts:     []int{8020},
			ImpairmentCostAccounts:     []int{8072},
			ImpairmentReversalAccounts: []int{8082},
			TrustLedgerContra:          true,
		},
		{
			Key:                        "shares_associates",
			Title:                      "Andelar i intresseföretag och gemensamt styrda företag",
			AssetRanges:                []AccountRange{{1330, 1337}},
			ImpairmentAccounts:         []int{1338},
			DisposalResultAccounts:     []int{8120, 8122},
			ImpairmentCostAccounts:     []int{8170},
			ImpairmentReversalAccounts: []int{8180},
			ResultShareAccounts:        []int{8130, 8131},
			TrustLedgerContra:          true,
		},
		{
			Key:                        "receivables_associates",
			Title:                      "Fordringar hos intresseföretag",
			AssetRanges:                []AccountRange{{1340, 1347}},
			ImpairmentAccounts:         []int{1348},
			DisposalResultAccounts:     []int{8120},
			ImpairmentCostAccounts:     []int{8172},
			ImpairmentReversalAccounts: []int{8182},
			TrustLedgerContra:          true,
		},
		{
			Key:                        "securities",
			Title:                      "Andra långfristiga värdepappersinnehav",
			AssetRanges:                []AccountRange{{1350, 1357}},
			ImpairmentAccounts:         []int{1358},
			DisposalResultAccounts:     []int{8220, 8221, 8222, 8223},
			ImpairmentCostAccounts:     []int{8270},
			ImpairmentReversalAccounts: []int{8280},
			TrustLedgerContra:          true,
		},
	}
}
