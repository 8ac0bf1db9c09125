package model

import "sort"

// Account is one row of the chart of accounts as declared in a ledger
// export (#KONTO), optionally tagged with a statutory SRU code (#SRU).
type Account struct {
	ID   int
	Name string
	SRU  int // 0 = no SRU declaration
}

// Chart provides in-memory lookup over the accounts declared in a ledger.
type Chart struct {
	accounts []Account
	byID     map[int]Account
}

// NewChart creates a Chart from a slice of accounts. Accounts are kept
// sorted by ID so iteration order is stable.
func NewChart(accounts []Account) *Chart {
	sorted := make([]Account, len(accounts))
	copy(sorted, accounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[int]Account, len(sorted))
	for _, a := range sorted {
		byID[a.ID] = a
	}
	return &Chart{accounts: sorted, byID: byID}
}

// All returns all accounts in ascending ID order.
func (c *Chart) All() []Account {
	return c.accounts
}

// Get returns an account by ID.
func (c *Chart) Get(id int) (Account, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Exists reports whether an account ID was declared.
func (c *Chart) Exists(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Name returns the declared name for an account, or "" if unknown.
func (c *Chart) Name(id int) string {
	return c.byID[id].Name
}
