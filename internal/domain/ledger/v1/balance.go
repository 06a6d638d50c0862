package ledgerv1

// Balance tracks one user's holdings of a single asset. Available is
// spendable; Locked is committed to open orders.
type Balance struct {
	Available float64 `json:"available"`
	Locked    float64 `json:"locked"`
}

// Total returns available plus locked. Matching only moves value between
// users and between the two buckets, so per-asset totals change only via
// on-ramp.
func (b Balance) Total() float64 {
	return b.Available + b.Locked
}

// Account maps asset symbol to balance for one user.
type Account map[string]*Balance

// Clone returns a deep copy of the account.
func (a Account) Clone() Account {
	clone := make(Account, len(a))
	for asset, balance := range a {
		copied := *balance
		clone[asset] = &copied
	}
	return clone
}
