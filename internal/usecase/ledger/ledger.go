package ledger

import (
	"fmt"
	"sort"

	ledgerv1 "github.com/muhammadchandra19/trade-engine/internal/domain/ledger/v1"
	orderbookv1 "github.com/muhammadchandra19/trade-engine/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/trade-engine/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/trade-engine/pkg/errors"
)

// Ledger holds per-user, per-asset balances with available/locked
// accounting. Every read and write on the settlement path goes through the
// get-or-create accessor, so a missing entry can never fault mid-fill.
//
// The ledger is not safe for concurrent use; the engine serializes all
// access.
type Ledger struct {
	accounts      map[string]ledgerv1.Account
	quoteCurrency string
}

// New creates an empty ledger settling in quoteCurrency.
func New(quoteCurrency string) *Ledger {
	return &Ledger{
		accounts:      make(map[string]ledgerv1.Account),
		quoteCurrency: quoteCurrency,
	}
}

// Restore rebuilds a ledger from snapshot entries.
func Restore(entries []snapshotv1.BalanceEntry, quoteCurrency string) *Ledger {
	l := New(quoteCurrency)
	for _, entry := range entries {
		l.accounts[entry.UserID] = entry.Account.Clone()
	}
	return l
}

// QuoteCurrency returns the system-wide settlement currency.
func (l *Ledger) QuoteCurrency() string {
	return l.quoteCurrency
}

// balance is the get-or-create accessor backing every mutation.
func (l *Ledger) balance(userID, asset string) *ledgerv1.Balance {
	account, ok := l.accounts[userID]
	if !ok {
		account = ledgerv1.Account{}
		l.accounts[userID] = account
	}

	bal, ok := account[asset]
	if !ok {
		bal = &ledgerv1.Balance{}
		account[asset] = bal
	}
	return bal
}

// Get returns a copy of the user's balance for one asset. A user or asset
// the ledger has never seen reads as zero.
func (l *Ledger) Get(userID, asset string) ledgerv1.Balance {
	if account, ok := l.accounts[userID]; ok {
		if bal, ok := account[asset]; ok {
			return *bal
		}
	}
	return ledgerv1.Balance{}
}

// LockFunds moves amount from available to locked for the user's asset.
// It fails with insufficient_funds and mutates nothing when available is
// short.
func (l *Ledger) LockFunds(userID, asset string, amount float64) error {
	bal := l.balance(userID, asset)
	if bal.Available < amount {
		return errors.NewErrorDetails(
			fmt.Sprintf("user %s has %v %s available, needs %v", userID, bal.Available, asset, amount),
			string(errors.InsufficientFunds),
			"amount",
		)
	}

	bal.Available -= amount
	bal.Locked += amount
	return nil
}

// UnlockFunds moves amount from locked back to available, used for
// cancellation restitution.
func (l *Ledger) UnlockFunds(userID, asset string, amount float64) {
	bal := l.balance(userID, asset)
	bal.Locked -= amount
	bal.Available += amount
}

// ApplyFill settles one fill between the taker and the maker. The four
// mutations form one atomic step with respect to command processing: the
// maker's receiving asset gains the traded value from the taker's locked
// paying asset, and the maker's locked delivering asset releases the fill
// quantity to the taker.
func (l *Ledger) ApplyFill(takerID string, takerSide orderbookv1.Side, baseAsset string, fill orderbookv1.Fill) {
	value := fill.Qty * fill.PriceValue()
	makerID := fill.OtherUserID

	if takerSide == orderbookv1.SideBuy {
		l.balance(makerID, l.quoteCurrency).Available += value
		l.balance(takerID, l.quoteCurrency).Locked -= value
		l.balance(makerID, baseAsset).Locked -= fill.Qty
		l.balance(takerID, baseAsset).Available += fill.Qty
		return
	}

	l.balance(makerID, l.quoteCurrency).Locked -= value
	l.balance(takerID, l.quoteCurrency).Available += value
	l.balance(makerID, baseAsset).Available += fill.Qty
	l.balance(takerID, baseAsset).Locked -= fill.Qty
}

// OnRamp credits the settlement currency, creating the balance entry if
// absent. This is the only operation that changes an asset's global total.
func (l *Ledger) OnRamp(userID string, amount float64) {
	l.balance(userID, l.quoteCurrency).Available += amount
}

// Deposit credits an arbitrary asset, used to seed demo accounts at
// startup.
func (l *Ledger) Deposit(userID, asset string, amount float64) {
	l.balance(userID, asset).Available += amount
}

// TotalOf sums available+locked of one asset across all users. Matching
// must never change it; only on-ramp and deposits may.
func (l *Ledger) TotalOf(asset string) float64 {
	total := 0.0
	for _, account := range l.accounts {
		if bal, ok := account[asset]; ok {
			total += bal.Total()
		}
	}
	return total
}

// Snapshot returns a deep copy of every account, sorted by user id for a
// stable serialization.
func (l *Ledger) Snapshot() []snapshotv1.BalanceEntry {
	entries := make([]snapshotv1.BalanceEntry, 0, len(l.accounts))
	for userID, account := range l.accounts {
		entries = append(entries, snapshotv1.BalanceEntry{
			UserID:  userID,
			Account: account.Clone(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UserID < entries[j].UserID
	})
	return entries
}
