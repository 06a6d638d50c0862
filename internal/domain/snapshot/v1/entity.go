package snapshotv1

import (
	"encoding/json"
	"fmt"

	ledgerv1 "github.com/muhammadchandra19/trade-engine/internal/domain/ledger/v1"
	orderbookv1 "github.com/muhammadchandra19/trade-engine/internal/domain/orderbook/v1"
)

// Snapshot is a point-in-time serialization of every orderbook and the
// balance ledger, written periodically and read once at startup.
type Snapshot struct {
	Orderbooks []BookSnapshot `json:"orderbooks"`
	Balances   []BalanceEntry `json:"balances"`
}

// BookSnapshot is the persisted state of one market's book.
type BookSnapshot struct {
	BaseAsset    string               `json:"baseAsset"`
	Bids         []*orderbookv1.Order `json:"bids"`
	Asks         []*orderbookv1.Order `json:"asks"`
	LastTradeID  int64                `json:"lastTradeId"`
	CurrentPrice float64              `json:"currentPrice"`
}

// BalanceEntry is a (userId, account) pair. It is encoded as a two-element
// JSON array to keep the snapshot format compatible with map entry lists.
type BalanceEntry struct {
	UserID  string
	Account ledgerv1.Account
}

// MarshalJSON encodes the entry as [userId, account].
func (e BalanceEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.UserID, e.Account})
}

// UnmarshalJSON decodes a [userId, account] pair.
func (e *BalanceEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("balance entry must have 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.UserID); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &e.Account)
}
