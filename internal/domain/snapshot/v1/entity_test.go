package snapshotv1

import (
	"encoding/json"
	"testing"

	ledgerv1 "github.com/muhammadchandra19/trade-engine/internal/domain/ledger/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test 1: Balance entries serialize as [userId, account] pairs
func TestBalanceEntry_MarshalJSON(t *testing.T) {
	entry := BalanceEntry{
		UserID: "1",
		Account: ledgerv1.Account{
			"INR": {Available: 9000, Locked: 1000},
		},
	}

	buf, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.JSONEq(t, `["1", {"INR": {"available": 9000, "locked": 1000}}]`, string(buf))
}

// Test 2: The pair encoding survives a round trip
func TestBalanceEntry_UnmarshalJSON(t *testing.T) {
	var entry BalanceEntry
	err := json.Unmarshal([]byte(`["5", {"TATA": {"available": 3, "locked": 2}}]`), &entry)
	require.NoError(t, err)

	assert.Equal(t, "5", entry.UserID)
	require.Contains(t, entry.Account, "TATA")
	assert.Equal(t, 3.0, entry.Account["TATA"].Available)
	assert.Equal(t, 2.0, entry.Account["TATA"].Locked)
}

// Test 3: Anything but a two-element array is rejected
func TestBalanceEntry_UnmarshalInvalid(t *testing.T) {
	var entry BalanceEntry
	assert.Error(t, json.Unmarshal([]byte(`["5"]`), &entry))
	assert.Error(t, json.Unmarshal([]byte(`{"userId": "5"}`), &entry))
}
