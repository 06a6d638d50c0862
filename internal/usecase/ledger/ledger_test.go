package ledger

import (
	"testing"

	orderbookv1 "github.com/muhammadchandra19/trade-engine/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/trade-engine/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test 1: Unknown users and assets read as zero, without faulting
func TestLedger_Get_UnknownReadsZero(t *testing.T) {
	l := New("INR")

	bal := l.Get("ghost", "INR")
	assert.Equal(t, 0.0, bal.Available)
	assert.Equal(t, 0.0, bal.Locked)
}

// Test 2: Locking moves available into locked
func TestLedger_LockFunds(t *testing.T) {
	l := New("INR")
	l.Deposit("1", "INR", 5000)

	err := l.LockFunds("1", "INR", 2000)
	require.NoError(t, err)

	bal := l.Get("1", "INR")
	assert.Equal(t, 3000.0, bal.Available)
	assert.Equal(t, 2000.0, bal.Locked)
}

// Test 3: An insufficient lock fails and mutates nothing
func TestLedger_LockFunds_Insufficient(t *testing.T) {
	l := New("INR")
	l.Deposit("1", "INR", 100)

	err := l.LockFunds("1", "INR", 101)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.InsufficientFunds))

	bal := l.Get("1", "INR")
	assert.Equal(t, 100.0, bal.Available)
	assert.Equal(t, 0.0, bal.Locked)
}

// Test 4: Unlocking restitutes locked funds
func TestLedger_UnlockFunds(t *testing.T) {
	l := New("INR")
	l.Deposit("1", "INR", 1000)
	require.NoError(t, l.LockFunds("1", "INR", 1000))

	l.UnlockFunds("1", "INR", 400)

	bal := l.Get("1", "INR")
	assert.Equal(t, 400.0, bal.Available)
	assert.Equal(t, 600.0, bal.Locked)
}

// Test 5: Settling a buy-taker fill moves value maker-ward and quantity taker-ward
func TestLedger_ApplyFill_BuyTaker(t *testing.T) {
	l := New("INR")
	l.Deposit("taker", "INR", 2000)
	l.Deposit("maker", "TATA", 5)
	require.NoError(t, l.LockFunds("taker", "INR", 2000))
	require.NoError(t, l.LockFunds("maker", "TATA", 2))

	l.ApplyFill("taker", orderbookv1.SideBuy, "TATA", orderbookv1.Fill{
		Price:       "1000",
		Qty:         2,
		OtherUserID: "maker",
	})

	assert.Equal(t, 2000.0, l.Get("maker", "INR").Available)
	assert.Equal(t, 0.0, l.Get("taker", "INR").Locked)
	assert.Equal(t, 0.0, l.Get("maker", "TATA").Locked)
	assert.Equal(t, 3.0, l.Get("maker", "TATA").Available)
	assert.Equal(t, 2.0, l.Get("taker", "TATA").Available)

	// Settlement moves funds, it never creates or destroys them
	assert.Equal(t, 2000.0, l.TotalOf("INR"))
	assert.Equal(t, 7.0, l.TotalOf("TATA"))
}

// Test 6: The sell-taker mapping mirrors the buy-taker one
func TestLedger_ApplyFill_SellTaker(t *testing.T) {
	l := New("INR")
	l.Deposit("maker", "INR", 2000)
	l.Deposit("taker", "TATA", 5)
	require.NoError(t, l.LockFunds("maker", "INR", 2000))
	require.NoError(t, l.LockFunds("taker", "TATA", 2))

	l.ApplyFill("taker", orderbookv1.SideSell, "TATA", orderbookv1.Fill{
		Price:       "1000",
		Qty:         2,
		OtherUserID: "maker",
	})

	assert.Equal(t, 0.0, l.Get("maker", "INR").Locked)
	assert.Equal(t, 2000.0, l.Get("taker", "INR").Available)
	assert.Equal(t, 2.0, l.Get("maker", "TATA").Available)
	assert.Equal(t, 0.0, l.Get("taker", "TATA").Locked)
	assert.Equal(t, 3.0, l.Get("taker", "TATA").Available)

	assert.Equal(t, 2000.0, l.TotalOf("INR"))
	assert.Equal(t, 7.0, l.TotalOf("TATA"))
}

// Test 7: Settlement against a never-seen counterparty creates entries on the fly
func TestLedger_ApplyFill_UnknownCounterparty(t *testing.T) {
	l := New("INR")
	l.Deposit("taker", "INR", 1000)
	require.NoError(t, l.LockFunds("taker", "INR", 1000))

	l.ApplyFill("taker", orderbookv1.SideBuy, "TATA", orderbookv1.Fill{
		Price:       "1000",
		Qty:         1,
		OtherUserID: "stranger",
	})

	assert.Equal(t, 1000.0, l.Get("stranger", "INR").Available)
	assert.Equal(t, -1.0, l.Get("stranger", "TATA").Locked)
	assert.Equal(t, 1.0, l.Get("taker", "TATA").Available)
}

// Test 8: On-ramp is the only mutation that grows an asset's total
func TestLedger_OnRamp(t *testing.T) {
	l := New("INR")

	l.OnRamp("9", 500)
	assert.Equal(t, 500.0, l.Get("9", "INR").Available)
	assert.Equal(t, 500.0, l.TotalOf("INR"))

	l.OnRamp("9", 250)
	assert.Equal(t, 750.0, l.TotalOf("INR"))
}

// Test 9: Snapshot is sorted by user id and survives a round trip
func TestLedger_SnapshotRestore(t *testing.T) {
	l := New("INR")
	l.Deposit("5", "INR", 100)
	l.Deposit("1", "INR", 200)
	l.Deposit("2", "TATA", 3)
	require.NoError(t, l.LockFunds("1", "INR", 50))

	entries := l.Snapshot()
	require.Len(t, entries, 3)
	assert.Equal(t, "1", entries[0].UserID)
	assert.Equal(t, "2", entries[1].UserID)
	assert.Equal(t, "5", entries[2].UserID)

	restored := Restore(entries, "INR")
	assert.Equal(t, l.Get("1", "INR"), restored.Get("1", "INR"))
	assert.Equal(t, l.Get("2", "TATA"), restored.Get("2", "TATA"))
	assert.Equal(t, l.TotalOf("INR"), restored.TotalOf("INR"))
}

// Test 10: Snapshot entries are deep copies
func TestLedger_SnapshotIsDeepCopy(t *testing.T) {
	l := New("INR")
	l.Deposit("1", "INR", 100)

	entries := l.Snapshot()
	l.Deposit("1", "INR", 900)

	assert.Equal(t, 100.0, entries[0].Account["INR"].Available)
}
