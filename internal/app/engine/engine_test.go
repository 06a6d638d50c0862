package engine

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	gatewayv1 "github.com/muhammadchandra19/trade-engine/internal/domain/gateway/v1"
	gatewaymock "github.com/muhammadchandra19/trade-engine/internal/domain/gateway/v1/mock"
	ledgerv1 "github.com/muhammadchandra19/trade-engine/internal/domain/ledger/v1"
	orderbookv1 "github.com/muhammadchandra19/trade-engine/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/trade-engine/internal/domain/snapshot/v1"
	snapshotmock "github.com/muhammadchandra19/trade-engine/internal/domain/snapshot/v1/mock"
	"github.com/muhammadchandra19/trade-engine/pkg/config"
	"github.com/muhammadchandra19/trade-engine/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Test fixtures and helpers
type testFixture struct {
	ctrl          *gomock.Controller
	mockReader    *gatewaymock.MockCommandReader
	mockMarket    *gatewaymock.MockMarketPublisher
	mockStore     *gatewaymock.MockStorePublisher
	mockSnapshots *snapshotmock.MockStore
	logger        *logger.Logger
	config        *config.Config

	replies []gatewayv1.Reply
	records []gatewayv1.StoreRecord
	streams []gatewayv1.StreamEvent
}

func setupTestFixture(t *testing.T) *testFixture {
	ctrl := gomock.NewController(t)

	log, err := logger.NewLogger()
	require.NoError(t, err)

	return &testFixture{
		ctrl:          ctrl,
		mockReader:    gatewaymock.NewMockCommandReader(ctrl),
		mockMarket:    gatewaymock.NewMockMarketPublisher(ctrl),
		mockStore:     gatewaymock.NewMockStorePublisher(ctrl),
		mockSnapshots: snapshotmock.NewMockStore(ctrl),
		logger:        log,
		config: &config.Config{
			Markets:       []string{"TATA"},
			QuoteCurrency: "INR",
			WithSnapshot:  false,
			KafkaConfig: config.KafkaConfig{
				Brokers:      []string{"localhost:9092"},
				CommandTopic: "engine-commands",
				StoreTopic:   "db-processor",
			},
		},
	}
}

func (f *testFixture) teardown() {
	f.ctrl.Finish()
}

// expectPublishes wires capture-everything expectations for the three
// outbound surfaces.
func (f *testFixture) expectPublishes() {
	f.mockMarket.EXPECT().
		SendToClient(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, reply gatewayv1.Reply) error {
			f.replies = append(f.replies, reply)
			return nil
		}).
		AnyTimes()

	f.mockMarket.EXPECT().
		PublishStream(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, event gatewayv1.StreamEvent) error {
			f.streams = append(f.streams, event)
			return nil
		}).
		AnyTimes()

	f.mockStore.EXPECT().
		PushRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record gatewayv1.StoreRecord) error {
			f.records = append(f.records, record)
			return nil
		}).
		AnyTimes()
}

func (f *testFixture) depthEvents() []gatewayv1.DepthEventData {
	events := []gatewayv1.DepthEventData{}
	for _, stream := range f.streams {
		if data, ok := stream.Data.(gatewayv1.DepthEventData); ok {
			events = append(events, data)
		}
	}
	return events
}

func createTestEngine(f *testFixture) *Engine {
	return NewEngineWithOptions(
		f.mockReader,
		f.mockMarket,
		f.mockStore,
		f.mockSnapshots,
		f.logger,
		f.config,
		&Options{SnapshotInterval: 50 * time.Millisecond},
	)
}

func commandEnvelope(t *testing.T, clientID, msgType string, data any) *gatewayv1.Envelope {
	raw, err := json.Marshal(data)
	require.NoError(t, err)

	return &gatewayv1.Envelope{
		ClientID: clientID,
		Message:  gatewayv1.Message{Type: msgType, Data: raw},
	}
}

func createOrderEnvelope(t *testing.T, clientID, market, price, quantity string, side orderbookv1.Side, userID string) *gatewayv1.Envelope {
	return commandEnvelope(t, clientID, gatewayv1.TypeCreateOrder, gatewayv1.CreateOrderData{
		Market:   market,
		Price:    price,
		Quantity: quantity,
		Side:     side,
		UserID:   userID,
	})
}

// Test 1: Fresh start opens one book per market and seeds the demo accounts
func TestNewEngine_FreshState(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	engine := createTestEngine(fixture)

	require.NotNil(t, engine.findOrderbook("TATA_INR"))
	assert.Nil(t, engine.findOrderbook("DOGE_INR"))

	for _, userID := range demoUserIDs {
		assert.Equal(t, float64(demoBalance), engine.ledger.Get(userID, "INR").Available)
		assert.Equal(t, float64(demoBalance), engine.ledger.Get(userID, "TATA").Available)
	}
	assert.Equal(t, float64(demoBalance*len(demoUserIDs)), engine.ledger.TotalOf("INR"))
}

// Test 2: Snapshot restoration replaces fresh-state seeding entirely
func TestNewEngine_RestoresFromSnapshot(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	fixture.config.WithSnapshot = true
	fixture.mockSnapshots.EXPECT().
		Load(gomock.Any()).
		Return(&snapshotv1.Snapshot{
			Orderbooks: []snapshotv1.BookSnapshot{
				{
					BaseAsset: "TATA",
					Bids: []*orderbookv1.Order{
						{Price: 990, Quantity: 2, OrderID: "bid1", Side: orderbookv1.SideBuy, UserID: "1"},
					},
					Asks:         []*orderbookv1.Order{},
					LastTradeID:  7,
					CurrentPrice: 995,
				},
			},
			Balances: []snapshotv1.BalanceEntry{
				{UserID: "1", Account: ledgerv1.Account{
					"INR": {Available: 1500, Locked: 1980},
				}},
			},
		}, nil).
		Times(1)

	engine := createTestEngine(fixture)

	book := engine.findOrderbook("TATA_INR")
	require.NotNil(t, book)
	assert.Equal(t, int64(7), book.LastTradeID())
	assert.Equal(t, 995.0, book.CurrentPrice())
	require.NotNil(t, book.FindOrder("bid1"))

	assert.Equal(t, 1500.0, engine.ledger.Get("1", "INR").Available)
	assert.Equal(t, 1980.0, engine.ledger.Get("1", "INR").Locked)

	// No demo seeding happened
	assert.Equal(t, 0.0, engine.ledger.Get("2", "INR").Available)
}

// Test 3: A failed snapshot load degrades to a fresh start
func TestNewEngine_SnapshotLoadFailure(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	fixture.config.WithSnapshot = true
	fixture.mockSnapshots.EXPECT().
		Load(gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(1)

	engine := createTestEngine(fixture)

	require.NotNil(t, engine.findOrderbook("TATA_INR"))
	assert.Equal(t, float64(demoBalance), engine.ledger.Get("1", "INR").Available)
}

// Test 4: A non-crossing order locks funds and rests
func TestEngine_CreateOrder_RestsAndLocks(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()
	fixture.expectPublishes()

	engine := createTestEngine(fixture)
	engine.process(context.Background(), createOrderEnvelope(t, "client1", "TATA_INR", "1000", "1", orderbookv1.SideBuy, "1"))

	require.Len(t, fixture.replies, 1)
	assert.Equal(t, gatewayv1.TypeOrderPlaced, fixture.replies[0].Type)

	payload, ok := fixture.replies[0].Payload.(gatewayv1.OrderPlacedPayload)
	require.True(t, ok)
	assert.NotEmpty(t, payload.OrderID)
	assert.Equal(t, 0.0, payload.ExecutedQty)
	assert.Empty(t, payload.Fills)

	bal := engine.ledger.Get("1", "INR")
	assert.Equal(t, float64(demoBalance)-1000, bal.Available)
	assert.Equal(t, 1000.0, bal.Locked)

	// One taker record, one depth delta for the new bid level
	require.Len(t, fixture.records, 1)
	assert.Equal(t, gatewayv1.TypeOrderUpdate, fixture.records[0].Type)

	events := fixture.depthEvents()
	require.Len(t, events, 1)
	assert.Empty(t, events[0].A)
	assert.Equal(t, []orderbookv1.PriceLevel{{"1000", "1"}}, events[0].B)
}

// Test 5: A crossing order settles both parties and publishes the trade
func TestEngine_CreateOrder_MatchesAndSettles(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()
	fixture.expectPublishes()

	engine := createTestEngine(fixture)
	engine.process(context.Background(), createOrderEnvelope(t, "client1", "TATA_INR", "1000", "1", orderbookv1.SideBuy, "1"))
	engine.process(context.Background(), createOrderEnvelope(t, "client2", "TATA_INR", "1000", "2", orderbookv1.SideSell, "2"))

	require.Len(t, fixture.replies, 2)
	placed, ok := fixture.replies[1].Payload.(gatewayv1.OrderPlacedPayload)
	require.True(t, ok)
	assert.Equal(t, 1.0, placed.ExecutedQty)
	require.Len(t, placed.Fills, 1)
	assert.Equal(t, "1000", placed.Fills[0].Price)
	assert.Equal(t, "1", placed.Fills[0].OtherUserID)

	// Maker bought 1 TATA for 1000 INR out of locked funds
	assert.Equal(t, float64(demoBalance)-1000, engine.ledger.Get("1", "INR").Available)
	assert.Equal(t, 0.0, engine.ledger.Get("1", "INR").Locked)
	assert.Equal(t, float64(demoBalance)+1, engine.ledger.Get("1", "TATA").Available)

	// Taker sold 1 of 2, the unfilled base quantity stays locked
	assert.Equal(t, float64(demoBalance)+1000, engine.ledger.Get("2", "INR").Available)
	assert.Equal(t, float64(demoBalance)-2, engine.ledger.Get("2", "TATA").Available)
	assert.Equal(t, 1.0, engine.ledger.Get("2", "TATA").Locked)

	// Matching conserved both assets across the system
	assert.Equal(t, float64(demoBalance*len(demoUserIDs)), engine.ledger.TotalOf("INR"))
	assert.Equal(t, float64(demoBalance*len(demoUserIDs)), engine.ledger.TotalOf("TATA"))

	tradeAdded := []gatewayv1.TradeAddedData{}
	for _, record := range fixture.records {
		if data, ok := record.Data.(gatewayv1.TradeAddedData); ok {
			tradeAdded = append(tradeAdded, data)
		}
	}
	require.Len(t, tradeAdded, 1)
	assert.Equal(t, "0", tradeAdded[0].ID)
	assert.Equal(t, "1000", tradeAdded[0].Price)
	assert.Equal(t, "1000", tradeAdded[0].QuoteQuantity)

	foundTrade := false
	for _, stream := range fixture.streams {
		if stream.Stream == "trade@TATA_INR" {
			foundTrade = true
			data, ok := stream.Data.(gatewayv1.TradeEventData)
			require.True(t, ok)
			assert.Equal(t, "trade", data.E)
			assert.Equal(t, "1000", data.P)
			assert.Equal(t, "1", data.Q)
		}
	}
	assert.True(t, foundTrade)
}

// Test 6: Insufficient funds rejects the order and mutates nothing
func TestEngine_CreateOrder_InsufficientFunds(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	var replies []gatewayv1.Reply
	fixture.mockMarket.EXPECT().
		SendToClient(gomock.Any(), "client1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, reply gatewayv1.Reply) error {
			replies = append(replies, reply)
			return nil
		}).
		Times(1)

	engine := createTestEngine(fixture)
	engine.process(context.Background(), createOrderEnvelope(t, "client1", "TATA_INR", "1000", "20000", orderbookv1.SideBuy, "1"))

	require.Len(t, replies, 1)
	assert.Equal(t, gatewayv1.TypeOrderCancelled, replies[0].Type)
	assert.Equal(t, gatewayv1.OrderCancelledPayload{}, replies[0].Payload)

	bal := engine.ledger.Get("1", "INR")
	assert.Equal(t, float64(demoBalance), bal.Available)
	assert.Equal(t, 0.0, bal.Locked)

	depth := engine.findOrderbook("TATA_INR").GetDepth()
	assert.Empty(t, depth.Bids)
	assert.Empty(t, depth.Asks)
}

// Test 7: Malformed create orders are rejected without touching the book
func TestEngine_CreateOrder_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		data gatewayv1.CreateOrderData
	}{
		{
			name: "unknown market",
			data: gatewayv1.CreateOrderData{Market: "DOGE_INR", Price: "1000", Quantity: "1", Side: orderbookv1.SideBuy, UserID: "1"},
		},
		{
			name: "unparseable price",
			data: gatewayv1.CreateOrderData{Market: "TATA_INR", Price: "abc", Quantity: "1", Side: orderbookv1.SideBuy, UserID: "1"},
		},
		{
			name: "negative price",
			data: gatewayv1.CreateOrderData{Market: "TATA_INR", Price: "-5", Quantity: "1", Side: orderbookv1.SideBuy, UserID: "1"},
		},
		{
			name: "zero quantity",
			data: gatewayv1.CreateOrderData{Market: "TATA_INR", Price: "1000", Quantity: "0", Side: orderbookv1.SideBuy, UserID: "1"},
		},
		{
			name: "invalid side",
			data: gatewayv1.CreateOrderData{Market: "TATA_INR", Price: "1000", Quantity: "1", Side: "hold", UserID: "1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fixture := setupTestFixture(t)
			defer fixture.teardown()

			var replies []gatewayv1.Reply
			fixture.mockMarket.EXPECT().
				SendToClient(gomock.Any(), "client1", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, reply gatewayv1.Reply) error {
					replies = append(replies, reply)
					return nil
				}).
				Times(1)

			engine := createTestEngine(fixture)
			engine.process(context.Background(), commandEnvelope(t, "client1", gatewayv1.TypeCreateOrder, tc.data))

			require.Len(t, replies, 1)
			assert.Equal(t, gatewayv1.TypeOrderCancelled, replies[0].Type)
			assert.Equal(t, float64(demoBalance), engine.ledger.Get("1", "INR").Available)
		})
	}
}

// Test 8: Cancelling a bid restitutes the locked quote value
func TestEngine_CancelOrder_RestitutesQuote(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()
	fixture.expectPublishes()

	engine := createTestEngine(fixture)
	engine.process(context.Background(), createOrderEnvelope(t, "client1", "TATA_INR", "1000", "1", orderbookv1.SideBuy, "1"))

	placed := fixture.replies[0].Payload.(gatewayv1.OrderPlacedPayload)
	engine.process(context.Background(), commandEnvelope(t, "client1", gatewayv1.TypeCancelOrder, gatewayv1.CancelOrderData{
		Market:  "TATA_INR",
		OrderID: placed.OrderID,
	}))

	require.Len(t, fixture.replies, 2)
	assert.Equal(t, gatewayv1.TypeOrderCancelled, fixture.replies[1].Type)
	cancelled, ok := fixture.replies[1].Payload.(gatewayv1.OrderCancelledPayload)
	require.True(t, ok)
	assert.Equal(t, placed.OrderID, cancelled.OrderID)
	assert.Equal(t, 0.0, cancelled.ExecutedQty)
	assert.Equal(t, 1.0, cancelled.RemainingQty)

	bal := engine.ledger.Get("1", "INR")
	assert.Equal(t, float64(demoBalance), bal.Available)
	assert.Equal(t, 0.0, bal.Locked)

	assert.Nil(t, engine.findOrderbook("TATA_INR").FindOrder(placed.OrderID))

	// The emptied bid level goes out with a zero quantity
	events := fixture.depthEvents()
	require.Len(t, events, 2)
	assert.Equal(t, []orderbookv1.PriceLevel{{"1000", "0"}}, events[1].B)
}

// Test 9: Cancelling an ask restitutes the locked base asset
func TestEngine_CancelOrder_RestitutesBaseAsset(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()
	fixture.expectPublishes()

	engine := createTestEngine(fixture)
	engine.process(context.Background(), createOrderEnvelope(t, "client1", "TATA_INR", "1000", "2", orderbookv1.SideSell, "1"))

	locked := engine.ledger.Get("1", "TATA")
	assert.Equal(t, float64(demoBalance)-2, locked.Available)
	assert.Equal(t, 2.0, locked.Locked)

	placed := fixture.replies[0].Payload.(gatewayv1.OrderPlacedPayload)
	engine.process(context.Background(), commandEnvelope(t, "client1", gatewayv1.TypeCancelOrder, gatewayv1.CancelOrderData{
		Market:  "TATA_INR",
		OrderID: placed.OrderID,
	}))

	bal := engine.ledger.Get("1", "TATA")
	assert.Equal(t, float64(demoBalance), bal.Available)
	assert.Equal(t, 0.0, bal.Locked)

	events := fixture.depthEvents()
	require.Len(t, events, 2)
	assert.Equal(t, []orderbookv1.PriceLevel{{"1000", "0"}}, events[1].A)
}

// Test 10: Cancelling an unknown order neither replies nor mutates
func TestEngine_CancelOrder_UnknownOrder(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	engine := createTestEngine(fixture)
	engine.process(context.Background(), commandEnvelope(t, "client1", gatewayv1.TypeCancelOrder, gatewayv1.CancelOrderData{
		Market:  "TATA_INR",
		OrderID: "missing",
	}))

	assert.Equal(t, float64(demoBalance), engine.ledger.Get("1", "INR").Available)
}

// Test 11: Depth replies aggregate the book; unknown markets read empty
func TestEngine_GetDepth(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()
	fixture.expectPublishes()

	engine := createTestEngine(fixture)
	engine.process(context.Background(), createOrderEnvelope(t, "client1", "TATA_INR", "990", "2", orderbookv1.SideBuy, "1"))
	engine.process(context.Background(), createOrderEnvelope(t, "client2", "TATA_INR", "1010", "1", orderbookv1.SideSell, "2"))

	engine.process(context.Background(), commandEnvelope(t, "client3", gatewayv1.TypeGetDepth, gatewayv1.GetDepthData{Market: "TATA_INR"}))

	require.Len(t, fixture.replies, 3)
	assert.Equal(t, gatewayv1.TypeDepth, fixture.replies[2].Type)
	depth, ok := fixture.replies[2].Payload.(orderbookv1.Depth)
	require.True(t, ok)
	assert.Equal(t, []orderbookv1.PriceLevel{{"990", "2"}}, depth.Bids)
	assert.Equal(t, []orderbookv1.PriceLevel{{"1010", "1"}}, depth.Asks)

	engine.process(context.Background(), commandEnvelope(t, "client3", gatewayv1.TypeGetDepth, gatewayv1.GetDepthData{Market: "DOGE_INR"}))

	require.Len(t, fixture.replies, 4)
	empty, ok := fixture.replies[3].Payload.(orderbookv1.Depth)
	require.True(t, ok)
	assert.Empty(t, empty.Bids)
	assert.Empty(t, empty.Asks)
}

// Test 12: Open orders replies carry only the requesting user's orders
func TestEngine_GetOpenOrders(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()
	fixture.expectPublishes()

	engine := createTestEngine(fixture)
	engine.process(context.Background(), createOrderEnvelope(t, "client1", "TATA_INR", "990", "1", orderbookv1.SideBuy, "1"))
	engine.process(context.Background(), createOrderEnvelope(t, "client1", "TATA_INR", "1010", "1", orderbookv1.SideSell, "1"))
	engine.process(context.Background(), createOrderEnvelope(t, "client2", "TATA_INR", "980", "1", orderbookv1.SideBuy, "2"))

	engine.process(context.Background(), commandEnvelope(t, "client1", gatewayv1.TypeGetOpenOrders, gatewayv1.GetOpenOrdersData{
		Market: "TATA_INR",
		UserID: "1",
	}))

	require.Len(t, fixture.replies, 4)
	assert.Equal(t, gatewayv1.TypeOpenOrders, fixture.replies[3].Type)
	orders, ok := fixture.replies[3].Payload.([]*orderbookv1.Order)
	require.True(t, ok)
	require.Len(t, orders, 2)
	assert.Equal(t, "1", orders[0].UserID)
	assert.Equal(t, orderbookv1.SideBuy, orders[0].Side)
	assert.Equal(t, orderbookv1.SideSell, orders[1].Side)
}

// Test 13: On-ramp credits the settlement currency and grows its total
func TestEngine_OnRamp(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	engine := createTestEngine(fixture)
	before := engine.ledger.TotalOf("INR")

	engine.process(context.Background(), commandEnvelope(t, "client1", gatewayv1.TypeOnRamp, gatewayv1.OnRampData{
		UserID: "9",
		Amount: "500",
	}))

	assert.Equal(t, 500.0, engine.ledger.Get("9", "INR").Available)
	assert.Equal(t, before+500, engine.ledger.TotalOf("INR"))

	// A malformed amount is ignored
	engine.process(context.Background(), commandEnvelope(t, "client1", gatewayv1.TypeOnRamp, gatewayv1.OnRampData{
		UserID: "9",
		Amount: "-5",
	}))
	assert.Equal(t, before+500, engine.ledger.TotalOf("INR"))
}

// Test 14: An unknown command type is dropped on the floor
func TestEngine_UnknownCommandType(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	engine := createTestEngine(fixture)
	engine.process(context.Background(), commandEnvelope(t, "client1", "REBALANCE", struct{}{}))
}

// Test 15: A snapshot taken mid-flight rebuilds an equivalent engine
func TestEngine_SnapshotRoundTrip(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()
	fixture.expectPublishes()

	engine := createTestEngine(fixture)
	engine.process(context.Background(), createOrderEnvelope(t, "client1", "TATA_INR", "1000", "1", orderbookv1.SideBuy, "1"))
	engine.process(context.Background(), createOrderEnvelope(t, "client2", "TATA_INR", "1000", "2", orderbookv1.SideSell, "2"))

	snap := engine.snapshotState()

	fixture.config.WithSnapshot = true
	fixture.mockSnapshots.EXPECT().
		Load(gomock.Any()).
		Return(snap, nil).
		Times(1)

	restored := createTestEngine(fixture)

	assert.Equal(t, engine.findOrderbook("TATA_INR").GetDepth(), restored.findOrderbook("TATA_INR").GetDepth())
	assert.Equal(t, engine.findOrderbook("TATA_INR").LastTradeID(), restored.findOrderbook("TATA_INR").LastTradeID())
	assert.Equal(t, engine.ledger.Get("1", "INR"), restored.ledger.Get("1", "INR"))
	assert.Equal(t, engine.ledger.Get("2", "TATA"), restored.ledger.Get("2", "TATA"))
	assert.Equal(t, engine.ledger.TotalOf("INR"), restored.ledger.TotalOf("INR"))
}

// Test 16: A fill that empties a level broadcasts it with quantity zero
func TestEngine_DepthZeroEntryOnConsumedLevel(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()
	fixture.expectPublishes()

	engine := createTestEngine(fixture)
	engine.process(context.Background(), createOrderEnvelope(t, "client1", "TATA_INR", "1000", "1", orderbookv1.SideSell, "1"))
	engine.process(context.Background(), createOrderEnvelope(t, "client2", "TATA_INR", "1000", "1", orderbookv1.SideBuy, "2"))

	events := fixture.depthEvents()
	require.Len(t, events, 2)
	assert.Equal(t, []orderbookv1.PriceLevel{{"1000", "0"}}, events[1].A)
	assert.Empty(t, events[1].B)
}

// Test 17: Start and Stop shut the processor and snapshot manager down cleanly
func TestEngine_StartStop(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	fixture.mockReader.EXPECT().
		ReadMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, *gatewayv1.Envelope, error) {
			<-ctx.Done()
			return kafka.Message{}, nil, ctx.Err()
		}).
		AnyTimes()
	fixture.mockReader.EXPECT().Close().Return(nil).Times(1)
	fixture.mockSnapshots.EXPECT().
		Store(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	engine := createTestEngine(fixture)
	require.NoError(t, engine.Start(context.Background()))

	// Let the snapshot ticker fire at least once
	time.Sleep(120 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, engine.Stop(shutdownCtx))
}
