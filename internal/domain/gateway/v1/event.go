package gatewayv1

import (
	orderbookv1 "github.com/muhammadchandra19/trade-engine/internal/domain/orderbook/v1"
)

// Reply types published to the requester's channel.
const (
	TypeOrderPlaced    = "ORDER_PLACED"
	TypeOrderCancelled = "ORDER_CANCELLED"
	TypeOpenOrders     = "OPEN_ORDERS"
	TypeDepth          = "DEPTH"
)

// Record types appended to the durable store stream.
const (
	TypeOrderUpdate = "ORDER_UPDATE"
	TypeTradeAdded  = "TRADE_ADDED"
)

// Reply is a point-to-point response to the client that issued a command.
type Reply struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// OrderPlacedPayload acknowledges a create-order command.
type OrderPlacedPayload struct {
	OrderID     string             `json:"orderId"`
	ExecutedQty float64            `json:"executedQty"`
	Fills       []orderbookv1.Fill `json:"fills"`
}

// OrderCancelledPayload acknowledges a cancellation. It doubles as the
// rejection reply for a failed create order, with every field zeroed.
type OrderCancelledPayload struct {
	OrderID      string  `json:"orderId"`
	ExecutedQty  float64 `json:"executedQty"`
	RemainingQty float64 `json:"remainingQty"`
}

// StoreRecord is one durable write-behind record for the storage pipeline.
type StoreRecord struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// OrderUpdateData describes an order's execution progress. Market, price,
// quantity and side are set only on the taker order's record.
type OrderUpdateData struct {
	OrderID     string           `json:"orderId"`
	ExecutedQty float64          `json:"executedQty"`
	Market      string           `json:"market,omitempty"`
	Price       string           `json:"price,omitempty"`
	Quantity    string           `json:"quantity,omitempty"`
	Side        orderbookv1.Side `json:"side,omitempty"`
}

// TradeAddedData describes one executed trade for the storage pipeline.
type TradeAddedData struct {
	Market        string `json:"market"`
	ID            string `json:"id"`
	IsBuyerMaker  bool   `json:"isBuyerMaker"`
	Price         string `json:"price"`
	Quantity      string `json:"quantity"`
	QuoteQuantity string `json:"quoteQuantity"`
	Timestamp     int64  `json:"timestamp"`
}

// StreamEvent is a broadcast message on a market channel, shaped
// {stream, data} for websocket fan-out.
type StreamEvent struct {
	Stream string `json:"stream"`
	Data   any    `json:"data"`
}

// TradeEventData is the data of a trade@<market> broadcast. The single
// letter keys follow the public websocket contract.
type TradeEventData struct {
	E string `json:"e"`
	T int64  `json:"t"`
	M bool   `json:"m"`
	P string `json:"p"`
	Q string `json:"q"`
	S string `json:"s"`
}

// DepthEventData is the data of a depth@<market> broadcast. A and B carry
// only the price levels touched since the last event; a "0" quantity clears
// the level on the subscriber side.
type DepthEventData struct {
	E string                   `json:"e"`
	A []orderbookv1.PriceLevel `json:"a"`
	B []orderbookv1.PriceLevel `json:"b"`
}

// TradeChannel returns the broadcast channel for trades on a market.
func TradeChannel(market string) string {
	return "trade@" + market
}

// DepthChannel returns the broadcast channel for depth deltas on a market.
func DepthChannel(market string) string {
	return "depth@" + market
}
