package gatewayv1

import (
	"encoding/json"

	orderbookv1 "github.com/muhammadchandra19/trade-engine/internal/domain/orderbook/v1"
)

// Command types accepted from the API queue.
const (
	TypeCreateOrder   = "CREATE_ORDER"
	TypeCancelOrder   = "CANCEL_ORDER"
	TypeGetOpenOrders = "GET_OPEN_ORDERS"
	TypeOnRamp        = "ON_RAMP"
	TypeGetDepth      = "GET_DEPTH"
)

// Envelope is one inbound command together with its reply routing key.
type Envelope struct {
	ClientID string  `json:"clientId"`
	Message  Message `json:"message"`
}

// Message is the typed command payload. Data is decoded per Type by the
// engine's dispatcher.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// CreateOrderData is the payload of a CREATE_ORDER command. Numeric fields
// arrive string-encoded and are parsed by the engine; parse failures are
// validation errors, not crashes.
type CreateOrderData struct {
	Market   string           `json:"market"`
	Price    string           `json:"price"`
	Quantity string           `json:"quantity"`
	Side     orderbookv1.Side `json:"side"`
	UserID   string           `json:"userId"`
}

// CancelOrderData is the payload of a CANCEL_ORDER command.
type CancelOrderData struct {
	Market  string `json:"market"`
	OrderID string `json:"orderId"`
}

// GetOpenOrdersData is the payload of a GET_OPEN_ORDERS command.
type GetOpenOrdersData struct {
	Market string `json:"market"`
	UserID string `json:"userId"`
}

// OnRampData is the payload of an ON_RAMP command. Amount credits the
// system-wide settlement currency.
type OnRampData struct {
	UserID string `json:"userId"`
	Amount string `json:"amount"`
}

// GetDepthData is the payload of a GET_DEPTH command.
type GetDepthData struct {
	Market string `json:"market"`
}
