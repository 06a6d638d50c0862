package orderbookv1

import "strconv"

// Side represents which side of the book an order sits on.
type Side string

const (
	// SideBuy represents a buy (bid) order.
	SideBuy Side = "buy"
	// SideSell represents a sell (ask) order.
	SideSell Side = "sell"
)

// Valid checks that the side is one of the two known values.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Order represents a single limit order, incoming or resting.
// While resting, Filled is advanced in place by the book during matching.
type Order struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	OrderID  string  `json:"orderId"`
	Filled   float64 `json:"filled"`
	Side     Side    `json:"side"`
	UserID   string  `json:"userId"`
}

// Remaining returns the unfilled quantity.
func (o *Order) Remaining() float64 {
	return o.Quantity - o.Filled
}

// IsFilled checks if the order has no unfilled quantity left.
func (o *Order) IsFilled() bool {
	return o.Filled >= o.Quantity
}

// FormatAmount renders a price or quantity the way it travels on the wire.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
