package orderbookv1

import "strconv"

// Fill represents one execution against a resting order. It is immutable
// once minted; the price is the resting (maker) order's price.
type Fill struct {
	Price        string  `json:"price"`
	Qty          float64 `json:"qty"`
	TradeID      int64   `json:"tradeId"`
	OtherUserID  string  `json:"otherUserId"`
	MakerOrderID string  `json:"makerOrderId"`
}

// PriceValue parses the string-encoded fill price. Fill prices are produced
// by the book from float64 maker prices, so the parse cannot fail.
func (f Fill) PriceValue() float64 {
	p, _ := strconv.ParseFloat(f.Price, 64)
	return p
}

// MatchResult is the outcome of inserting one order into the book.
type MatchResult struct {
	Fills       []Fill  `json:"fills"`
	ExecutedQty float64 `json:"executedQty"`
}

// PriceLevel is a [price, quantity] pair, both string-encoded.
type PriceLevel [2]string

// Depth is the aggregated open quantity per price level, per side. Levels
// appear in the order their price was first encountered while scanning the
// side's collection.
type Depth struct {
	Bids []PriceLevel `json:"bids"`
	Asks []PriceLevel `json:"asks"`
}
