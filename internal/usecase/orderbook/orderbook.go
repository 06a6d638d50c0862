package orderbook

import (
	orderbookv1 "github.com/muhammadchandra19/trade-engine/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/trade-engine/internal/domain/snapshot/v1"
)

// Orderbook holds the resting orders of one market. Both sides are kept in
// insertion order and matching scans them in that order, not best-price
// first: an incoming order can execute against a worse-priced but earlier
// counter-order while a better-priced one rests later in the slice. Fills
// are still price-acceptable; they are just not best-price-first. This is a
// deliberate property of the engine, not an accident of implementation.
//
// The book is not safe for concurrent use; the engine serializes all access.
type Orderbook struct {
	baseAsset    string
	quoteAsset   string
	bids         []*orderbookv1.Order
	asks         []*orderbookv1.Order
	lastTradeID  int64
	currentPrice float64
}

// NewOrderbook creates an empty book for baseAsset quoted in quoteAsset.
func NewOrderbook(baseAsset, quoteAsset string) *Orderbook {
	return &Orderbook{
		baseAsset:  baseAsset,
		quoteAsset: quoteAsset,
		bids:       []*orderbookv1.Order{},
		asks:       []*orderbookv1.Order{},
	}
}

// Restore rebuilds a book from a snapshot. The snapshot's orders become
// owned by the book.
func Restore(snap snapshotv1.BookSnapshot, quoteAsset string) *Orderbook {
	ob := NewOrderbook(snap.BaseAsset, quoteAsset)
	ob.bids = append(ob.bids, snap.Bids...)
	ob.asks = append(ob.asks, snap.Asks...)
	ob.lastTradeID = snap.LastTradeID
	ob.currentPrice = snap.CurrentPrice
	return ob
}

// Ticker returns the market identifier, baseAsset_quoteAsset.
func (ob *Orderbook) Ticker() string {
	return ob.baseAsset + "_" + ob.quoteAsset
}

// BaseAsset returns the book's base asset symbol.
func (ob *Orderbook) BaseAsset() string {
	return ob.baseAsset
}

// LastTradeID returns the next-unminted trade id counter value.
func (ob *Orderbook) LastTradeID() int64 {
	return ob.lastTradeID
}

// CurrentPrice returns the price of the most recent fill.
func (ob *Orderbook) CurrentPrice() float64 {
	return ob.currentPrice
}

// AddOrder matches the order against the opposite side and rests any
// unexecuted remainder on its own side, with Filled already advanced. It
// always returns the fills and total executed quantity, even when zero.
// The book owns the order from here on.
func (ob *Orderbook) AddOrder(order *orderbookv1.Order) orderbookv1.MatchResult {
	if order.Side == orderbookv1.SideBuy {
		result := ob.matchBid(order)
		if result.ExecutedQty < order.Quantity {
			ob.bids = append(ob.bids, order)
		}
		return result
	}

	result := ob.matchAsk(order)
	if result.ExecutedQty < order.Quantity {
		ob.asks = append(ob.asks, order)
	}
	return result
}

func (ob *Orderbook) matchBid(order *orderbookv1.Order) orderbookv1.MatchResult {
	result := orderbookv1.MatchResult{Fills: []orderbookv1.Fill{}}

	for _, ask := range ob.asks {
		if result.ExecutedQty >= order.Quantity {
			break
		}
		if ask.Price > order.Price {
			continue
		}
		result.Fills = append(result.Fills, ob.fill(order, ask, &result))
	}

	ob.asks = withoutFilled(ob.asks)
	return result
}

func (ob *Orderbook) matchAsk(order *orderbookv1.Order) orderbookv1.MatchResult {
	result := orderbookv1.MatchResult{Fills: []orderbookv1.Fill{}}

	for _, bid := range ob.bids {
		if result.ExecutedQty >= order.Quantity {
			break
		}
		if bid.Price < order.Price {
			continue
		}
		result.Fills = append(result.Fills, ob.fill(order, bid, &result))
	}

	ob.bids = withoutFilled(ob.bids)
	return result
}

// fill executes min(remaining, counter remaining) between the incoming
// order and one resting counter-order. The fill always prices at the
// resting (maker) order's price.
func (ob *Orderbook) fill(order, counter *orderbookv1.Order, result *orderbookv1.MatchResult) orderbookv1.Fill {
	fillQty := min(order.Quantity-result.ExecutedQty, counter.Remaining())
	result.ExecutedQty += fillQty
	counter.Filled += fillQty
	order.Filled += fillQty
	ob.currentPrice = counter.Price

	return orderbookv1.Fill{
		Price:        orderbookv1.FormatAmount(counter.Price),
		Qty:          fillQty,
		TradeID:      ob.nextTradeID(),
		OtherUserID:  counter.UserID,
		MakerOrderID: counter.OrderID,
	}
}

// nextTradeID mints a trade id. Ids are post-incremented: the first trade of
// a fresh book gets id 0.
func (ob *Orderbook) nextTradeID() int64 {
	id := ob.lastTradeID
	ob.lastTradeID++
	return id
}

func withoutFilled(orders []*orderbookv1.Order) []*orderbookv1.Order {
	remaining := make([]*orderbookv1.Order, 0, len(orders))
	for _, order := range orders {
		if !order.IsFilled() {
			remaining = append(remaining, order)
		}
	}
	return remaining
}

// GetDepth aggregates remaining quantity per distinct price on each side.
// Levels appear in first-encounter order, not sorted by price.
func (ob *Orderbook) GetDepth() orderbookv1.Depth {
	return orderbookv1.Depth{
		Bids: aggregate(ob.bids),
		Asks: aggregate(ob.asks),
	}
}

func aggregate(orders []*orderbookv1.Order) []orderbookv1.PriceLevel {
	keys := make([]string, 0, len(orders))
	totals := make(map[string]float64, len(orders))

	for _, order := range orders {
		price := orderbookv1.FormatAmount(order.Price)
		if _, seen := totals[price]; !seen {
			keys = append(keys, price)
		}
		totals[price] += order.Remaining()
	}

	levels := make([]orderbookv1.PriceLevel, 0, len(keys))
	for _, price := range keys {
		levels = append(levels, orderbookv1.PriceLevel{price, orderbookv1.FormatAmount(totals[price])})
	}
	return levels
}

// GetOpenOrders returns the user's resting orders, bids first, in storage
// order.
func (ob *Orderbook) GetOpenOrders(userID string) []*orderbookv1.Order {
	open := []*orderbookv1.Order{}
	for _, bid := range ob.bids {
		if bid.UserID == userID {
			open = append(open, bid)
		}
	}
	for _, ask := range ob.asks {
		if ask.UserID == userID {
			open = append(open, ask)
		}
	}
	return open
}

// FindOrder locates a resting order by id on either side, asks first.
// Returns nil when the order is not resting ("already gone").
func (ob *Orderbook) FindOrder(orderID string) *orderbookv1.Order {
	for _, ask := range ob.asks {
		if ask.OrderID == orderID {
			return ask
		}
	}
	for _, bid := range ob.bids {
		if bid.OrderID == orderID {
			return bid
		}
	}
	return nil
}

// CancelOrder removes the order from its side and returns its price. A
// false result means the order was not found; callers must treat that as
// "already gone", not as an error.
func (ob *Orderbook) CancelOrder(order *orderbookv1.Order) (float64, bool) {
	if order.Side == orderbookv1.SideBuy {
		return ob.cancelBid(order)
	}
	return ob.cancelAsk(order)
}

func (ob *Orderbook) cancelBid(order *orderbookv1.Order) (float64, bool) {
	for i, bid := range ob.bids {
		if bid.OrderID == order.OrderID {
			price := bid.Price
			ob.bids = append(ob.bids[:i], ob.bids[i+1:]...)
			return price, true
		}
	}
	return 0, false
}

func (ob *Orderbook) cancelAsk(order *orderbookv1.Order) (float64, bool) {
	for i, ask := range ob.asks {
		if ask.OrderID == order.OrderID {
			price := ask.Price
			ob.asks = append(ob.asks[:i], ob.asks[i+1:]...)
			return price, true
		}
	}
	return 0, false
}

// Snapshot returns a deep copy of the book's state, safe to serialize while
// the engine keeps processing commands.
func (ob *Orderbook) Snapshot() snapshotv1.BookSnapshot {
	return snapshotv1.BookSnapshot{
		BaseAsset:    ob.baseAsset,
		Bids:         copyOrders(ob.bids),
		Asks:         copyOrders(ob.asks),
		LastTradeID:  ob.lastTradeID,
		CurrentPrice: ob.currentPrice,
	}
}

func copyOrders(orders []*orderbookv1.Order) []*orderbookv1.Order {
	copied := make([]*orderbookv1.Order, len(orders))
	for i, order := range orders {
		clone := *order
		copied[i] = &clone
	}
	return copied
}
