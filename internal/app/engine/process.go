package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	gatewayv1 "github.com/muhammadchandra19/trade-engine/internal/domain/gateway/v1"
	orderbookv1 "github.com/muhammadchandra19/trade-engine/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/trade-engine/internal/usecase/orderbook"
	"github.com/muhammadchandra19/trade-engine/pkg/errors"
	"github.com/muhammadchandra19/trade-engine/pkg/logger"
	"github.com/muhammadchandra19/trade-engine/pkg/util"
)

// handleCreateOrder runs the full order lifecycle as one step: validate,
// lock funds, match, settle each fill, publish, acknowledge. Any failure
// before matching rejects the order with a zeroed ORDER_CANCELLED reply and
// leaves the ledger untouched.
func (e *Engine) handleCreateOrder(ctx context.Context, envelope *gatewayv1.Envelope) {
	var data gatewayv1.CreateOrderData
	if err := json.Unmarshal(envelope.Message.Data, &data); err != nil {
		e.logger.ErrorContext(ctx, errors.NewTracer("decoding CREATE_ORDER data").Wrap(err))
		e.rejectOrder(ctx)
		return
	}

	order, result, err := e.createOrder(ctx, data)
	if err != nil {
		e.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "create_order",
		})
		e.rejectOrder(ctx)
		return
	}

	e.reply(ctx, gatewayv1.Reply{
		Type: gatewayv1.TypeOrderPlaced,
		Payload: gatewayv1.OrderPlacedPayload{
			OrderID:     order.OrderID,
			ExecutedQty: result.ExecutedQty,
			Fills:       result.Fills,
		},
	})
}

func (e *Engine) createOrder(ctx context.Context, data gatewayv1.CreateOrderData) (*orderbookv1.Order, orderbookv1.MatchResult, error) {
	book := e.findOrderbook(data.Market)
	if book == nil {
		return nil, orderbookv1.MatchResult{}, errors.NewErrorDetails(
			fmt.Sprintf("no orderbook for market %s", data.Market),
			string(errors.OrderbookNotFound),
			"market",
		)
	}

	price, err := strconv.ParseFloat(data.Price, 64)
	if err != nil || price <= 0 {
		return nil, orderbookv1.MatchResult{}, errors.NewErrorDetails(
			fmt.Sprintf("invalid price %q", data.Price),
			string(errors.ValidationError),
			"price",
		)
	}

	quantity, err := strconv.ParseFloat(data.Quantity, 64)
	if err != nil || quantity <= 0 {
		return nil, orderbookv1.MatchResult{}, errors.NewErrorDetails(
			fmt.Sprintf("invalid quantity %q", data.Quantity),
			string(errors.ValidationError),
			"quantity",
		)
	}

	if !data.Side.Valid() {
		return nil, orderbookv1.MatchResult{}, errors.NewErrorDetails(
			fmt.Sprintf("invalid side %q", data.Side),
			string(errors.ValidationError),
			"side",
		)
	}

	// The full order value locks up front; fills settle out of locked, and
	// cancellation restitutes whatever stays locked.
	if data.Side == orderbookv1.SideBuy {
		err = e.ledger.LockFunds(data.UserID, e.ledger.QuoteCurrency(), price*quantity)
	} else {
		err = e.ledger.LockFunds(data.UserID, book.BaseAsset(), quantity)
	}
	if err != nil {
		return nil, orderbookv1.MatchResult{}, err
	}

	order := &orderbookv1.Order{
		Price:    price,
		Quantity: quantity,
		OrderID:  e.nextOrderID(),
		Side:     data.Side,
		UserID:   data.UserID,
	}

	result := book.AddOrder(order)
	for _, fill := range result.Fills {
		e.ledger.ApplyFill(order.UserID, order.Side, book.BaseAsset(), fill)
	}

	e.pushOrderUpdates(ctx, book, order, result)
	e.pushTrades(ctx, book, order, result.Fills)
	e.publishTrades(ctx, book, order, result.Fills)
	e.publishDepthUpdates(ctx, book, order, result.Fills)

	return order, result, nil
}

// rejectOrder tells the client its order did not enter the book. The
// rejection reuses the cancellation shape with every field zeroed.
func (e *Engine) rejectOrder(ctx context.Context) {
	e.reply(ctx, gatewayv1.Reply{
		Type:    gatewayv1.TypeOrderCancelled,
		Payload: gatewayv1.OrderCancelledPayload{},
	})
}

// handleCancelOrder removes a resting order, restitutes its locked funds
// and acknowledges with the order's actual execution progress. Failure
// paths log and send no reply.
func (e *Engine) handleCancelOrder(ctx context.Context, envelope *gatewayv1.Envelope) {
	var data gatewayv1.CancelOrderData
	if err := json.Unmarshal(envelope.Message.Data, &data); err != nil {
		e.logger.ErrorContext(ctx, errors.NewTracer("decoding CANCEL_ORDER data").Wrap(err))
		return
	}

	book := e.findOrderbook(data.Market)
	if book == nil {
		e.logger.ErrorContext(ctx, errors.NewErrorDetails(
			fmt.Sprintf("no orderbook for market %s", data.Market),
			string(errors.OrderbookNotFound),
			"market",
		))
		return
	}

	order := book.FindOrder(data.OrderID)
	if order == nil {
		e.logger.ErrorContext(ctx, errors.NewErrorDetails(
			fmt.Sprintf("order %s is not resting on %s", data.OrderID, data.Market),
			string(errors.OrderNotFound),
			"orderId",
		))
		return
	}

	// Restitution matches what LockFunds held back: the unfilled value in
	// the quote currency for a bid, the unfilled quantity of the base asset
	// for an ask.
	if order.Side == orderbookv1.SideBuy {
		e.ledger.UnlockFunds(order.UserID, e.ledger.QuoteCurrency(), order.Remaining()*order.Price)
	} else {
		e.ledger.UnlockFunds(order.UserID, book.BaseAsset(), order.Remaining())
	}

	if price, ok := book.CancelOrder(order); ok {
		e.publishDepthAt(ctx, book, order.Side, price)
	}

	e.reply(ctx, gatewayv1.Reply{
		Type: gatewayv1.TypeOrderCancelled,
		Payload: gatewayv1.OrderCancelledPayload{
			OrderID:      order.OrderID,
			ExecutedQty:  order.Filled,
			RemainingQty: order.Remaining(),
		},
	})
}

func (e *Engine) handleGetOpenOrders(ctx context.Context, envelope *gatewayv1.Envelope) {
	var data gatewayv1.GetOpenOrdersData
	if err := json.Unmarshal(envelope.Message.Data, &data); err != nil {
		e.logger.ErrorContext(ctx, errors.NewTracer("decoding GET_OPEN_ORDERS data").Wrap(err))
		return
	}

	book := e.findOrderbook(data.Market)
	if book == nil {
		e.logger.ErrorContext(ctx, errors.NewErrorDetails(
			fmt.Sprintf("no orderbook for market %s", data.Market),
			string(errors.OrderbookNotFound),
			"market",
		))
		return
	}

	e.reply(ctx, gatewayv1.Reply{
		Type:    gatewayv1.TypeOpenOrders,
		Payload: book.GetOpenOrders(data.UserID),
	})
}

// handleOnRamp credits the settlement currency. It is the only command
// that changes an asset's system-wide total. No reply is sent.
func (e *Engine) handleOnRamp(ctx context.Context, envelope *gatewayv1.Envelope) {
	var data gatewayv1.OnRampData
	if err := json.Unmarshal(envelope.Message.Data, &data); err != nil {
		e.logger.ErrorContext(ctx, errors.NewTracer("decoding ON_RAMP data").Wrap(err))
		return
	}

	amount, err := strconv.ParseFloat(data.Amount, 64)
	if err != nil || amount <= 0 {
		e.logger.ErrorContext(ctx, errors.NewErrorDetails(
			fmt.Sprintf("invalid on-ramp amount %q", data.Amount),
			string(errors.ValidationError),
			"amount",
		))
		return
	}

	e.ledger.OnRamp(data.UserID, amount)
	e.logger.InfoContext(ctx, "On-ramp credited",
		logger.Field{Key: "userId", Value: data.UserID},
		logger.Field{Key: "amount", Value: amount},
	)
}

// handleGetDepth replies with the full aggregated depth. An unknown market
// reads as an empty book rather than an error.
func (e *Engine) handleGetDepth(ctx context.Context, envelope *gatewayv1.Envelope) {
	var data gatewayv1.GetDepthData
	if err := json.Unmarshal(envelope.Message.Data, &data); err != nil {
		e.logger.ErrorContext(ctx, errors.NewTracer("decoding GET_DEPTH data").Wrap(err))
		return
	}

	depth := orderbookv1.Depth{Bids: []orderbookv1.PriceLevel{}, Asks: []orderbookv1.PriceLevel{}}
	if book := e.findOrderbook(data.Market); book != nil {
		depth = book.GetDepth()
	}

	e.reply(ctx, gatewayv1.Reply{
		Type:    gatewayv1.TypeDepth,
		Payload: depth,
	})
}

// pushOrderUpdates appends one record for the taker order and one per
// touched maker order. Only the taker record carries the order's static
// fields.
func (e *Engine) pushOrderUpdates(ctx context.Context, book *orderbook.Orderbook, order *orderbookv1.Order, result orderbookv1.MatchResult) {
	e.pushRecord(ctx, gatewayv1.StoreRecord{
		Type: gatewayv1.TypeOrderUpdate,
		Data: gatewayv1.OrderUpdateData{
			OrderID:     order.OrderID,
			ExecutedQty: result.ExecutedQty,
			Market:      book.Ticker(),
			Price:       orderbookv1.FormatAmount(order.Price),
			Quantity:    orderbookv1.FormatAmount(order.Quantity),
			Side:        order.Side,
		},
	})

	for _, fill := range result.Fills {
		e.pushRecord(ctx, gatewayv1.StoreRecord{
			Type: gatewayv1.TypeOrderUpdate,
			Data: gatewayv1.OrderUpdateData{
				OrderID:     fill.MakerOrderID,
				ExecutedQty: fill.Qty,
			},
		})
	}
}

func (e *Engine) pushTrades(ctx context.Context, book *orderbook.Orderbook, order *orderbookv1.Order, fills []orderbookv1.Fill) {
	for _, fill := range fills {
		e.pushRecord(ctx, gatewayv1.StoreRecord{
			Type: gatewayv1.TypeTradeAdded,
			Data: gatewayv1.TradeAddedData{
				Market:        book.Ticker(),
				ID:            strconv.FormatInt(fill.TradeID, 10),
				IsBuyerMaker:  fill.OtherUserID == order.UserID,
				Price:         fill.Price,
				Quantity:      orderbookv1.FormatAmount(fill.Qty),
				QuoteQuantity: orderbookv1.FormatAmount(fill.Qty * fill.PriceValue()),
				Timestamp:     time.Now().UnixMilli(),
			},
		})
	}
}

func (e *Engine) publishTrades(ctx context.Context, book *orderbook.Orderbook, order *orderbookv1.Order, fills []orderbookv1.Fill) {
	for _, fill := range fills {
		e.publishStream(ctx, gatewayv1.TradeChannel(book.Ticker()), gatewayv1.StreamEvent{
			Stream: gatewayv1.TradeChannel(book.Ticker()),
			Data: gatewayv1.TradeEventData{
				E: "trade",
				T: fill.TradeID,
				M: fill.OtherUserID == order.UserID,
				P: fill.Price,
				Q: orderbookv1.FormatAmount(fill.Qty),
				S: book.Ticker(),
			},
		})
	}
}

// publishDepthUpdates broadcasts only the levels the order touched: every
// distinct fill price on the opposite side, with an explicit "0" quantity
// when the fill emptied the level, plus the order's own price level when a
// remainder rested.
func (e *Engine) publishDepthUpdates(ctx context.Context, book *orderbook.Orderbook, order *orderbookv1.Order, fills []orderbookv1.Fill) {
	depth := book.GetDepth()
	ownPrice := orderbookv1.FormatAmount(order.Price)

	var asks, bids []orderbookv1.PriceLevel
	if order.Side == orderbookv1.SideBuy {
		asks = touchedLevels(depth.Asks, fills)
		if level, ok := findLevel(depth.Bids, ownPrice); ok {
			bids = append(bids, level)
		}
	} else {
		bids = touchedLevels(depth.Bids, fills)
		if level, ok := findLevel(depth.Asks, ownPrice); ok {
			asks = append(asks, level)
		}
	}

	if len(asks) == 0 && len(bids) == 0 {
		return
	}

	e.publishDepthEvent(ctx, book, asks, bids)
}

// publishDepthAt broadcasts the post-cancellation state of one price level
// on one side. A vanished level goes out with quantity "0".
func (e *Engine) publishDepthAt(ctx context.Context, book *orderbook.Orderbook, side orderbookv1.Side, price float64) {
	depth := book.GetDepth()
	formatted := orderbookv1.FormatAmount(price)

	levels := depth.Bids
	if side == orderbookv1.SideSell {
		levels = depth.Asks
	}
	level, ok := findLevel(levels, formatted)
	if !ok {
		level = orderbookv1.PriceLevel{formatted, "0"}
	}

	if side == orderbookv1.SideBuy {
		e.publishDepthEvent(ctx, book, nil, []orderbookv1.PriceLevel{level})
		return
	}
	e.publishDepthEvent(ctx, book, []orderbookv1.PriceLevel{level}, nil)
}

func (e *Engine) publishDepthEvent(ctx context.Context, book *orderbook.Orderbook, asks, bids []orderbookv1.PriceLevel) {
	e.publishStream(ctx, gatewayv1.DepthChannel(book.Ticker()), gatewayv1.StreamEvent{
		Stream: gatewayv1.DepthChannel(book.Ticker()),
		Data: gatewayv1.DepthEventData{
			E: "depth",
			A: asks,
			B: bids,
		},
	})
}

// touchedLevels maps each distinct fill price to its current level, or to a
// zero-quantity level when matching consumed it entirely.
func touchedLevels(levels []orderbookv1.PriceLevel, fills []orderbookv1.Fill) []orderbookv1.PriceLevel {
	seen := make(map[string]bool, len(fills))
	touched := make([]orderbookv1.PriceLevel, 0, len(fills))

	for _, fill := range fills {
		if seen[fill.Price] {
			continue
		}
		seen[fill.Price] = true

		level, ok := findLevel(levels, fill.Price)
		if !ok {
			level = orderbookv1.PriceLevel{fill.Price, "0"}
		}
		touched = append(touched, level)
	}
	return touched
}

func findLevel(levels []orderbookv1.PriceLevel, price string) (orderbookv1.PriceLevel, bool) {
	for _, level := range levels {
		if level[0] == price {
			return level, true
		}
	}
	return orderbookv1.PriceLevel{}, false
}

// reply sends a point-to-point response to the command's client. Delivery
// failures are logged, never propagated into command processing.
func (e *Engine) reply(ctx context.Context, reply gatewayv1.Reply) {
	clientID := util.GetClientID(ctx)
	if clientID == "" {
		return
	}
	if err := e.market.SendToClient(ctx, clientID, reply); err != nil {
		e.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "send_reply",
		})
	}
}

func (e *Engine) pushRecord(ctx context.Context, record gatewayv1.StoreRecord) {
	if err := e.store.PushRecord(ctx, record); err != nil {
		e.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "push_record",
		})
	}
}

func (e *Engine) publishStream(ctx context.Context, channel string, event gatewayv1.StreamEvent) {
	if err := e.market.PublishStream(ctx, channel, event); err != nil {
		e.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "publish_stream",
		})
	}
}
