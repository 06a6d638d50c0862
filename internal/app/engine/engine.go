package engine

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	gatewayv1 "github.com/muhammadchandra19/trade-engine/internal/domain/gateway/v1"
	snapshotv1 "github.com/muhammadchandra19/trade-engine/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/trade-engine/internal/usecase/ledger"
	"github.com/muhammadchandra19/trade-engine/internal/usecase/orderbook"
	"github.com/muhammadchandra19/trade-engine/pkg/config"
	"github.com/muhammadchandra19/trade-engine/pkg/errors"
	"github.com/muhammadchandra19/trade-engine/pkg/logger"
	"github.com/muhammadchandra19/trade-engine/pkg/util"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
)

// Seeded demo accounts for a fresh start without a snapshot.
var demoUserIDs = []string{"1", "2", "5"}

const demoBalance = 10_000_000

// Engine is the command router. It owns the orderbooks and the balance
// ledger; every mutation flows through its single command-processor
// goroutine, so a command's lock -> match -> settle -> notify sequence is
// atomic with respect to all other commands. The snapshot manager is the
// only other reader and takes the read lock.
type Engine struct {
	ledger     *ledger.Ledger
	orderbooks []*orderbook.Orderbook

	reader    gatewayv1.CommandReader
	market    gatewayv1.MarketPublisher
	store     gatewayv1.StorePublisher
	snapshots snapshotv1.Store
	logger    *logger.Logger
	config    *config.Config

	// mu guards ledger and orderbooks. The command processor write-locks,
	// the snapshot manager read-locks.
	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	snapshotInterval time.Duration
	entropy          *ulid.MonotonicEntropy
}

// NewEngine creates a new Engine with the provided dependencies, restoring
// state from the snapshot store when the configuration enables it.
func NewEngine(
	reader gatewayv1.CommandReader,
	market gatewayv1.MarketPublisher,
	store gatewayv1.StorePublisher,
	snapshots snapshotv1.Store,
	log *logger.Logger,
	cfg *config.Config,
) *Engine {
	return NewEngineWithOptions(reader, market, store, snapshots, log, cfg, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options.
func NewEngineWithOptions(
	reader gatewayv1.CommandReader,
	market gatewayv1.MarketPublisher,
	store gatewayv1.StorePublisher,
	snapshots snapshotv1.Store,
	log *logger.Logger,
	cfg *config.Config,
	options *Options,
) *Engine {
	e := &Engine{
		reader:    reader,
		market:    market,
		store:     store,
		snapshots: snapshots,
		logger:    log,
		config:    cfg,

		snapshotInterval: options.SnapshotInterval,
		entropy:          ulid.Monotonic(rand.Reader, 0),
	}

	e.loadState(context.Background())

	return e
}

// loadState restores orderbooks and balances from the last snapshot, or
// seeds a fresh ledger and one book per configured market. A snapshot load
// failure is not fatal; the engine starts fresh.
func (e *Engine) loadState(ctx context.Context) {
	if e.config.WithSnapshot {
		snap, err := e.snapshots.Load(ctx)
		if err != nil {
			e.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "load_snapshot",
			})
		} else if snap != nil {
			e.restoreState(snap)
			e.logger.Info("State restored from snapshot", logger.Field{
				Key:   "orderbooks",
				Value: len(e.orderbooks),
			})
			return
		}
	}

	e.ledger = ledger.New(e.config.QuoteCurrency)
	for _, baseAsset := range e.config.Markets {
		e.orderbooks = append(e.orderbooks, orderbook.NewOrderbook(baseAsset, e.config.QuoteCurrency))
	}
	e.seedBalances()

	e.logger.Info("Starting with fresh state", logger.Field{
		Key:   "markets",
		Value: e.config.Markets,
	})
}

func (e *Engine) restoreState(snap *snapshotv1.Snapshot) {
	e.orderbooks = make([]*orderbook.Orderbook, 0, len(snap.Orderbooks))
	for _, bookSnap := range snap.Orderbooks {
		e.orderbooks = append(e.orderbooks, orderbook.Restore(bookSnap, e.config.QuoteCurrency))
	}
	e.ledger = ledger.Restore(snap.Balances, e.config.QuoteCurrency)
}

func (e *Engine) seedBalances() {
	for _, userID := range demoUserIDs {
		e.ledger.Deposit(userID, e.config.QuoteCurrency, demoBalance)
		for _, baseAsset := range e.config.Markets {
			e.ledger.Deposit(userID, baseAsset, demoBalance)
		}
	}
}

// Start spawns the command processor and the snapshot manager.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(2)
	go e.runCommandProcessor()
	go e.runSnapshotManager()

	e.logger.Info("Engine started", logger.Field{
		Key:   "markets",
		Value: e.config.Markets,
	})

	return nil
}

// Stop gracefully shuts down the engine.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// runCommandProcessor is the single worker that owns all state mutation.
// Commands run to completion one at a time; there is no cancellation for a
// command already being processed.
func (e *Engine) runCommandProcessor() {
	defer e.wg.Done()

	e.logger.Info("Starting command processor")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Command processor shutting down")
			e.reader.Close()
			return
		default:
			msg, envelope, err := e.reader.ReadMessage(e.ctx)
			if err != nil {
				if e.ctx.Err() != nil {
					continue
				}
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "read_command",
				})
				if errors.ErrorCodeEquals(err, errors.ValidationError) {
					// malformed envelope: ack and move past it
					e.commit(msg)
					continue
				}
				time.Sleep(100 * time.Millisecond)
				continue
			}

			e.process(e.ctx, envelope)
			e.commit(msg)
		}
	}
}

func (e *Engine) commit(msg kafka.Message) {
	if err := e.reader.CommitMessages(e.ctx, msg); err != nil {
		e.logger.ErrorContext(e.ctx, err, logger.Field{
			Key:   "action",
			Value: "commit_command",
		})
	}
}

// runSnapshotManager periodically persists a consistent view of the books
// and the ledger. Write failures are logged and never touch in-memory
// state.
func (e *Engine) runSnapshotManager() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.snapshotInterval)
	defer ticker.Stop()

	e.logger.Info("Starting snapshot manager", logger.Field{
		Key:   "interval",
		Value: e.snapshotInterval,
	})

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Snapshot manager shutting down")
			return
		case <-ticker.C:
			snap := e.snapshotState()
			if err := e.snapshots.Store(e.ctx, snap); err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "store_snapshot",
				})
			}
		}
	}
}

// snapshotState deep-copies engine state under the read lock so
// serialization can happen outside it.
func (e *Engine) snapshotState() *snapshotv1.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap := &snapshotv1.Snapshot{
		Orderbooks: make([]snapshotv1.BookSnapshot, 0, len(e.orderbooks)),
		Balances:   e.ledger.Snapshot(),
	}
	for _, book := range e.orderbooks {
		snap.Orderbooks = append(snap.Orderbooks, book.Snapshot())
	}
	return snap
}

func (e *Engine) findOrderbook(market string) *orderbook.Orderbook {
	for _, book := range e.orderbooks {
		if book.Ticker() == market {
			return book
		}
	}
	return nil
}

// nextOrderID mints a process-lifetime-unique, monotonically ordered order
// id. Only the command processor mints ids, so the entropy source needs no
// locking.
func (e *Engine) nextOrderID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), e.entropy).String()
}

// process dispatches one command under the write lock.
func (e *Engine) process(ctx context.Context, envelope *gatewayv1.Envelope) {
	ctx = util.WithRequestID(ctx, "")
	ctx = util.WithClientID(ctx, envelope.ClientID)

	e.mu.Lock()
	defer e.mu.Unlock()

	switch envelope.Message.Type {
	case gatewayv1.TypeCreateOrder:
		e.handleCreateOrder(ctx, envelope)
	case gatewayv1.TypeCancelOrder:
		e.handleCancelOrder(ctx, envelope)
	case gatewayv1.TypeGetOpenOrders:
		e.handleGetOpenOrders(ctx, envelope)
	case gatewayv1.TypeOnRamp:
		e.handleOnRamp(ctx, envelope)
	case gatewayv1.TypeGetDepth:
		e.handleGetDepth(ctx, envelope)
	default:
		e.logger.WarnContext(ctx, "Unknown command type", logger.Field{
			Key:   "type",
			Value: envelope.Message.Type,
		})
	}
}
