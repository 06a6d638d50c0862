package snapshot

import (
	"context"
	"encoding/json"

	snapshotv1 "github.com/muhammadchandra19/trade-engine/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/trade-engine/pkg/errors"
	"github.com/muhammadchandra19/trade-engine/pkg/logger"
	"github.com/muhammadchandra19/trade-engine/pkg/redis"
)

// Store persists engine snapshots as JSON under a single Redis key.
type Store struct {
	key         string
	logger      *logger.Logger
	redisclient redis.Client
}

// NewSnapshotStore creates a snapshot store writing to the given key.
func NewSnapshotStore(redisclient redis.Client, key string, log *logger.Logger) *Store {
	return &Store{
		key:         key,
		redisclient: redisclient,
		logger:      log,
	}
}

// Store serializes the snapshot and writes it to Redis. A failed write
// leaves the previously stored snapshot intact.
func (s *Store) Store(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "key",
			Value: s.key,
		})
		return errors.NewTracer("snapshot_marshal_error").Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.key, buf, 0); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "key",
			Value: s.key,
		})
		return errors.NewTracer("snapshot_store_error").Wrap(err)
	}

	s.logger.DebugContext(ctx, "Snapshot stored", logger.Field{
		Key:   "key",
		Value: s.key,
	}, logger.Field{
		Key:   "orderbooks",
		Value: len(snapshot.Orderbooks),
	})
	return nil
}

// Load reads the snapshot from Redis. A missing snapshot is not an error;
// it returns (nil, nil) and the engine starts fresh.
func (s *Store) Load(ctx context.Context) (*snapshotv1.Snapshot, error) {
	data, err := s.redisclient.Get(ctx, s.key)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "key",
			Value: s.key,
		})
		return nil, errors.NewTracer("snapshot_load_error").Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, "No snapshot found", logger.Field{
			Key:   "key",
			Value: s.key,
		})
		return nil, nil
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "key",
			Value: s.key,
		})
		return nil, errors.NewTracer("snapshot_unmarshal_error").Wrap(err)
	}

	return &snapshot, nil
}
