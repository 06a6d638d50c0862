package snapshotv1

import "context"

// Store defines the interface for persisting and restoring engine snapshots.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=snapshotv1_mock
type Store interface {
	Store(ctx context.Context, snapshot *Snapshot) error
	// Load returns (nil, nil) when no snapshot has been written yet.
	Load(ctx context.Context) (*Snapshot, error)
}
