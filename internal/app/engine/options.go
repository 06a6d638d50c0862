package engine

import "time"

// Options represents configuration options for the Engine.
type Options struct {
	SnapshotInterval time.Duration
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		SnapshotInterval: 3 * time.Second,
	}
}
