package selector

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfiguration is returned when a selector cannot be built from the
// supplied Config. The host has to fix the configuration; nothing is retried.
var ErrInvalidConfiguration = errors.New("invalid selector configuration")

const (
	// DefaultReplicationFactor is the number of list copies laid end to end
	// when looping.
	DefaultReplicationFactor = 3
	// DefaultCommitDelay is how long a silent reposition waits before the
	// index is committed.
	DefaultCommitDelay = 100 * time.Millisecond
	// DefaultViewportRows sizes the viewport when ViewportHeight is zero.
	DefaultViewportRows = 5
	// RestVelocity is the speed below which a release counts as a stop.
	RestVelocity = 0.01
)

// Config holds the fixed geometry and behaviour of one selector.
type Config struct {
	ItemHeight        float64
	ViewportHeight    float64
	Loop              bool
	ReplicationFactor int
	CommitDelay       time.Duration
}

// Validate reports whether the config can drive a selector. Zero values for
// ViewportHeight, ReplicationFactor and CommitDelay are allowed and mean
// "use the default".
func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.ItemHeight) || math.IsInf(c.ItemHeight, 0) || c.ItemHeight <= 0:
		return fmt.Errorf("%w: item height must be positive, got %v", ErrInvalidConfiguration, c.ItemHeight)
	case math.IsNaN(c.ViewportHeight) || c.ViewportHeight < 0:
		return fmt.Errorf("%w: viewport height must not be negative, got %v", ErrInvalidConfiguration, c.ViewportHeight)
	case c.ReplicationFactor < 0:
		return fmt.Errorf("%w: replication factor must not be negative, got %d", ErrInvalidConfiguration, c.ReplicationFactor)
	case c.ReplicationFactor > 0 && c.ReplicationFactor%2 == 0:
		return fmt.Errorf("%w: replication factor must be odd, got %d", ErrInvalidConfiguration, c.ReplicationFactor)
	case c.CommitDelay < 0:
		return fmt.Errorf("%w: commit delay must not be negative, got %s", ErrInvalidConfiguration, c.CommitDelay)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.ReplicationFactor == 0 {
		c.ReplicationFactor = DefaultReplicationFactor
	}
	if c.ViewportHeight == 0 {
		c.ViewportHeight = DefaultViewportRows * c.ItemHeight
	}
	if c.CommitDelay == 0 {
		c.CommitDelay = DefaultCommitDelay
	}
	return c
}

// replicas is the number of list copies actually laid out.
func (c Config) replicas() int {
	if !c.Loop {
		return 1
	}
	return c.ReplicationFactor
}
