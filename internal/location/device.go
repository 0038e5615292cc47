package location

import (
	"context"
	"sync"
	"time"

	"provider-match-api/internal/models"
	"provider-match-api/internal/observability"

	"github.com/jonboulle/clockwork"
)

// DefaultMaxAge is how long a previous fix may be reused.
const DefaultMaxAge = 5 * time.Minute

// PositionSource is a device or browser positioning capability. It may be slow,
// unavailable, or denied by the user.
type PositionSource interface {
	CurrentPosition(ctx context.Context) (models.Coordinate, error)
}

// DeviceLocator asks a PositionSource for a fix once per call, bounded by a timeout,
// and reuses the last fix while it is younger than maxAge.
type DeviceLocator struct {
	source  PositionSource
	timeout time.Duration
	maxAge  time.Duration
	clock   clockwork.Clock

	mu      sync.Mutex
	last    models.Coordinate
	lastAt  time.Time
	hasLast bool
}

// NewDeviceLocator creates a device locator. source may be nil.
func NewDeviceLocator(source PositionSource, timeout, maxAge time.Duration, clock clockwork.Clock) *DeviceLocator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxAge < 0 {
		maxAge = 0
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DeviceLocator{
		source:  source,
		timeout: timeout,
		maxAge:  maxAge,
		clock:   clock,
	}
}

// Available reports whether a position source is configured.
func (d *DeviceLocator) Available() bool {
	return d != nil && d.source != nil
}

// CurrentPosition returns the cached fix if it is fresh enough, otherwise makes
// a single bounded attempt against the source.
func (d *DeviceLocator) CurrentPosition(ctx context.Context) (models.Coordinate, bool) {
	if !d.Available() {
		return models.Coordinate{}, false
	}

	if c, ok := d.cached(); ok {
		return c, true
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	type fix struct {
		coord models.Coordinate
		err   error
	}
	done := make(chan fix, 1)
	go func() {
		c, err := d.source.CurrentPosition(ctx)
		done <- fix{coord: c, err: err}
	}()

	select {
	case <-ctx.Done():
		observability.LoggerFromContext(ctx).Debug().Err(ctx.Err()).Msg("device position timed out")
		return models.Coordinate{}, false
	case f := <-done:
		if f.err != nil {
			observability.LoggerFromContext(ctx).Debug().Err(f.err).Msg("device position unavailable")
			return models.Coordinate{}, false
		}
		c, ok := FromCoordinate(f.coord)
		if ok {
			d.store(c)
		}
		return c, ok
	}
}

func (d *DeviceLocator) cached() (models.Coordinate, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.hasLast || d.clock.Since(d.lastAt) > d.maxAge {
		return models.Coordinate{}, false
	}
	return d.last, true
}

func (d *DeviceLocator) store(c models.Coordinate) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = c
	d.lastAt = d.clock.Now()
	d.hasLast = true
}
