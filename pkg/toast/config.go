package toast

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultQueueSize is the default capacity of the event loop queue.
const DefaultQueueSize = 256

// Config configures a Toaster.
type Config struct {
	// Position anchors the container and decides insertion order.
	// Default: bottom-right.
	Position Position

	// Duration is how long toasts stay visible before being dismissed.
	// Values below MinDuration are raised to it. Default: 3s.
	Duration time.Duration

	// Clock drives the dismissal timers. Default: the real clock.
	Clock clockwork.Clock

	// Logger receives lifecycle and error logs. Default: slog.Default().
	Logger *slog.Logger

	// Observers are notified of every lifecycle transition.
	Observers []Observer

	// QueueSize is the capacity of the event loop queue. Default: 256.
	QueueSize int
}

// Option configures a Toaster.
type Option func(*Config)

// WithPosition sets the container position.
func WithPosition(p Position) Option {
	return func(c *Config) {
		c.Position = p
	}
}

// WithDuration sets the default display duration.
func WithDuration(d time.Duration) Option {
	return func(c *Config) {
		c.Duration = d
	}
}

// WithClock sets the clock used for dismissal timers.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithObserver adds a lifecycle observer.
func WithObserver(o Observer) Option {
	return func(c *Config) {
		if o != nil {
			c.Observers = append(c.Observers, o)
		}
	}
}

// WithQueueSize sets the event loop queue capacity.
func WithQueueSize(n int) Option {
	return func(c *Config) {
		c.QueueSize = n
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Position:  DefaultPosition,
		Duration:  DefaultDuration,
		Clock:     clockwork.NewRealClock(),
		Logger:    slog.Default(),
		QueueSize: DefaultQueueSize,
	}
}

// normalize replaces unusable values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Logger == nil {
		c.Logger = def.Logger
	}
	if !c.Position.Valid() {
		if c.Position != "" {
			c.Logger.Warn("invalid toast position, using default",
				"position", string(c.Position),
				"default", string(DefaultPosition))
		}
		c.Position = def.Position
	}
	if c.Duration < 0 {
		c.Duration = 0
	}
	if c.Clock == nil {
		c.Clock = def.Clock
	}
	if c.QueueSize <= 0 {
		c.QueueSize = def.QueueSize
	}
}
