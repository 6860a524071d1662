package profile

import (
	"fmt"
	"slices"
	"strings"
)

// Stopper stops a running profiler.
type Stopper interface{ Stop() }

// Config selects a profiling mode and where its output is written.
//
// The zero Config disables profiling.
type Config struct {
	Mode  string
	Dir   string
	Quiet bool
}

// Option modifies a [Config].
type Option func(Config) Config

// Make returns a Config with opts applied in order.
func Make(opts ...Option) Config {
	var c Config

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// WithMode returns an option setting the profiling mode.
func WithMode(mode string) Option {
	return func(c Config) Config {
		c.Mode = mode

		return c
	}
}

// WithDir returns an option setting the output directory.
func WithDir(dir string) Option {
	return func(c Config) Config {
		c.Dir = dir

		return c
	}
}

// WithQuiet returns an option suppressing the profiler's own log output.
func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		c.Quiet = quiet

		return c
	}
}

// Validate reports an error if c.Mode is set but not one of [Modes].
func (c Config) Validate() error {
	if c.Mode == "" || slices.Contains(Modes(), c.Mode) {
		return nil
	}

	supported := "none (built without the " + Tag + " tag)"
	if m := Modes(); len(m) > 0 {
		supported = strings.Join(m, ", ")
	}

	return fmt.Errorf("unsupported profiling mode %q: supported: %s",
		c.Mode, supported)
}

// Start begins profiling and returns a [Stopper] that ends it.
//
// If the binary was built without the pprof tag, or c.Mode is empty or
// unsupported, Start returns a no-op. Both Start and Stop are always safe to
// call.
func (c Config) Start() Stopper {
	if c.Mode == "" {
		return ignore{}
	}

	return start(c)
}

type ignore struct{}

func (ignore) Stop() {}
