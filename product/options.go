package product

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ra2003/prodint/internal/options"
	"github.com/ra2003/prodint/term"
)

// Option is a functional option for configuring a Product.
type Option = options.Option[*Product]

// WithLogger attaches a logger for debug tracing of grouping, synthesis and
// cache activity. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(p *Product) {
		if logger != nil {
			p.logger = logger
		}
	})
}

// WithCacheSize sets the initial capacity of the decomposition cache.
// The cache grows past this size rather than evicting.
func WithCacheSize(n int) Option {
	return options.New(func(p *Product) error {
		if n < 1 {
			return fmt.Errorf("cache size must be positive, got %d", n)
		}
		p.cacheSize = n

		return nil
	})
}

// WithIntegrator sets the numeric integrator used as fallback when a
// synthesized sub-product has no analytic integral. Passing nil disables
// numeric fallback; CreateIntegral then reports errs.ErrNoIntegrator when
// the fallback would be needed.
func WithIntegrator(integrator Integrator) Option {
	return options.NoError(func(p *Product) {
		p.integrator = integrator
	})
}

// WithNormSet sets the normalization set passed to every factor Value call
// during plain evaluation.
func WithNormSet(norm *term.Set) Option {
	return options.NoError(func(p *Product) {
		p.normSet = norm
	})
}
