// Package errs defines the sentinel errors shared across prodint packages.
//
// Callers match them with errors.Is; packages wrap them with additional
// context using fmt.Errorf("%w: ...", errs.ErrX).
package errs

import "errors"

var (
	// ErrNoAnalyticIntegral reports that a term has no closed-form integral
	// over the requested variable set and range.
	ErrNoAnalyticIntegral = errors.New("no analytic integral")

	// ErrEmptyProduct reports a product constructed without any factors.
	ErrEmptyProduct = errors.New("product has no factors")

	// ErrMixedTermKind reports a factor that is neither a real-valued nor a
	// categorical term.
	ErrMixedTermKind = errors.New("factor is neither real nor categorical")

	// ErrNoIntegrator reports that a numeric fallback integration was needed
	// but no integrator is configured.
	ErrNoIntegrator = errors.New("no numeric integrator configured")

	// ErrUnknownRange reports a named range that a variable does not define.
	ErrUnknownRange = errors.New("unknown range")

	// ErrInvalidSnapshot reports a malformed or truncated snapshot payload.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
