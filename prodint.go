// Package prodint computes analytic integrals of products of independent
// factors by factorization, with cached, deterministically rebuildable
// decompositions.
//
// A product of terms is integrated over a subset of its variables by
// partitioning terms and variables into independent groups (no two groups
// share a dependency), integrating each group separately, and multiplying
// the partial results. A multi-dimensional integral thereby collapses into
// several cheaper lower-dimensional ones. Decompositions are cached per
// (variable-set, range) request behind an opaque integer code and survive
// external cache eviction through deterministic rebuilds.
//
// # Basic Usage
//
// Building a product and integrating analytically:
//
//	x := term.NewVar("x", 0, 0, 1)
//	y := term.NewVar("y", 0, 0, 2)
//
//	f := term.NewFuncWithIntegral("f", term.NewSet(x),
//	    func() float64 { return x.Value(nil) },
//	    func(vars *term.Set, rng string) (term.Real, error) {
//	        min, max, _ := x.Range(rng)
//	        return term.NewConst(term.IntegralName("f", vars, rng), (max*max-min*min)/2), nil
//	    })
//	g := term.NewFuncWithIntegral("g", term.NewSet(y), ...)
//
//	p, _ := prodint.NewProduct("fg", f, g)
//
//	code, _, _ := p.AnalyticalIntegralCode(term.NewSet(x, y), term.DefaultRange)
//	if code == 0 {
//	    // nothing factors out: integrate numerically instead
//	}
//	val, _ := p.AnalyticalIntegral(code, term.DefaultRange)
//
// Plain evaluation multiplies every factor, categorical factors
// contributing their integer index:
//
//	total := p.Evaluate()
//
// # Cache Warm Starts
//
// Decomposition rebuilds are deterministic, so persisting only the cache
// keys reproduces the cache in a fresh process:
//
//	data, _ := prodint.SnapshotCache(p, compress.Zstd)
//	// ... persist data, restart, rebuild an equivalent product p2 ...
//	_ = prodint.RestoreCache(p2, data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For fine-grained
// control use the product, term, cache, compress and snapshot packages
// directly.
package prodint

import (
	"github.com/ra2003/prodint/compress"
	"github.com/ra2003/prodint/product"
	"github.com/ra2003/prodint/snapshot"
	"github.com/ra2003/prodint/term"
)

// NewProduct creates a product of the given factors with default settings:
// a no-op logger, a Gauss-Legendre numeric fallback integrator, and a
// decomposition cache that starts at ten slots.
//
// Each factor must be a term.Real or a term.Category. For custom
// configuration use product.New with options directly.
func NewProduct(name string, factors ...term.Term) (*product.Product, error) {
	return product.New(name, term.NewSet(factors...))
}

// SnapshotCache serializes the product's decomposition-cache keys into a
// payload compressed with the given codec type. See the snapshot package
// for the format.
func SnapshotCache(p *product.Product, codecType compress.Type) ([]byte, error) {
	return snapshot.Encode(p.CacheKeys(), codecType)
}

// RestoreCache replays a snapshot payload against p, rebuilding the cached
// decompositions for every key whose variables resolve against p's
// parameters. Restoring is idempotent: keys already cached keep their slots.
func RestoreCache(p *product.Product, data []byte) error {
	keys, err := snapshot.Decode(data)
	if err != nil {
		return err
	}

	return p.Prime(keys)
}
