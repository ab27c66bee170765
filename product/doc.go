// Package product implements products of real-valued and categorical
// factors with analytic integration by factorization.
//
// A Product multiplies its factors. When asked to integrate over a set of
// variables, it partitions factors and variables into independent groups
// (connected components of the factor/variable dependency graph), builds
// one partial integral per group, and multiplies the partial results. The
// decomposition for each (variable-set, range) request is cached behind an
// opaque integer code and rebuilt deterministically if the cache slot is
// evicted.
//
// Degenerate requests (nothing factors out, or an empty variable set)
// yield code 0, signalling the caller to fall back to numeric
// integration. Internal consistency violations panic: a wrong grouping
// must never silently turn into a plausible-looking number.
package product
