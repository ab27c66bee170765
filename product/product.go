package product

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ra2003/prodint/cache"
	"github.com/ra2003/prodint/errs"
	"github.com/ra2003/prodint/internal/options"
	"github.com/ra2003/prodint/term"
)

// subProdPrefix and subProdSep build the names of synthesized sub-products.
const (
	subProdPrefix = "SUBPROD_"
	subProdSep    = "_X_"
)

// defaultCacheSize is the initial decomposition cache capacity.
const defaultCacheSize = 10

// varLister is the optional capability a factor may expose to report its
// free variables. Func and Product implement it; the constructor uses it to
// assemble the product's known parameter set.
type varLister interface {
	Variables() *term.Set
}

// cacheEntry is one cached decomposition: the partial-integral list to
// multiply, plus the terms this entry created and owns (synthesized
// sub-products and integrals). The owned list exists for lifecycle
// inspection; the garbage collector frees it together with the entry.
type cacheEntry struct {
	partList []term.Real
	owned    []term.Real
}

// Product multiplies a set of real-valued and categorical factors and
// computes analytic integrals of the product by factorization.
//
// A Product is confined to a single goroutine; it shares no state between
// instances and each instance carries its own decomposition cache.
type Product struct {
	name    string
	reals   []term.Real
	cats    []term.Category
	params  *term.Set
	normSet *term.Set

	forceNumeric bool
	cacheSize    int
	integrator   Integrator
	logger       *zap.Logger
	cacheMgr     *cache.Manager[*cacheEntry]
}

var _ term.Real = (*Product)(nil)

// New creates a product of the given factors.
//
// Each factor must be a term.Real or a term.Category; anything else is
// rejected with errs.ErrMixedTermKind. The real/categorical discrimination
// happens once, here, never during evaluation. An empty factor set is
// rejected with errs.ErrEmptyProduct.
func New(name string, factors *term.Set, opts ...Option) (*Product, error) {
	if factors.Len() == 0 {
		return nil, fmt.Errorf("%w: product %s", errs.ErrEmptyProduct, name)
	}

	p := &Product{
		name:       name,
		params:     term.NewSet(),
		cacheSize:  defaultCacheSize,
		integrator: GaussLegendre{},
		logger:     zap.NewNop(),
	}

	for _, t := range factors.Terms() {
		switch f := t.(type) {
		case term.Real:
			p.reals = append(p.reals, f)
		case term.Category:
			p.cats = append(p.cats, f)
		default:
			return nil, fmt.Errorf("%w: factor %s in product %s", errs.ErrMixedTermKind, t.Name(), name)
		}

		if v, ok := t.(*term.Var); ok {
			p.params.Add(v)
			continue
		}
		if lister, ok := t.(varLister); ok {
			p.params.AddAll(lister.Variables())
		}
	}

	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}
	p.cacheMgr = cache.New[*cacheEntry](p.cacheSize)

	return p, nil
}

// Name returns the product name.
func (p *Product) Name() string { return p.name }

// Variables returns the union of the factors' known free variables.
func (p *Product) Variables() *term.Set { return p.params.Clone() }

// SetForceNumeric disables analytic integration wholesale: every code
// request returns the unavailable sentinel until re-enabled.
func (p *Product) SetForceNumeric(force bool) { p.forceNumeric = force }

// DependsOn reports whether any factor depends on v.
func (p *Product) DependsOn(v *term.Var) bool {
	for _, r := range p.reals {
		if r.DependsOn(v) {
			return true
		}
	}

	return false
}

// DependsOnAny reports whether any factor depends on any variable in set.
func (p *Product) DependsOnAny(set *term.Set) bool {
	for _, r := range p.reals {
		if r.DependsOnAny(set) {
			return true
		}
	}

	return false
}

// ForcesAnalyticalIntegral reports whether the product insists on handling
// the integration over v internally, which it does whenever any factor
// depends on v.
func (p *Product) ForcesAnalyticalIntegral(v *term.Var) bool {
	return p.DependsOn(v)
}

// Evaluate multiplies every real factor's value under the product's
// normalization set and every categorical factor's index value.
func (p *Product) Evaluate() float64 {
	return p.Value(p.normSet)
}

// Value implements term.Real. The normalization set is forwarded to every
// real factor; categorical factors contribute their integer index exactly.
func (p *Product) Value(norm *term.Set) float64 {
	prod := 1.0
	for _, r := range p.reals {
		prod *= r.Value(norm)
	}
	for _, c := range p.cats {
		prod *= float64(c.Index())
	}

	return prod
}

// calculate multiplies the evaluated values of a partial-integral list.
// An empty list yields the multiplicative identity. Partial integrals are
/// evaluated without a normalization context: the normSet configured via
// WithNormSet applies to plain evaluation only, never to cached
// decompositions.
func calculate(list []term.Real) float64 {
	val := 1.0
	for _, t := range list {
		val *= t.Value(nil)
	}

	return val
}

// CanIntegrate reports whether the product can analytically integrate over
// vars (in the default range). On success it adds the analytically handled
// variables to analVars — always the full input set: a successful
// factorization covers every requested variable, just decomposed.
func (p *Product) CanIntegrate(vars *term.Set, analVars *term.Set) bool {
	code, handled, err := p.AnalyticalIntegralCode(vars, term.DefaultRange)
	if err != nil || code == 0 {
		return false
	}
	if analVars != nil {
		analVars.AddAll(handled)
	}

	return true
}

// AnalyticalIntegralCode requests the integral decomposition of the product
// over vars within rangeName and returns its opaque request code together
// with the analytically handled variable set.
//
// Code 0 means no analytic integral is available — the factorization
// degenerated to fewer than two groups, the variable set was empty, or
// numeric integration is forced — and the caller should fall back to
// numeric integration. Errors from factor CreateIntegral calls propagate
// unmodified.
//
// Requesting the same (vars, rangeName) again returns the same code without
// rebuilding.
func (p *Product) AnalyticalIntegralCode(vars *term.Set, rangeName string) (int, *term.Set, error) {
	if p.forceNumeric || vars.Len() == 0 {
		return 0, term.NewSet(), nil
	}

	slot, err := p.partIntCode(vars, rangeName)
	if err != nil {
		return 0, term.NewSet(), err
	}
	if slot < 0 {
		return 0, term.NewSet(), nil
	}

	return slot + 1, vars.Clone(), nil
}

// partIntCode returns the cache slot holding the decomposition for
// (vars, rangeName), building and installing it on a miss. It returns -1
// when the factorization is degenerate (fewer than two groups).
func (p *Product) partIntCode(vars *term.Set, rangeName string) (int, error) {
	key := cache.NewKey(varNames(vars), rangeName)
	if _, slot, ok := p.cacheMgr.Get(key); ok {
		return slot, nil
	}

	groups := p.groupTerms(vars)
	if len(groups) < 2 {
		return -1, nil
	}
	for _, g := range groups {
		if g.vars.Len() > 0 && g.terms.Len() == 0 {
			// A requested variable no factor depends on: nothing to
			// integrate analytically.
			p.logger.Debug("integration variables without dependent factors",
				zap.String("product", p.name), zap.String("vars", g.vars.String()))

			return -1, nil
		}
	}

	entry := &cacheEntry{}
	for _, g := range groups {
		var t term.Real
		if g.terms.Len() > 1 {
			sub, err := p.newSubProduct(g.terms)
			if err != nil {
				return -1, err
			}
			entry.owned = append(entry.owned, sub)
			t = sub
			p.logger.Debug("created subexpression",
				zap.String("product", p.name), zap.String("sub", sub.Name()))
		} else {
			t = g.terms.At(0).(term.Real)
		}

		if g.vars.Len() == 0 {
			entry.partList = append(entry.partList, t)
			p.logger.Debug("adding simple factor",
				zap.String("product", p.name), zap.String("factor", t.Name()))
			continue
		}

		integral, err := t.CreateIntegral(g.vars, rangeName)
		if err != nil {
			return -1, fmt.Errorf("integral of %s over %s: %w", t.Name(), g.vars, err)
		}
		entry.partList = append(entry.partList, integral)
		entry.owned = append(entry.owned, integral)
		p.logger.Debug("adding integral",
			zap.String("product", p.name),
			zap.String("factor", t.Name()),
			zap.String("integral", integral.Name()))
	}

	slot := p.cacheMgr.Set(key, entry)
	p.logger.Debug("cached partial integral list",
		zap.String("product", p.name),
		zap.String("key", key.String()),
		zap.Int("code", slot+1),
		zap.Int("factors", len(entry.partList)))

	return slot, nil
}

// newSubProduct synthesizes the product of one group's factors, inheriting
// this product's configuration.
func (p *Product) newSubProduct(terms *term.Set) (*Product, error) {
	name := subProdPrefix + terms.Join(subProdSep)

	return New(name, terms,
		WithLogger(p.logger),
		WithIntegrator(p.integrator),
		WithNormSet(p.normSet),
	)
}

// AnalyticalIntegral evaluates the cached partial-integral list behind a
// code previously issued by AnalyticalIntegralCode.
//
// A sterilized cache slot is rebuilt transparently from its retained key,
// intersected against the product's currently known parameters; the rebuilt
// entry must land on the same slot, anything else is a slot-numbering
// contract violation and panics. Calling with a code this product never
// issued panics as well.
func (p *Product) AnalyticalIntegral(code int, rangeName string) (float64, error) {
	if code <= 0 {
		panic(fmt.Sprintf("product: analytical integral requested with invalid code %d", code))
	}

	entry, ok := p.cacheMgr.ByIndex(code - 1)
	if !ok {
		key, known := p.cacheMgr.KeyByIndex(code - 1)
		if !known {
			panic(fmt.Sprintf("product: analytical integral requested for code %d never issued by %s", code, p.name))
		}

		p.logger.Debug("cache slot sterilized, rebuilding",
			zap.String("product", p.name),
			zap.Int("code", code),
			zap.String("key", key.String()))

		iset := p.params.Select(key.Names())
		slot, err := p.partIntCode(iset, key.Range())
		if err != nil {
			return 0, err
		}
		if slot != code-1 {
			panic(fmt.Sprintf("product: sterilized slot %d of %s rebuilt at %d; slot numbering contract violated",
				code-1, p.name, slot))
		}

		return p.AnalyticalIntegral(code, rangeName)
	}

	return calculate(entry.partList), nil
}

// CreateIntegral implements term.Real. The result prefers the analytic
// decomposition; without one it falls back to the configured numeric
// integrator, and with fallback disabled it reports errs.ErrNoIntegrator.
func (p *Product) CreateIntegral(vars *term.Set, rangeName string) (term.Real, error) {
	code, _, err := p.AnalyticalIntegralCode(vars, rangeName)
	if err != nil {
		return nil, err
	}
	if code > 0 {
		return newAnalyticIntegral(p, code, vars, rangeName), nil
	}
	if p.integrator == nil {
		return nil, fmt.Errorf("%w: integral of %s over %s", errs.ErrNoIntegrator, p.name, vars)
	}

	return newNumericIntegral(p, vars, rangeName)
}

// Sterilize drops the payload of the cache slot behind code, keeping its
// key. It emulates an external cache eviction; the next AnalyticalIntegral
// call with this code rebuilds the identical entry.
func (p *Product) Sterilize(code int) {
	p.cacheMgr.Sterilize(code - 1)
}

// CachedEntryLens reports, for testing and diagnostics, the sizes of the
// result and owned lists behind a code, and whether the slot is live.
func (p *Product) CachedEntryLens(code int) (partList, owned int, live bool) {
	entry, ok := p.cacheMgr.ByIndex(code - 1)
	if !ok {
		return 0, 0, false
	}

	return len(entry.partList), len(entry.owned), true
}

// CacheKeys exports the keys of every decomposition ever cached, in slot
// order. Replaying them through Prime on an equivalent product reproduces
// the cache deterministically.
func (p *Product) CacheKeys() []cache.Key {
	return p.cacheMgr.Keys()
}

// Prime replays exported cache keys, rebuilding their decompositions.
// A key is skipped unless every one of its variable names resolves against
// the product's parameters; replaying a partial key would allocate a slot
// the originating product never issued.
func (p *Product) Prime(keys []cache.Key) error {
	for _, key := range keys {
		names := key.Names()
		iset := p.params.Select(names)
		if iset.Len() != len(names) {
			p.logger.Debug("skipping stale snapshot key",
				zap.String("product", p.name), zap.String("key", key.String()))
			continue
		}
		if _, _, err := p.AnalyticalIntegralCode(iset, key.Range()); err != nil {
			return fmt.Errorf("priming %s: %w", key, err)
		}
	}

	return nil
}

// varNames returns the names of the variables in vars, in insertion order.
// Non-variable members are ignored.
func varNames(vars *term.Set) []string {
	vs := vars.Vars()
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name()
	}

	return out
}
