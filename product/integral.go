package product

import (
	"fmt"

	"github.com/ra2003/prodint/errs"
	"github.com/ra2003/prodint/term"
)

// analyticIntegral is the integral of a product over variables it can
// factorize: evaluation multiplies the cached partial-integral list behind
// the product's request code.
type analyticIntegral struct {
	name      string
	src       *Product
	code      int
	vars      *term.Set
	rangeName string
}

var _ term.Real = (*analyticIntegral)(nil)

func newAnalyticIntegral(p *Product, code int, vars *term.Set, rangeName string) *analyticIntegral {
	return &analyticIntegral{
		name:      term.IntegralName(p.Name(), vars, rangeName),
		src:       p,
		code:      code,
		vars:      vars.Clone(),
		rangeName: rangeName,
	}
}

func (a *analyticIntegral) Name() string { return a.name }

// Value evaluates the cached decomposition. The code was issued when this
// term was built, so a failure here is an engine defect and panics rather
// than producing a wrong number.
func (a *analyticIntegral) Value(_ *term.Set) float64 {
	val, err := a.src.AnalyticalIntegral(a.code, a.rangeName)
	if err != nil {
		panic(fmt.Sprintf("product: evaluating analytic integral %s: %v", a.name, err))
	}

	return val
}

// DependsOn reports dependence on the source product's variables minus the
// integrated ones.
func (a *analyticIntegral) DependsOn(v *term.Var) bool {
	return !a.vars.ContainsName(v.Name()) && a.src.DependsOn(v)
}

func (a *analyticIntegral) DependsOnAny(set *term.Set) bool {
	for _, v := range set.Vars() {
		if a.DependsOn(v) {
			return true
		}
	}

	return false
}

// CreateIntegral of an integral term is not supported.
func (a *analyticIntegral) CreateIntegral(vars *term.Set, _ string) (term.Real, error) {
	return nil, fmt.Errorf("%w: %s over %s", errs.ErrNoAnalyticIntegral, a.name, vars)
}

// numericIntegral is the numeric-fallback integral of a factor whose
// factorization degenerated: the configured Integrator sweeps the
// integration variables on every evaluation.
type numericIntegral struct {
	name       string
	src        term.Real
	vars       []*term.Var
	varSet     *term.Set
	rangeName  string
	integrator Integrator
}

var _ term.Real = (*numericIntegral)(nil)

func newNumericIntegral(p *Product, vars *term.Set, rangeName string) (*numericIntegral, error) {
	vs := vars.Vars()
	// Validate the ranges up front so evaluation cannot fail on a missing
	// range later.
	for _, v := range vs {
		if _, _, err := v.Range(rangeName); err != nil {
			return nil, err
		}
	}

	return &numericIntegral{
		name:       term.IntegralName(p.Name(), vars, rangeName) + "_num",
		src:        p,
		vars:       vs,
		varSet:     vars.Clone(),
		rangeName:  rangeName,
		integrator: p.integrator,
	}, nil
}

func (n *numericIntegral) Name() string { return n.name }

// Value integrates numerically. Ranges were validated at construction, so
// an integrator failure is an engine or integrator defect and panics.
func (n *numericIntegral) Value(_ *term.Set) float64 {
	val, err := n.integrator.Integrate(func() float64 {
		return n.src.Value(nil)
	}, n.vars, n.rangeName)
	if err != nil {
		panic(fmt.Sprintf("product: evaluating numeric integral %s: %v", n.name, err))
	}

	return val
}

func (n *numericIntegral) DependsOn(v *term.Var) bool {
	return !n.varSet.ContainsName(v.Name()) && n.src.DependsOn(v)
}

func (n *numericIntegral) DependsOnAny(set *term.Set) bool {
	for _, v := range set.Vars() {
		if n.DependsOn(v) {
			return true
		}
	}

	return false
}

// CreateIntegral of an integral term is not supported.
func (n *numericIntegral) CreateIntegral(vars *term.Set, _ string) (term.Real, error) {
	return nil, fmt.Errorf("%w: %s over %s", errs.ErrNoAnalyticIntegral, n.name, vars)
}
