package term

import (
	"fmt"

	"github.com/ra2003/prodint/errs"
)

// ValueFunc evaluates a factor from the current values of its variables.
type ValueFunc func() float64

// IntegralFunc builds the closed-form integral of a factor over vars within
// rangeName. Implementations typically inspect vars and return a Const or
// another Func capturing the remaining free variables.
type IntegralFunc func(vars *Set, rangeName string) (Real, error)

// Func is a named real-valued factor over an explicit variable list.
//
// The value closure reads the variables' current values; the optional
// integral closure supplies closed forms. A Func without an integral
// closure reports errs.ErrNoAnalyticIntegral from CreateIntegral.
type Func struct {
	name     string
	vars     *Set
	value    ValueFunc
	integral IntegralFunc
}

var _ Real = (*Func)(nil)

// NewFunc creates a factor with no analytic integral.
func NewFunc(name string, vars *Set, value ValueFunc) *Func {
	return &Func{name: name, vars: vars.Clone(), value: value}
}

// NewFuncWithIntegral creates a factor whose closed-form integrals are
// produced by integral.
func NewFuncWithIntegral(name string, vars *Set, value ValueFunc, integral IntegralFunc) *Func {
	f := NewFunc(name, vars, value)
	f.integral = integral

	return f
}

// NewConst creates a factor with a fixed value and no variable dependencies.
// Integrating a constant over any variable set has no closed form here;
// constants normally land in the unintegrated group anyway.
func NewConst(name string, value float64) *Func {
	return NewFunc(name, NewSet(), func() float64 { return value })
}

// Name returns the factor name.
func (f *Func) Name() string { return f.name }

// Variables returns the factor's variable list.
func (f *Func) Variables() *Set { return f.vars.Clone() }

// Value evaluates the factor. The normalization set is ignored; closures
// read their variables directly.
func (f *Func) Value(_ *Set) float64 { return f.value() }

// DependsOn reports whether v is among the factor's variables.
func (f *Func) DependsOn(v *Var) bool {
	return v != nil && f.vars.ContainsName(v.Name())
}

// DependsOnAny reports whether any variable in set is among the factor's
// variables.
func (f *Func) DependsOnAny(set *Set) bool {
	return f.vars.Overlaps(set)
}

// CreateIntegral delegates to the factor's integral closure.
func (f *Func) CreateIntegral(vars *Set, rangeName string) (Real, error) {
	if f.integral == nil {
		return nil, fmt.Errorf("%w: term %s", errs.ErrNoAnalyticIntegral, f.name)
	}

	return f.integral(vars, rangeName)
}

// integralName derives the conventional name of an integral term.
func integralName(base string, vars *Set, rangeName string) string {
	name := base + "_Int[" + vars.Join(",") + "]"
	if rangeName != DefaultRange {
		name += "_" + rangeName
	}

	return name
}

// IntegralName derives the conventional name of the integral of base over
// vars within rangeName. Stock IntegralFunc implementations use it so
// rebuilt cache entries reproduce identical names.
func IntegralName(base string, vars *Set, rangeName string) string {
	return integralName(base, vars, rangeName)
}
