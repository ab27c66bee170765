package term

import (
	"fmt"

	"github.com/ra2003/prodint/errs"
)

// DefaultRange is the name of the range installed by NewVar.
const DefaultRange = ""

type varRange struct {
	min, max float64
}

// Var is a real-valued integration variable with a current value and one or
// more named integration ranges. A Var depends only on itself.
type Var struct {
	name   string
	val    float64
	ranges map[string]varRange
}

var _ Real = (*Var)(nil)

// NewVar creates a variable with the given current value and default range.
func NewVar(name string, value, min, max float64) *Var {
	v := &Var{
		name:   name,
		val:    value,
		ranges: make(map[string]varRange, 1),
	}
	v.SetRange(DefaultRange, min, max)

	return v
}

// Name returns the variable name.
func (v *Var) Name() string { return v.name }

// Value returns the variable's current value. The normalization set is ignored.
func (v *Var) Value(_ *Set) float64 { return v.val }

// SetValue updates the variable's current value.
func (v *Var) SetValue(value float64) { v.val = value }

// SetRange installs or replaces the named integration range.
func (v *Var) SetRange(name string, min, max float64) {
	v.ranges[name] = varRange{min: min, max: max}
}

// Range returns the bounds of the named range. An unknown name falls back
// to the default range; a variable without a default range reports
// errs.ErrUnknownRange.
func (v *Var) Range(name string) (min, max float64, err error) {
	if r, ok := v.ranges[name]; ok {
		return r.min, r.max, nil
	}
	if r, ok := v.ranges[DefaultRange]; ok {
		return r.min, r.max, nil
	}

	return 0, 0, fmt.Errorf("%w: variable %s has no range %q", errs.ErrUnknownRange, v.name, name)
}

// DependsOn reports whether other is this variable.
func (v *Var) DependsOn(other *Var) bool {
	return other != nil && v.name == other.name
}

// DependsOnAny reports whether set contains this variable.
func (v *Var) DependsOnAny(set *Set) bool {
	return set.ContainsName(v.name)
}

// CreateIntegral returns the closed form of integrating the identity
// function of this variable. Only integration over exactly this variable
// has a closed form here: ∫ x dx = (max²−min²)/2 over the named range.
func (v *Var) CreateIntegral(vars *Set, rangeName string) (Real, error) {
	if vars.Len() != 1 || !vars.ContainsName(v.name) {
		return nil, fmt.Errorf("%w: variable %s over %s", errs.ErrNoAnalyticIntegral, v.name, vars)
	}

	min, max, err := v.Range(rangeName)
	if err != nil {
		return nil, err
	}
	val := (max*max - min*min) / 2

	return NewConst(integralName(v.name, vars, rangeName), val), nil
}
