package product

import (
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/ra2003/prodint/term"
)

// Integrator integrates f over the given variables within their named
// ranges. f reads the variables' current values; implementations sweep the
// variables across quadrature nodes and must restore their original values
// before returning.
type Integrator interface {
	Integrate(f func() float64, vars []*term.Var, rangeName string) (float64, error)
}

// defaultQuadPoints is the Gauss-Legendre node count used when none is set.
const defaultQuadPoints = 64

// GaussLegendre integrates with fixed-order Gauss-Legendre quadrature,
// nesting one rule per variable. It is exact for polynomial integrands up
// to degree 2·Points−1 per variable, which covers the smooth low-dimensional
// sub-products this package produces.
type GaussLegendre struct {
	// Points is the node count per variable. Zero selects a default.
	Points int
}

var _ Integrator = GaussLegendre{}

// Integrate sweeps vars across the nested quadrature grid. With no
// variables it returns f() directly.
func (g GaussLegendre) Integrate(f func() float64, vars []*term.Var, rangeName string) (float64, error) {
	if len(vars) == 0 {
		return f(), nil
	}

	points := g.Points
	if points <= 0 {
		points = defaultQuadPoints
	}

	v := vars[0]
	min, max, err := v.Range(rangeName)
	if err != nil {
		return 0, err
	}

	saved := v.Value(nil)
	defer v.SetValue(saved)

	var innerErr error
	result := quad.Fixed(func(x float64) float64 {
		v.SetValue(x)
		val, err := g.Integrate(f, vars[1:], rangeName)
		if err != nil && innerErr == nil {
			innerErr = err
		}

		return val
	}, min, max, points, nil, 0)

	if innerErr != nil {
		return 0, innerErr
	}

	return result, nil
}
