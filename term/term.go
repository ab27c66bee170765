package term

// Term is the capability every factor in a product exposes: a stable name
// and dependency predicates over integration variables.
type Term interface {
	// Name returns the factor's identity. Names must be unique within a
	// product; two terms with the same name are treated as the same term.
	Name() string

	// DependsOn reports whether the factor's value changes with v.
	DependsOn(v *Var) bool

	// DependsOnAny reports whether the factor depends on any variable in set.
	// A nil or empty set never matches.
	DependsOnAny(set *Set) bool
}

// Real is a real-valued factor.
//
// CreateIntegral returns a newly created Real representing the definite
// integral of the factor over vars within the named range of each variable
// (the empty name selects the default range). The returned term is owned by
// the caller. Factors without a closed form report errs.ErrNoAnalyticIntegral.
type Real interface {
	Term

	// Value evaluates the factor under the given normalization set, which
	// may be nil.
	Value(norm *Set) float64

	// CreateIntegral builds the definite integral of the factor over vars
	// and rangeName.
	CreateIntegral(vars *Set, rangeName string) (Real, error)
}

// Category is a categorical factor. In a product it contributes its current
// integer index value, exactly, with no rounding.
type Category interface {
	Term

	// Index returns the current index value.
	Index() int
}
