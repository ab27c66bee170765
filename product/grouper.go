package product

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ra2003/prodint/term"
)

// varGroup is one independent group of a decomposition: the integration
// variables it is responsible for and the factors delegated to it. An empty
// variable set marks the group of factors independent of every requested
// variable; those pass into the result unintegrated.
type varGroup struct {
	vars  *term.Set
	terms *term.Set
}

// groupTerms partitions the product's real factors and the requested
// integration variables into independent groups.
//
// Factors depending on none of the requested variables form one group with
// an empty variable set, placed first when non-empty. The remaining groups
// are the connected components of the bipartite factor/variable dependency
// graph, computed by union-find over the requested variables and emitted in
// first-seen variable order. The ordering is deterministic: merging never
// moves a component ahead of an earlier one.
//
// The grouping must classify every requested variable and every real factor
// exactly once; a count mismatch is an internal-consistency failure and
// panics.
func (p *Product) groupTerms(vars *term.Set) []varGroup {
	reqVars := vars.Vars()

	indep := term.NewSet()
	for _, r := range p.reals {
		if !r.DependsOnAny(vars) {
			indep.Add(r)
		}
	}

	// Union-find over the requested variables: factors sharing a variable
	// pull their variables into one component.
	parent := make([]int, len(reqVars))
	for i := range parent {
		parent[i] = i
	}
	var find func(i int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}

		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			// Attach the later root under the earlier one so components
			// keep the position of their earliest variable.
			if ra > rb {
				ra, rb = rb, ra
			}
			parent[rb] = ra
		}
	}

	deps := make([][]int, len(p.reals))
	for ti, r := range p.reals {
		for vi, v := range reqVars {
			if r.DependsOn(v) {
				deps[ti] = append(deps[ti], vi)
			}
		}
		for i := 1; i < len(deps[ti]); i++ {
			union(deps[ti][0], deps[ti][i])
		}
	}

	groups := make([]varGroup, 0, len(reqVars)+1)
	if indep.Len() > 0 {
		groups = append(groups, varGroup{vars: term.NewSet(), terms: indep})
	}

	// Emit components in first-seen variable order.
	groupOf := make(map[int]int, len(reqVars))
	for vi, v := range reqVars {
		root := find(vi)
		gi, ok := groupOf[root]
		if !ok {
			gi = len(groups)
			groupOf[root] = gi
			groups = append(groups, varGroup{vars: term.NewSet(), terms: term.NewSet()})
		}
		groups[gi].vars.Add(v)
	}

	for ti, r := range p.reals {
		if len(deps[ti]) == 0 {
			continue
		}
		groups[groupOf[find(deps[ti][0])]].terms.Add(r)
	}

	nVar, nTerm := 0, 0
	for _, g := range groups {
		nVar += g.vars.Len()
		nTerm += g.terms.Len()
	}
	if nVar != len(reqVars) || nTerm != len(p.reals) {
		panic(fmt.Sprintf("product: grouping invariant violated for %s: %d/%d variables, %d/%d factors classified",
			p.name, nVar, len(reqVars), nTerm, len(p.reals)))
	}

	if ce := p.logger.Check(zap.DebugLevel, "grouped product terms"); ce != nil {
		ce.Write(
			zap.String("product", p.name),
			zap.String("vars", vars.String()),
			zap.String("groups", formatGroups(groups)),
		)
	}

	return groups
}

// formatGroups renders a decomposition as "[ (x)->(f) , (y)->(g) ]".
func formatGroups(groups []varGroup) string {
	out := "[ "
	for i, g := range groups {
		if i > 0 {
			out += " , "
		}
		out += g.vars.String() + "->" + g.terms.String()
	}

	return out + " ]"
}
