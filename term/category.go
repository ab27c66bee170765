package term

// Cat is a categorical factor holding a mutable integer index. In a product
// it contributes the index value itself.
type Cat struct {
	name string
	idx  int
}

var _ Category = (*Cat)(nil)

// NewCat creates a categorical factor with the given initial index.
func NewCat(name string, index int) *Cat {
	return &Cat{name: name, idx: index}
}

// Name returns the factor name.
func (c *Cat) Name() string { return c.name }

// Index returns the current index value.
func (c *Cat) Index() int { return c.idx }

// SetIndex updates the current index value.
func (c *Cat) SetIndex(index int) { c.idx = index }

// DependsOn always reports false: categorical factors do not depend on
// integration variables.
func (c *Cat) DependsOn(_ *Var) bool { return false }

// DependsOnAny always reports false.
func (c *Cat) DependsOnAny(_ *Set) bool { return false }
