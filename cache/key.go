package cache

import (
	"sort"
	"strings"

	"github.com/ra2003/prodint/internal/hash"
)

// Key identifies one cached decomposition: the set of integration-variable
// names plus the integration range name. Names are held in sorted order so
// identity does not depend on the order the variables were requested in.
type Key struct {
	names []string
	rng   string
}

// NewKey builds a Key from variable names and a range name. The names slice
// is copied and sorted.
func NewKey(names []string, rangeName string) Key {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	return Key{names: sorted, rng: rangeName}
}

// Names returns the variable names in sorted order. The slice is a copy.
func (k Key) Names() []string {
	out := make([]string, len(k.names))
	copy(out, k.names)

	return out
}

// Range returns the range name.
func (k Key) Range() string { return k.rng }

// ID returns the key's 64-bit identity.
func (k Key) ID() uint64 {
	return hash.KeyID(k.rng, k.names)
}

// String renders the key for log output.
func (k Key) String() string {
	s := "{" + strings.Join(k.names, ",") + "}"
	if k.rng != "" {
		s += "@" + k.rng
	}

	return s
}
