package hierarchy

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Class is the configuration of one class within a hierarchy: its direct
// bases and the ancestors it inherits transitively.
//
// A Class is never modified after construction, so hierarchies that share
// a prefix may share the same *Class values.
type Class struct {
	n       int
	parents []Parent

	// nonVirtual holds ancestors entered through a non-virtual base
	// specifier, virtual those entered through a virtual one. The two sets
	// are disjoint.
	nonVirtual *bitset.BitSet
	virtual    *bitset.BitSet
}

func newClass(n int) *Class {
	return &Class{
		n:          n,
		nonVirtual: bitset.New(uint(n)),
		virtual:    bitset.New(uint(n)),
	}
}

func (c *Class) clone() *Class {
	parents := make([]Parent, len(c.parents), len(c.parents)+1)
	copy(parents, c.parents)
	return &Class{
		n:          c.n,
		parents:    parents,
		nonVirtual: c.nonVirtual.Clone(),
		virtual:    c.virtual.Clone(),
	}
}

// Parents returns the direct bases in declaration order.
func (c *Class) Parents() []Parent {
	out := make([]Parent, len(c.parents))
	copy(out, c.parents)
	return out
}

// NumParents returns the number of direct bases.
func (c *Class) NumParents() int {
	return len(c.parents)
}

// HasDirectParent reports whether class is a direct base, virtual or not.
func (c *Class) HasDirectParent(class int) bool {
	for _, p := range c.parents {
		if p.Class(c.n) == class {
			return true
		}
	}
	return false
}

// NonVirtualAncestors returns, in ascending order, the ancestors entered
// through a non-virtual base specifier.
func (c *Class) NonVirtualAncestors() []int {
	return members(c.nonVirtual)
}

// VirtualAncestors returns, in ascending order, the ancestors entered
// through a virtual base specifier.
func (c *Class) VirtualAncestors() []int {
	return members(c.virtual)
}

// Ancestors returns every ancestor in ascending order.
func (c *Class) Ancestors() []int {
	return members(c.nonVirtual.Union(c.virtual))
}

// NumAncestors returns the number of distinct ancestors.
func (c *Class) NumAncestors() int {
	return int(c.nonVirtual.Count() + c.virtual.Count())
}

// HasAncestor reports whether class is a (direct or indirect) base.
func (c *Class) HasAncestor(class int) bool {
	return c.IsNonVirtualAncestor(class) || c.IsVirtualAncestor(class)
}

// IsNonVirtualAncestor reports whether class is entered non-virtually.
func (c *Class) IsNonVirtualAncestor(class int) bool {
	return class >= 0 && c.nonVirtual.Test(uint(class))
}

// IsVirtualAncestor reports whether class is entered virtually.
func (c *Class) IsVirtualAncestor(class int) bool {
	return class >= 0 && c.virtual.Test(uint(class))
}

// OrderKey returns the canonical ordering key of the direct base list.
// The combination search only accepts hierarchies whose keys never
// decrease from one class to the next.
func (c *Class) OrderKey() uint64 {
	n := uint64(c.n)
	var key uint64
	for _, p := range c.parents {
		entry := uint64(p)%n + 1
		entry *= uint64(p)/n + 1
		key += entry
		key *= 2 * (n + 1)
	}
	return key
}

// String renders the base-specifier list, e.g. "virtual c0, c1".
func (c *Class) String() string {
	parts := make([]string, len(c.parents))
	for i, p := range c.parents {
		parts[i] = p.Format(c.n)
	}
	return strings.Join(parts, ", ")
}

// Extend returns a copy of c with parent appended as a direct base, or
// false when the addition is illegal. h supplies the configurations of the
// candidate parent and every class before it.
//
// diamond permits an ancestor to be contributed by more than one direct base.
func Extend(h *Hierarchy, c *Class, parent int, virtual bool, diamond bool) (*Class, bool) {
	if parent < 0 || parent >= h.Len() {
		return nil, false
	}
	n := c.n
	base := h.classes[parent]

	// Duplicate direct base.
	if c.HasDirectParent(parent) {
		return nil, false
	}
	// A non-virtual copy of an existing virtual base.
	if !virtual && c.IsVirtualAncestor(parent) {
		return nil, false
	}
	if c.IsNonVirtualAncestor(parent) {
		return nil, false
	}
	for _, p := range c.parents {
		q := p.Class(n)
		if !p.Virtual(n) {
			if base.HasAncestor(q) {
				return nil, false
			}
		} else if base.IsNonVirtualAncestor(q) {
			return nil, false
		}
	}
	// Every ancestor keeps a single inheritance mode.
	if base.nonVirtual.IntersectionCardinality(c.virtual) > 0 ||
		base.virtual.IntersectionCardinality(c.nonVirtual) > 0 {
		return nil, false
	}

	next := c.clone()
	next.parents = append(next.parents, NewParent(parent, virtual, n))

	before := next.NumAncestors()
	next.nonVirtual.InPlaceUnion(base.nonVirtual)
	next.virtual.InPlaceUnion(base.virtual)
	if virtual {
		next.virtual.Set(uint(parent))
	} else {
		next.nonVirtual.Set(uint(parent))
	}
	added := base.NumAncestors() + 1

	if !diamond && before+added != next.NumAncestors() {
		return nil, false
	}
	return next, true
}

func members(b *bitset.BitSet) []int {
	out := make([]int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
