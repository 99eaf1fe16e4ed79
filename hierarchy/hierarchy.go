package hierarchy

import (
	"fmt"
	"strings"
)

// Hierarchy is an ordered sequence of class configurations, one per class
// index. Class i may only derive from classes with a smaller index.
//
// A Hierarchy is immutable; Append returns a new value and leaves the
// receiver untouched, so sibling search branches never alias each other.
type Hierarchy struct {
	n       int
	classes []*Class
}

// New returns an empty hierarchy that can hold up to n classes.
func New(n int) *Hierarchy {
	return &Hierarchy{n: n}
}

// N returns the class capacity used for parent encoding.
func (h *Hierarchy) N() int {
	return h.n
}

// Len returns the number of classes placed so far.
func (h *Hierarchy) Len() int {
	return len(h.classes)
}

// Full reports whether every class has been placed.
func (h *Hierarchy) Full() bool {
	return len(h.classes) == h.n
}

// Class returns the configuration of class i.
func (h *Hierarchy) Class(i int) *Class {
	return h.classes[i]
}

// Classes returns the class configurations in index order.
func (h *Hierarchy) Classes() []*Class {
	out := make([]*Class, len(h.classes))
	copy(out, h.classes)
	return out
}

// Append returns a new hierarchy with c placed as the next class.
func (h *Hierarchy) Append(c *Class) *Hierarchy {
	classes := make([]*Class, len(h.classes), len(h.classes)+1)
	copy(classes, h.classes)
	return &Hierarchy{n: h.n, classes: append(classes, c)}
}

// Root returns the configuration of a class with no bases, suitable as the
// starting point of a per-class search.
func (h *Hierarchy) Root() *Class {
	return newClass(h.n)
}

// Connected reports whether all classes form one connected component when
// inheritance edges are treated as undirected. An empty hierarchy is not
// connected.
func (h *Hierarchy) Connected() bool {
	if len(h.classes) == 0 {
		return false
	}
	visited := make([]bool, len(h.classes))
	visited[0] = true
	seen := 1
	queue := []int{0}

	visit := func(i int) {
		if !visited[i] {
			visited[i] = true
			seen++
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, a := range h.classes[current].Ancestors() {
			visit(a)
		}
		// No child lists are kept; scan for classes deriving from current.
		for i, c := range h.classes {
			if c.HasAncestor(current) {
				visit(i)
			}
		}
	}
	return seen == len(h.classes)
}

// OrderKeys returns the order key of every class in index order.
func (h *Hierarchy) OrderKeys() []uint64 {
	keys := make([]uint64, len(h.classes))
	for i, c := range h.classes {
		keys[i] = c.OrderKey()
	}
	return keys
}

// Descendants returns, in ascending order, class and every class deriving
// from it.
func (h *Hierarchy) Descendants(class int) []int {
	var out []int
	for i, c := range h.classes {
		if i == class || c.HasAncestor(class) {
			out = append(out, i)
		}
	}
	return out
}

// String renders one class per entry, e.g. "c0; c1 : c0; c2 : virtual c0, c1".
func (h *Hierarchy) String() string {
	parts := make([]string, len(h.classes))
	for i, c := range h.classes {
		if c.NumParents() == 0 {
			parts[i] = fmt.Sprintf("c%d", i)
			continue
		}
		parts[i] = fmt.Sprintf("c%d : %s", i, c)
	}
	return strings.Join(parts, "; ")
}

func (h *Hierarchy) checkClass(i int) error {
	if i < 0 || i >= len(h.classes) {
		return fmt.Errorf("%w: %d (hierarchy has %d classes)", ErrClassOutOfRange, i, len(h.classes))
	}
	return nil
}
