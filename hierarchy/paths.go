package hierarchy

import (
	"strconv"
	"strings"
)

// Paths returns every chain of direct-inheritance steps leading from class
// from to its ancestor to. Each chain starts with from and ends with to.
// Chains are ordered by the declaration order of the direct bases taken.
//
// from == to yields the single chain [from]; an unrelated pair yields none.
func (h *Hierarchy) Paths(from, to int) [][]int {
	if from < 0 || from >= len(h.classes) || to < 0 || to >= len(h.classes) {
		return nil
	}
	if from == to {
		return [][]int{{from}}
	}
	var out [][]int
	for _, p := range h.classes[from].parents {
		for _, tail := range h.Paths(p.Class(h.n), to) {
			chain := make([]int, 0, len(tail)+1)
			chain = append(chain, from)
			out = append(out, append(chain, tail...))
		}
	}
	return out
}

// CastChains renders every path from from to to as a C-style cast chain,
// innermost cast first, e.g. "(c0*)(c1*)(c2*)".
func (h *Hierarchy) CastChains(from, to int) ([]string, error) {
	if err := h.checkClass(from); err != nil {
		return nil, err
	}
	if err := h.checkClass(to); err != nil {
		return nil, err
	}
	paths := h.Paths(from, to)
	out := make([]string, len(paths))
	for i, path := range paths {
		out[i] = CastChain(path)
	}
	return out, nil
}

// CastChain renders a path from descendant to ancestor as a sequence of
// casts applied right to left.
func CastChain(path []int) string {
	var b strings.Builder
	for i := len(path) - 1; i >= 0; i-- {
		b.WriteString("(c")
		b.WriteString(strconv.Itoa(path[i]))
		b.WriteString("*)")
	}
	return b.String()
}

// PathCount returns the number of inheritance paths from from to to,
// regardless of virtuality.
func (h *Hierarchy) PathCount(from, to int) int {
	if from == to {
		return 1
	}
	count := 0
	for _, p := range h.classes[from].parents {
		count += h.PathCount(p.Class(h.n), to)
	}
	return count
}

// NonVirtualPathCount returns the number of paths from from to to whose
// final step enters to through a non-virtual base specifier. Each such path
// may contribute a distinct subobject of to.
func (h *Hierarchy) NonVirtualPathCount(from, to int) int {
	if from == to {
		return 0
	}
	count := 0
	for _, p := range h.classes[from].parents {
		base := p.Class(h.n)
		if base == to {
			if !p.Virtual(h.n) {
				count++
			}
			continue
		}
		count += h.NonVirtualPathCount(base, to)
	}
	return count
}

// Unambiguous reports whether members of ancestor can be named through a
// pointer to class without ambiguity: a non-virtually inherited ancestor
// must be reached by exactly one non-virtual path, and a virtually
// inherited one by none.
func (h *Hierarchy) Unambiguous(class, ancestor int) bool {
	c := h.classes[class]
	switch {
	case c.IsNonVirtualAncestor(ancestor):
		return h.NonVirtualPathCount(class, ancestor) == 1
	case c.IsVirtualAncestor(ancestor):
		return h.NonVirtualPathCount(class, ancestor) == 0
	default:
		return false
	}
}

// UnambiguousAncestors returns, in ascending order, the ancestors of class
// that Unambiguous accepts.
func (h *Hierarchy) UnambiguousAncestors(class int) []int {
	var out []int
	for _, a := range h.classes[class].Ancestors() {
		if h.Unambiguous(class, a) {
			out = append(out, a)
		}
	}
	return out
}
