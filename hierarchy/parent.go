package hierarchy

import "fmt"

// Parent encodes a direct base class. Values in [0,n) name a non-virtual
// base; values in [n,2n) name the virtual base index-n, where n is the class
// count of the hierarchy.
type Parent int

// NewParent encodes class as a direct base, virtual or not.
func NewParent(class int, virtual bool, n int) Parent {
	if virtual {
		return Parent(class + n)
	}
	return Parent(class)
}

// Class returns the index of the base class.
func (p Parent) Class(n int) int {
	return int(p) % n
}

// Virtual reports whether the base is inherited virtually.
func (p Parent) Virtual(n int) bool {
	return int(p) >= n
}

// Format renders the base the way it appears in a base-specifier list.
func (p Parent) Format(n int) string {
	if p.Virtual(n) {
		return fmt.Sprintf("virtual c%d", p.Class(n))
	}
	return fmt.Sprintf("c%d", p.Class(n))
}
