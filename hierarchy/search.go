package hierarchy

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// MaxClasses bounds the class count so that order keys fit in 64 bits.
const MaxClasses = 10

// Options controls the shape of the enumerated hierarchies.
type Options struct {
	Classes    int  // Number of classes in a full hierarchy
	MaxParents int  // Maximum number of direct bases per class
	Diamond    bool // Allow an ancestor to be reached through several direct bases
}

// Validate checks that the options describe a finite, encodable search.
func (o Options) Validate() error {
	if o.Classes < 1 || o.Classes > MaxClasses {
		return &OptionError{Field: "classes", Value: o.Classes, Message: fmt.Sprintf("must be between 1 and %d", MaxClasses)}
	}
	if o.MaxParents < 0 {
		return &OptionError{Field: "max_parents", Value: o.MaxParents, Message: "must not be negative"}
	}
	return nil
}

// Candidates returns every legal configuration of the next class of h,
// with between zero and maxParents direct bases. The configuration with no
// bases comes first; the rest follow in depth-first order, trying each
// candidate base in ascending index order, non-virtual before virtual.
func Candidates(h *Hierarchy, maxParents int, diamond bool) []*Class {
	var out []*Class
	var extend func(c *Class)
	extend = func(c *Class) {
		out = append(out, c)
		if c.NumParents() >= maxParents {
			return
		}
		for p := 0; p < h.Len(); p++ {
			if next, ok := Extend(h, c, p, false, diamond); ok {
				extend(next)
			}
			if next, ok := Extend(h, c, p, true, diamond); ok {
				extend(next)
			}
		}
	}
	extend(h.Root())
	return out
}

// Walk enumerates hierarchies depth first and calls fn for every one whose
// classes form a single connected component, partial hierarchies included.
// Order keys never decrease from one class to the next. When two adjacent
// classes share a key and could trade places, only the order with the
// smaller base list first is visited, so a hierarchy that merely reorders
// the same class configurations is visited once.
//
// An error from fn ends the walk and is returned, except ErrStop which ends
// it quietly.
func Walk(opts Options, fn func(*Hierarchy) error) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	err := walk(New(opts.Classes), opts, fn)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func walk(h *Hierarchy, opts Options, fn func(*Hierarchy) error) error {
	if h.Connected() {
		if err := fn(h); err != nil {
			return err
		}
	}
	if h.Full() {
		return nil
	}

	for _, c := range Candidates(h, opts.MaxParents, opts.Diamond) {
		if !inOrder(h, c) {
			continue
		}
		if err := walk(h.Append(c), opts, fn); err != nil {
			return err
		}
	}
	return nil
}

// inOrder reports whether c may follow the last class of h.
func inOrder(h *Hierarchy, c *Class) bool {
	if h.Len() == 0 {
		return true
	}
	last := h.Len() - 1
	prev := h.classes[last]
	key, prevKey := c.OrderKey(), prev.OrderKey()
	switch {
	case key < prevKey:
		return false
	case key > prevKey:
		return true
	}
	// Equal keys: c can only be declared before prev if it does not derive
	// from it.
	if c.HasDirectParent(last) {
		return true
	}
	return slices.Compare(c.parents, prev.parents) >= 0
}

// All returns an iterator over the hierarchies Walk visits. Invalid options
// yield nothing.
func All(opts Options) iter.Seq[*Hierarchy] {
	return func(yield func(*Hierarchy) bool) {
		_ = Walk(opts, func(h *Hierarchy) error {
			if !yield(h) {
				return ErrStop
			}
			return nil
		})
	}
}
