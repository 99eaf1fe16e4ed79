// Package emit renders class hierarchies as self-contained C++ test programs.
//
// Every program constructs, dispatches through and destroys each class of
// the hierarchy along every cast chain that reaches it, so that a compiler's
// base layout, vtable construction and devirtualization are exercised for
// the whole topology.
package emit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/skdltmxn/classgen/hierarchy"
)

// ErrNoRandomSource indicates random overrides were requested without a source.
var ErrNoRandomSource = errors.New("emit: random override mode requires a random source")

// Emitter writes test programs.
type Emitter struct {
	Override OverrideMode
	// Rand decides overrides in OverrideRandom mode. Seed it per program to
	// keep output reproducible.
	Rand *rand.Rand
}

// Emit writes the program for h to w. id only appears in the header comment.
func (e *Emitter) Emit(w io.Writer, h *hierarchy.Hierarchy, id int) error {
	if e.Override == OverrideRandom && e.Rand == nil {
		return ErrNoRandomSource
	}

	p := &printer{w: bufio.NewWriter(w)}
	p.line("// classgen hierarchy %d: %d classes", id, h.Len())
	p.line("// %s", h)

	for i := 0; i < h.Len(); i++ {
		e.emitClass(p, h, i)
	}
	emitMain(p, h)

	if p.err != nil {
		return p.err
	}
	return p.w.Flush()
}

func (e *Emitter) emitClass(p *printer, h *hierarchy.Hierarchy, i int) {
	c := h.Class(i)
	unambiguous := h.UnambiguousAncestors(i)

	p.line("struct c%d;", i)
	p.line("void __attribute__ ((noinline)) tester%d(c%d* p);", i, i)
	if c.NumParents() > 0 {
		p.line("struct c%d : %s", i, c)
	} else {
		p.line("struct c%d", i)
	}
	p.line("{")
	p.line("bool active%d;", i)
	p.line("c%d() : active%d(true) {}", i, i)

	p.line("virtual ~c%d()", i)
	p.line("{")
	p.line("tester%d(this);", i)
	for _, a := range unambiguous {
		for k, path := range h.Paths(i, a) {
			p.line("c%d *p%d_%d = %s(this);", a, a, k, hierarchy.CastChain(path))
			p.line("tester%d(p%d_%d);", a, a, k)
		}
	}
	p.line("active%d = false;", i)
	p.line("}")

	p.line("virtual void f%d(){}", i)
	if e.Override != OverrideNone {
		for _, a := range c.Ancestors() {
			if e.Override == OverrideRandom && e.Rand.IntN(2) != 0 {
				continue
			}
			p.line("virtual void f%d(){}", a)
		}
	}
	p.line("};")

	// Only members inherited through a single subobject can be named.
	p.line("void __attribute__ ((noinline)) tester%d(c%d* p)", i, i)
	p.line("{")
	p.line("p->f%d();", i)
	for _, a := range c.NonVirtualAncestors() {
		if h.Unambiguous(i, a) {
			p.line("if (p->active%d)", a)
			p.line("p->f%d();", a)
		}
	}
	for _, a := range c.VirtualAncestors() {
		if h.Unambiguous(i, a) {
			p.line("if (p->active%d)", a)
			p.line("p->f%d();", a)
		}
	}
	p.line("}")
}

func emitMain(p *printer, h *hierarchy.Hierarchy) {
	// Keeps the driver loops from being unrolled.
	p.line("int __attribute__ ((noinline)) inc(int v) {return ++v;}")
	p.line("int main()")
	p.line("{")
	for i := 0; i < h.Len(); i++ {
		var inits []string
		for _, d := range h.Descendants(i) {
			for _, path := range h.Paths(d, i) {
				inits = append(inits, fmt.Sprintf("%s(new c%d())", hierarchy.CastChain(path), d))
			}
		}

		p.line("c%d* ptrs%d[%d];", i, i, len(inits))
		for k, init := range inits {
			p.line("ptrs%d[%d] = %s;", i, k, init)
		}
		p.line("for (int i=0;i<%d;i=inc(i))", len(inits))
		p.line("{")
		p.line("tester%d(ptrs%d[i]);", i, i)
		p.line("delete ptrs%d[i];", i)
		p.line("}")
	}
	p.line("return 0;")
	p.line("}")
}

// printer keeps the first write error and drops everything after it.
type printer struct {
	w   *bufio.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintf(p.w, format, args...); err != nil {
		p.err = err
		return
	}
	p.err = p.w.WriteByte('\n')
}
