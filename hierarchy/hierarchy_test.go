package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type base struct {
	class   int
	virtual bool
}

func nv(class int) base { return base{class: class} }
func vb(class int) base { return base{class: class, virtual: true} }

// build places one class per argument, adding the listed bases in order.
func build(t *testing.T, n int, diamond bool, classes ...[]base) *Hierarchy {
	t.Helper()
	h := New(n)
	for i, bases := range classes {
		c := h.Root()
		for _, b := range bases {
			next, ok := Extend(h, c, b.class, b.virtual, diamond)
			require.Truef(t, ok, "class %d: cannot add base %+v", i, b)
			c = next
		}
		h = h.Append(c)
	}
	return h
}

func TestParentEncoding(t *testing.T) {
	p := NewParent(2, false, 5)
	assert.Equal(t, Parent(2), p)
	assert.Equal(t, 2, p.Class(5))
	assert.False(t, p.Virtual(5))
	assert.Equal(t, "c2", p.Format(5))

	p = NewParent(2, true, 5)
	assert.Equal(t, Parent(7), p)
	assert.Equal(t, 2, p.Class(5))
	assert.True(t, p.Virtual(5))
	assert.Equal(t, "virtual c2", p.Format(5))
}

func TestHierarchyAppendIsCopyOnWrite(t *testing.T) {
	h := build(t, 3, false, nil)
	a := h.Append(h.Root())
	b := h.Append(h.Root())

	require.Equal(t, 1, h.Len())
	require.Equal(t, 2, a.Len())
	require.Equal(t, 2, b.Len())
	assert.NotSame(t, a.Class(1), b.Class(1))
	assert.False(t, h.Full())
	assert.False(t, a.Full())
}

func TestConnected(t *testing.T) {
	tests := []struct {
		name string
		h    *Hierarchy
		want bool
	}{
		{name: "empty", h: New(3), want: false},
		{name: "single class", h: build(t, 3, false, nil), want: true},
		{name: "isolated class", h: build(t, 3, false, nil, nil), want: false},
		{name: "chain", h: build(t, 3, false, nil, []base{nv(0)}, []base{vb(1)}), want: true},
		{name: "reverse edge only", h: build(t, 3, false, nil, nil, []base{nv(0), nv(1)}), want: true},
		{name: "second component", h: build(t, 4, false, nil, []base{nv(0)}, nil, nil), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.h.Connected())
		})
	}
}

func TestDescendants(t *testing.T) {
	h := build(t, 4, true, nil, []base{vb(0)}, []base{nv(1)}, nil)

	assert.Equal(t, []int{0, 1, 2}, h.Descendants(0))
	assert.Equal(t, []int{1, 2}, h.Descendants(1))
	assert.Equal(t, []int{2}, h.Descendants(2))
	assert.Equal(t, []int{3}, h.Descendants(3))
}

func TestHierarchyString(t *testing.T) {
	h := build(t, 3, true, nil, []base{vb(0)}, []base{vb(0), nv(1)})
	assert.Equal(t, "c0; c1 : virtual c0; c2 : virtual c0, c1", h.String())
}

func TestOrderKey(t *testing.T) {
	h := build(t, 2, false, nil, nil)
	root := h.Root()
	assert.Equal(t, uint64(0), root.OrderKey())

	// entry = (0+1)*(0+1) = 1, then *2*(2+1)
	c, ok := Extend(h, root, 0, false, false)
	require.True(t, ok)
	assert.Equal(t, uint64(6), c.OrderKey())

	// entry = (0+1)*(1+1) = 2
	c, ok = Extend(h, root, 0, true, false)
	require.True(t, ok)
	assert.Equal(t, uint64(12), c.OrderKey())

	// [c0, c1]: ((1*6)+2)*6
	c, ok = Extend(h, root, 0, false, false)
	require.True(t, ok)
	c, ok = Extend(h, c, 1, false, false)
	require.True(t, ok)
	assert.Equal(t, uint64(48), c.OrderKey())
}
