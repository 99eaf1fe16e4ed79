package hierarchy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsVirtualDiamond(t *testing.T) {
	// c1 : virtual c0; c2 : virtual c0, virtual c1
	h := build(t, 3, true, nil, []base{vb(0)}, []base{vb(0), vb(1)})

	want := [][]int{{2, 0}, {2, 1, 0}}
	if diff := cmp.Diff(want, h.Paths(2, 0)); diff != "" {
		t.Errorf("Paths(2, 0) mismatch (-want +got):\n%s", diff)
	}

	chains, err := h.CastChains(2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"(c0*)(c2*)", "(c0*)(c1*)(c2*)"}, chains)

	assert.Equal(t, 2, h.PathCount(2, 0))
	assert.Equal(t, 0, h.NonVirtualPathCount(2, 0))
	assert.True(t, h.Unambiguous(2, 0))
}

func TestPathsSelfAndUnrelated(t *testing.T) {
	h := build(t, 3, false, nil, nil, []base{nv(1)})

	assert.Equal(t, [][]int{{1}}, h.Paths(1, 1))
	assert.Empty(t, h.Paths(2, 0))
	assert.Empty(t, h.Paths(0, 2))
	assert.Nil(t, h.Paths(5, 0))
	assert.Equal(t, 0, h.PathCount(2, 0))
}

func TestCastChainsOutOfRange(t *testing.T) {
	h := build(t, 2, false, nil)

	_, err := h.CastChains(0, 3)
	assert.ErrorIs(t, err, ErrClassOutOfRange)
	_, err = h.CastChains(-1, 0)
	assert.ErrorIs(t, err, ErrClassOutOfRange)
}

func TestCastChain(t *testing.T) {
	assert.Equal(t, "(c3*)", CastChain([]int{3}))
	assert.Equal(t, "(c0*)(c1*)(c4*)", CastChain([]int{4, 1, 0}))
}

func TestAmbiguity(t *testing.T) {
	// c1 : c0; c2 : c0; c3 : c1, c2 holds two c0 subobjects.
	nonVirtual := build(t, 4, true, nil, []base{nv(0)}, []base{nv(0)}, []base{nv(1), nv(2)})
	// c1 : virtual c0; c2 : virtual c0; c3 : c1, c2 shares one c0.
	shared := build(t, 4, true, nil, []base{vb(0)}, []base{vb(0)}, []base{nv(1), nv(2)})
	// c1 : virtual c0; c2 : c1 reaches c0 by a single path.
	single := build(t, 3, false, nil, []base{vb(0)}, []base{nv(1)})

	tests := []struct {
		name        string
		h           *Hierarchy
		class       int
		ancestor    int
		paths       int
		nonVirtual  int
		unambiguous bool
	}{
		{name: "direct base", h: nonVirtual, class: 1, ancestor: 0, paths: 1, nonVirtual: 1, unambiguous: true},
		{name: "repeated non-virtual base", h: nonVirtual, class: 3, ancestor: 0, paths: 2, nonVirtual: 2, unambiguous: false},
		{name: "intermediate base", h: nonVirtual, class: 3, ancestor: 1, paths: 1, nonVirtual: 1, unambiguous: true},
		{name: "shared virtual base", h: shared, class: 3, ancestor: 0, paths: 2, nonVirtual: 0, unambiguous: true},
		{name: "virtual base via non-virtual step", h: single, class: 2, ancestor: 0, paths: 1, nonVirtual: 0, unambiguous: true},
		{name: "not an ancestor", h: single, class: 0, ancestor: 2, paths: 0, nonVirtual: 0, unambiguous: false},
		{name: "itself", h: single, class: 1, ancestor: 1, paths: 1, nonVirtual: 0, unambiguous: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.paths, tt.h.PathCount(tt.class, tt.ancestor), "PathCount")
			assert.Equal(t, tt.nonVirtual, tt.h.NonVirtualPathCount(tt.class, tt.ancestor), "NonVirtualPathCount")
			assert.Equal(t, tt.unambiguous, tt.h.Unambiguous(tt.class, tt.ancestor), "Unambiguous")
		})
	}

	assert.Equal(t, []int{1, 2}, nonVirtual.UnambiguousAncestors(3))
	assert.Equal(t, []int{0, 1, 2}, shared.UnambiguousAncestors(3))
}

func TestPathsMatchPathCount(t *testing.T) {
	opts := Options{Classes: 4, MaxParents: 3, Diamond: true}
	for h := range All(opts) {
		for from := 0; from < h.Len(); from++ {
			for to := 0; to < h.Len(); to++ {
				require.Len(t, h.Paths(from, to), h.PathCount(from, to), "%s: %d -> %d", h, from, to)
			}
		}
	}
}
