package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderFields(t *testing.T) {
	r := NewReader("  4005d0\t0x601e20 601f00  -3 17\r\n")

	v, err := r.ReadHex()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x4005d0), v)

	v, err = r.ReadHex()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x601e20), v)

	tok, err := r.ReadToken()
	require.NoError(t, err)
	assert.Equal(t, "601f00", tok)

	i, err := r.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int64(-3), i)

	u, err := r.ReadUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(17), u)

	assert.True(t, r.Done())
	_, err = r.ReadToken()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReaderInvalidNumbers(t *testing.T) {
	tests := []struct {
		name string
		line string
		read func(*Reader) error
	}{
		{name: "hex", line: "zz", read: func(r *Reader) error { _, err := r.ReadHex(); return err }},
		{name: "bare prefix", line: "0x", read: func(r *Reader) error { _, err := r.ReadHex(); return err }},
		{name: "uint", line: "-1", read: func(r *Reader) error { _, err := r.ReadUint(); return err }},
		{name: "int", line: "1.5", read: func(r *Reader) error { _, err := r.ReadInt(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.read(NewReader(tt.line)), ErrInvalidNumeric)
		})
	}
}

func TestReaderOffsets(t *testing.T) {
	r := NewReader("ab  cd")
	assert.Equal(t, 6, r.Remaining())

	_, err := r.ReadToken()
	require.NoError(t, err)
	assert.Equal(t, 2, r.Offset())

	r.SkipSpace()
	assert.Equal(t, 4, r.Offset())
	tok, err := r.ReadToken()
	require.NoError(t, err)
	assert.Equal(t, "cd", tok)
	assert.Equal(t, 6, r.Offset())
	assert.Equal(t, 0, r.Remaining())
}
