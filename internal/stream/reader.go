// Package stream provides field reading utilities for line-oriented
// instrumentation reports.
package stream

import (
	"errors"
	"strconv"
)

// Errors returned by Reader
var (
	ErrUnexpectedEOF  = errors.New("stream: unexpected end of data")
	ErrInvalidNumeric = errors.New("stream: invalid numeric encoding")
)

// Reader reads whitespace-separated numeric fields from one line of text.
type Reader struct {
	data   string
	offset int
}

// NewReader creates a Reader over a single line.
func NewReader(data string) *Reader {
	return &Reader{data: data, offset: 0}
}

// Offset returns the current read position as a byte index into the line.
func (r *Reader) Offset() int {
	return r.offset
}

// Remaining returns the number of bytes remaining.
func (r *Reader) Remaining() int {
	if r.offset >= len(r.data) {
		return 0
	}
	return len(r.data) - r.offset
}

// SkipSpace advances past blanks, tabs and carriage returns.
func (r *Reader) SkipSpace() {
	for r.offset < len(r.data) && isSpace(r.data[r.offset]) {
		r.offset++
	}
}

// Done reports whether only blanks remain.
func (r *Reader) Done() bool {
	r.SkipSpace()
	return r.Remaining() == 0
}

// ReadToken returns the next whitespace-delimited field.
func (r *Reader) ReadToken() (string, error) {
	r.SkipSpace()
	start := r.offset
	for r.offset < len(r.data) && !isSpace(r.data[r.offset]) {
		r.offset++
	}
	if start == r.offset {
		return "", ErrUnexpectedEOF
	}
	return r.data[start:r.offset], nil
}

// ReadHex reads a hexadecimal field, with or without a 0x prefix.
func (r *Reader) ReadHex() (uint64, error) {
	tok, err := r.ReadToken()
	if err != nil {
		return 0, err
	}
	if len(tok) > 2 && tok[0] == '0' && (tok[1] == 'x' || tok[1] == 'X') {
		tok = tok[2:]
	}
	v, err := strconv.ParseUint(tok, 16, 64)
	if err != nil {
		return 0, ErrInvalidNumeric
	}
	return v, nil
}

// ReadUint reads an unsigned decimal field.
func (r *Reader) ReadUint() (uint64, error) {
	tok, err := r.ReadToken()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, ErrInvalidNumeric
	}
	return v, nil
}

// ReadInt reads a signed decimal field.
func (r *Reader) ReadInt() (int64, error) {
	tok, err := r.ReadToken()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, ErrInvalidNumeric
	}
	return v, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
