// Package vtmap checks vtable-map coverage reported by instrumented test
// programs: for every indirect call site it compares the size each
// verification map claims with the number of distinct vtables observed.
package vtmap

import (
	"errors"
	"fmt"

	"github.com/skdltmxn/classgen/internal/stream"
)

// ErrMalformedRecord indicates a report line that is not a call-site record.
var ErrMalformedRecord = errors.New("vtmap: malformed record")

// Record is one observation: call site, vtable used, verification map and
// the map's claimed size.
type Record struct {
	CallSite uint64
	VTable   uint64
	Map      uint64
	Size     int
}

// ParseRecord parses "<callsite> <vtable> <map> <size>", the first three
// fields in hexadecimal and the size in decimal. Errors name the field and
// its 1-based column.
func ParseRecord(line string) (Record, error) {
	r := stream.NewReader(line)
	fail := func(field string, column int, err error) (Record, error) {
		return Record{}, fmt.Errorf("%w: %s at column %d: %v", ErrMalformedRecord, field, column+1, err)
	}

	var rec Record
	hex := []struct {
		name string
		dst  *uint64
	}{
		{"call site", &rec.CallSite},
		{"vtable", &rec.VTable},
		{"map", &rec.Map},
	}
	for _, f := range hex {
		r.SkipSpace()
		column := r.Offset()
		v, err := r.ReadHex()
		if err != nil {
			return fail(f.name, column, err)
		}
		*f.dst = v
	}

	r.SkipSpace()
	column := r.Offset()
	size, err := r.ReadInt()
	if err != nil {
		return fail("size", column, err)
	}
	if size < 0 {
		return fail("size", column, fmt.Errorf("negative size %d", size))
	}
	rec.Size = int(size)
	return rec, nil
}
