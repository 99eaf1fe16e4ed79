package vtmap

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord("4005d0 601e20 0x602000 3")
	require.NoError(t, err)
	assert.Equal(t, Record{CallSite: 0x4005d0, VTable: 0x601e20, Map: 0x602000, Size: 3}, rec)

	for _, line := range []string{
		"",
		"4005d0",
		"4005d0 601e20 602000",
		"4005d0 601e20 602000 -1",
		"4005d0 601e20 602000 x",
		"Not all map entries used",
	} {
		_, err := ParseRecord(line)
		assert.ErrorIs(t, err, ErrMalformedRecord, line)
	}

	_, err = ParseRecord("4005d0  zz 602000 3")
	assert.ErrorContains(t, err, "vtable at column 9")
	_, err = ParseRecord("4005d0 601e20 602000 -1")
	assert.ErrorContains(t, err, "size at column 22")
}

func TestAccumulatorReport(t *testing.T) {
	input := strings.Join([]string{
		"400100 a00 b00 2",
		"400100 a10 b00 2",
		"400100 a10 b00 2",
		"400050 a00 c00 3",
		"garbage line",
		"",
		"900000 a00 d00 5",
	}, "\n")

	acc := NewAccumulator(0x800000, nil)
	require.NoError(t, acc.Feed(strings.NewReader(input)))
	rep := acc.Report()

	require.Len(t, rep.Sites, 2)
	assert.Equal(t, uint64(0x400050), rep.Sites[0].CallSite)
	assert.Equal(t, []uint64{0xa00}, rep.Sites[0].Observed)
	assert.Equal(t, 2, rep.Sites[0].Unused())
	assert.Equal(t, uint64(0x400100), rep.Sites[1].CallSite)
	assert.Equal(t, []uint64{0xa00, 0xa10}, rep.Sites[1].Observed)
	assert.Equal(t, 0, rep.Sites[1].Unused())

	assert.Equal(t, uint64(5), rep.Total)
	assert.Equal(t, uint64(3), rep.Covered)
	assert.Equal(t, 1, rep.Skipped)
	assert.Equal(t, 1, rep.Filtered)

	incomplete := rep.Incomplete()
	require.Len(t, incomplete, 1)
	assert.Equal(t, uint64(0x400050), incomplete[0].CallSite)
}

func TestAccumulatorFirstRecordFixesSize(t *testing.T) {
	acc := NewAccumulator(0, nil)
	assert.True(t, acc.Add(Record{CallSite: 1, VTable: 10, Map: 100, Size: 1}))
	assert.True(t, acc.Add(Record{CallSite: 1, VTable: 11, Map: 200, Size: 9}))

	rep := acc.Report()
	require.Len(t, rep.Sites, 1)
	assert.Equal(t, uint64(100), rep.Sites[0].Map)
	assert.Equal(t, 1, rep.Sites[0].Claimed)
	assert.Equal(t, -1, rep.Sites[0].Unused())
	assert.Empty(t, rep.Incomplete())
}

func TestReportWriteTo(t *testing.T) {
	acc := NewAccumulator(0, nil)
	acc.Add(Record{CallSite: 0x10, VTable: 0xa0, Map: 0xb0, Size: 2})
	acc.Add(Record{CallSite: 0x20, VTable: 0xa0, Map: 0xc0, Size: 1})

	var buf bytes.Buffer
	n, err := acc.Report().WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	want := "Not all map entries used\n" +
		"Callsite: 0x10\n" +
		"Map: 0xb0\n" +
		"Map size: 2\n" +
		"Entries used: 1\n" +
		"Entries: 0xa0\n" +
		"3 2\n"
	assert.Equal(t, want, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestReportWriteToError(t *testing.T) {
	rep := &Report{Total: 1, Covered: 1}
	_, err := rep.WriteTo(failingWriter{})
	assert.EqualError(t, err, "disk full")
}

func TestSummaryFeed(t *testing.T) {
	var s Summary
	input := "Not all map entries used\nCallsite: 0x10\n3 2\n10 10\n1 2 3\n"
	require.NoError(t, s.Feed(strings.NewReader(input)))

	assert.Equal(t, 2, s.Runs)
	assert.Equal(t, uint64(13), s.Total)
	assert.Equal(t, uint64(12), s.Covered)
	assert.Equal(t,
		"Total number of entries found in VTable sets: 13 Total number of entries used from VTable sets: 12",
		s.String())
}

func TestReportRoundTripsIntoSummary(t *testing.T) {
	acc := NewAccumulator(0, nil)
	acc.Add(Record{CallSite: 1, VTable: 2, Map: 3, Size: 4})

	var buf bytes.Buffer
	_, err := acc.Report().WriteTo(&buf)
	require.NoError(t, err)

	var s Summary
	require.NoError(t, s.Feed(&buf))
	assert.Equal(t, uint64(4), s.Total)
	assert.Equal(t, uint64(1), s.Covered)
}
