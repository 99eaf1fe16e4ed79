package vtmap

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/skdltmxn/classgen/internal/stream"
)

// Site is the coverage of one call site's verification map.
type Site struct {
	CallSite uint64
	Map      uint64
	Claimed  int
	Observed []uint64 // Distinct vtables, ascending
}

// Unused returns how many claimed entries were never observed. It is
// negative when more vtables were observed than the map claims.
func (s Site) Unused() int {
	return s.Claimed - len(s.Observed)
}

// Report is the finalized coverage of all call sites.
type Report struct {
	Sites    []Site // Ascending by call site
	Total    uint64 // Sum of claimed sizes
	Covered  uint64 // Sum of distinct observed vtables
	Skipped  int    // Malformed lines
	Filtered int    // Records beyond the end address
}

// Incomplete returns the sites whose map claims more entries than were
// observed.
func (r *Report) Incomplete() []Site {
	var out []Site
	for _, s := range r.Sites {
		if s.Unused() > 0 {
			out = append(out, s)
		}
	}
	return out
}

// WriteTo writes a diagnostic block for every site whose claimed size and
// observed count differ, followed by the "<total> <covered>" line read by
// Summary.Feed.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	for _, s := range r.Sites {
		switch {
		case s.Unused() > 0:
			fmt.Fprintln(cw, "Not all map entries used")
		case s.Unused() < 0:
			fmt.Fprintln(cw, "More map entries used than claimed")
		default:
			continue
		}
		fmt.Fprintf(cw, "Callsite: 0x%x\n", s.CallSite)
		fmt.Fprintf(cw, "Map: 0x%x\n", s.Map)
		fmt.Fprintf(cw, "Map size: %d\n", s.Claimed)
		fmt.Fprintf(cw, "Entries used: %d\n", len(s.Observed))
		entries := make([]string, len(s.Observed))
		for i, vt := range s.Observed {
			entries[i] = fmt.Sprintf("0x%x", vt)
		}
		fmt.Fprintf(cw, "Entries: %s\n", strings.Join(entries, ", "))
	}
	fmt.Fprintf(cw, "%d %d\n", r.Total, r.Covered)
	return cw.n, cw.err
}

// Summary sums (total, covered) pairs across runs.
type Summary struct {
	Total   uint64
	Covered uint64
	Runs    int
}

// Add folds one run into the summary.
func (s *Summary) Add(total, covered uint64) {
	s.Total += total
	s.Covered += covered
	s.Runs++
}

// Feed adds every "<total> <covered>" line read from r; other lines are
// ignored.
func (s *Summary) Feed(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fr := stream.NewReader(sc.Text())
		total, err := fr.ReadUint()
		if err != nil {
			continue
		}
		covered, err := fr.ReadUint()
		if err != nil || !fr.Done() {
			continue
		}
		s.Add(total, covered)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("vtmap: failed to read summaries: %w", err)
	}
	return nil
}

func (s *Summary) String() string {
	return fmt.Sprintf("Total number of entries found in VTable sets: %d Total number of entries used from VTable sets: %d",
		s.Total, s.Covered)
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
