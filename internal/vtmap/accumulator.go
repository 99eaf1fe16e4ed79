package vtmap

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Accumulator collects call-site records. It starts empty, is fed one
// record at a time and is finalized with Report.
type Accumulator struct {
	end      uint64
	sites    map[uint64]*siteState
	skipped  int
	filtered int
	log      *zap.Logger
}

type siteState struct {
	mapAddr  uint64
	claimed  int
	observed map[uint64]struct{}
}

// NewAccumulator returns an empty accumulator. Call sites at or above end
// are ignored unless end is zero. A nil logger discards diagnostics.
func NewAccumulator(end uint64, logger *zap.Logger) *Accumulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Accumulator{
		end:   end,
		sites: make(map[uint64]*siteState),
		log:   logger,
	}
}

// Add records one observation and reports whether it was kept. The first
// record of a call site fixes its map address and claimed size.
func (a *Accumulator) Add(rec Record) bool {
	if a.end != 0 && rec.CallSite >= a.end {
		a.filtered++
		return false
	}
	s, ok := a.sites[rec.CallSite]
	if !ok {
		s = &siteState{
			mapAddr:  rec.Map,
			claimed:  rec.Size,
			observed: make(map[uint64]struct{}),
		}
		a.sites[rec.CallSite] = s
	}
	s.observed[rec.VTable] = struct{}{}
	return true
}

// Feed adds every well-formed record read from r. Malformed lines are
// counted and skipped.
func (a *Accumulator) Feed(r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := ParseRecord(text)
		if err != nil {
			a.skipped++
			a.log.Debug("skipping report line", zap.Int("line", line), zap.Error(err))
			continue
		}
		a.Add(rec)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("vtmap: failed to read report: %w", err)
	}
	return nil
}

// Report finalizes the accumulated observations. The accumulator may keep
// being fed afterwards.
func (a *Accumulator) Report() *Report {
	rep := &Report{
		Skipped:  a.skipped,
		Filtered: a.filtered,
		Sites:    make([]Site, 0, len(a.sites)),
	}
	for addr, s := range a.sites {
		observed := make([]uint64, 0, len(s.observed))
		for vt := range s.observed {
			observed = append(observed, vt)
		}
		slices.Sort(observed)

		rep.Sites = append(rep.Sites, Site{
			CallSite: addr,
			Map:      s.mapAddr,
			Claimed:  s.claimed,
			Observed: observed,
		})
		rep.Total += uint64(s.claimed)
		rep.Covered += uint64(len(observed))
	}
	slices.SortFunc(rep.Sites, func(x, y Site) int {
		switch {
		case x.CallSite < y.CallSite:
			return -1
		case x.CallSite > y.CallSite:
			return 1
		}
		return 0
	})
	return rep
}
