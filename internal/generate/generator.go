// Package generate drives the hierarchy search and writes one test program
// per accepted hierarchy.
package generate

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/skdltmxn/classgen/hierarchy"
	"github.com/skdltmxn/classgen/internal/config"
	"github.com/skdltmxn/classgen/internal/emit"
)

// EmitError reports a program that could not be written.
type EmitError struct {
	ID  int
	Err error
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("generate: program %d: %v", e.ID, e.Err)
}

func (e *EmitError) Unwrap() error { return e.Err }

// Stats summarizes a run.
type Stats struct {
	Hierarchies int   // Accepted hierarchies
	Programs    int   // Files written
	ByDepth     []int // Accepted hierarchies indexed by class count
}

// Generator writes programs for every hierarchy a configuration accepts.
type Generator struct {
	cfg  config.Config
	sink emit.Sink
	log  *zap.Logger
}

// New creates a generator. A nil logger discards log output.
func New(cfg config.Config, sink emit.Sink, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{cfg: cfg, sink: sink, log: logger}
}

// Run validates the configuration and walks the search, writing programs
// numbered from 1. Up to cfg.Concurrency() programs are written at once;
// file contents depend only on the hierarchy, its number and the seed. Run
// stops at the first write failure or when ctx is done.
func (g *Generator) Run(ctx context.Context) (Stats, error) {
	if err := g.cfg.Validate(); err != nil {
		return Stats{}, err
	}

	opts := g.cfg.SearchOptions()
	mode := g.cfg.OverrideMode()
	variants := g.cfg.Variants()
	stats := Stats{ByDepth: make([]int, opts.Classes+1)}

	g.log.Info("starting generation",
		zap.Int("classes", opts.Classes),
		zap.Int("max_parents", opts.MaxParents),
		zap.Bool("diamond", opts.Diamond),
		zap.Stringer("override", mode),
		zap.Int("variants", variants),
		zap.Int("workers", g.cfg.Concurrency()))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Concurrency())
	var written atomic.Int64

	id := 0
	walkErr := hierarchy.Walk(opts, func(h *hierarchy.Hierarchy) error {
		if err := egctx.Err(); err != nil {
			return err
		}
		stats.Hierarchies++
		stats.ByDepth[h.Len()]++

		for v := 0; v < variants; v++ {
			id++
			programID := id
			eg.Go(func() error {
				if err := egctx.Err(); err != nil {
					return err
				}
				if err := g.write(h, mode, programID); err != nil {
					return err
				}
				written.Add(1)
				return nil
			})
		}
		return nil
	})
	err := eg.Wait()
	stats.Programs = int(written.Load())
	if err == nil {
		err = walkErr
	}
	if err != nil {
		var ee *EmitError
		if errors.As(err, &ee) {
			g.log.Error("failed to write program", zap.Int("id", ee.ID), zap.Error(ee.Err))
		}
		return stats, err
	}

	g.log.Info("generation finished",
		zap.Int("hierarchies", stats.Hierarchies),
		zap.Int("programs", stats.Programs))
	return stats, nil
}

func (g *Generator) write(h *hierarchy.Hierarchy, mode emit.OverrideMode, id int) error {
	e := &emit.Emitter{Override: mode}
	if mode == emit.OverrideRandom {
		e.Rand = rand.New(rand.NewPCG(g.cfg.Seed, uint64(id)))
	}

	w, err := g.sink.Create(id)
	if err != nil {
		return &EmitError{ID: id, Err: err}
	}
	if err := e.Emit(w, h, id); err != nil {
		w.Close()
		return &EmitError{ID: id, Err: err}
	}
	if err := w.Close(); err != nil {
		return &EmitError{ID: id, Err: err}
	}

	g.log.Debug("wrote program", zap.Int("id", id), zap.Stringer("hierarchy", h))
	return nil
}
