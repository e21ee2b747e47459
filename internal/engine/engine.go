// Package engine implements the fixed-point driver (C8) that alternates
// FD/IND closure, BCNF decomposition, and subsumption to convergence.
package engine

import (
	"github.com/schemanorm/schemanorm/internal/decompose"
	"github.com/schemanorm/schemanorm/internal/schema"
	"github.com/schemanorm/schemanorm/internal/subsume"
)

// Options configures a driver run, mapped 1:1 from the CLI flags of
// SPEC_FULL.md §6.
type Options struct {
	Normalize   bool
	Subsume     bool
	MinimizeFDs bool
	RetainFKs   bool
	UseStats    bool
	FDThreshold *float64
}

// Run executes the pre-steps then the repeat-until-fixed-point loop of
// spec.md §4.7:
//
//	for each table: (optionally minimize_fds); fds.closure()
//	if retain_fks: schema.retain_fk_inds()
//	schema.copy_fds()
//	schema.ind_closure()
//	repeat:
//	  changed = false
//	  if normalize_enabled:  changed |= normalize()
//	  if subsume_enabled:    changed |= subsume()
//	until not changed
func Run(s *schema.Schema, opts Options) {
	for _, name := range s.SortedTableNames() {
		t := s.Tables[name]
		if opts.MinimizeFDs {
			t.MinimizeFDs()
		}
		t.Closure()
	}

	if opts.RetainFKs {
		s.RetainFKInds()
	}
	s.CopyFDs()
	s.INDClosure()

	changed := true
	for changed {
		changed = false
		if opts.Normalize {
			if decompose.Normalize(s, opts.UseStats, opts.FDThreshold) {
				changed = true
			}
		}
		if opts.Subsume {
			if subsume.Subsume(s) {
				changed = true
			}
		}
	}
}
