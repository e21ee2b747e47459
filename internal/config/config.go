// Package config validates CLI options and maps them onto the
// engine's Options struct.
package config

import (
	"errors"

	"github.com/schemanorm/schemanorm/internal/engine"
)

// ErrThresholdWithoutStats is returned when --fd-threshold is given
// without --use-stats (spec.md §6).
var ErrThresholdWithoutStats = errors.New("--fd-threshold requires --use-stats")

// Options mirrors the CLI flag surface of SPEC_FULL.md §6.
type Options struct {
	Input            string
	NoNorm           bool
	NoSubsume        bool
	IgnoreMissing    bool
	MinimizeFDs      bool
	RetainFKs        bool
	UseStats         bool
	FDThreshold      *float64
	FDThresholdSet   bool
	ShowDependencies bool
}

// Validate checks the cross-flag constraint spec.md §6 requires.
func (o Options) Validate() error {
	if o.FDThresholdSet && !o.UseStats {
		return ErrThresholdWithoutStats
	}
	return nil
}

// EngineOptions maps the validated CLI options onto engine.Options.
func (o Options) EngineOptions() engine.Options {
	return engine.Options{
		Normalize:   !o.NoNorm,
		Subsume:     !o.NoSubsume,
		MinimizeFDs: o.MinimizeFDs,
		RetainFKs:   o.RetainFKs,
		UseStats:    o.UseStats,
		FDThreshold: o.FDThreshold,
	}
}
