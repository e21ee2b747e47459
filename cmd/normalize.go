package cmd

import (
	"fmt"
	"os"

	"github.com/schemanorm/schemanorm/internal/config"
	"github.com/schemanorm/schemanorm/internal/engine"
	"github.com/schemanorm/schemanorm/internal/loader"
	"github.com/schemanorm/schemanorm/internal/logger"
	"github.com/schemanorm/schemanorm/internal/parser"
	"github.com/spf13/cobra"
)

var (
	noNorm           bool
	noSubsume        bool
	ignoreMissing    bool
	minimizeFDs      bool
	retainFKs        bool
	useStats         bool
	fdThreshold      float64
	showDependencies bool
)

var NormalizeCmd = &cobra.Command{
	Use:   "normalize <input>",
	Short: "Normalize a schema description into BCNF with subsumption",
	Args:  cobra.ExactArgs(1),
	RunE:  runNormalize,
}

func init() {
	NormalizeCmd.Flags().BoolVar(&noNorm, "no-norm", false, "Disable BCNF decomposition")
	NormalizeCmd.Flags().BoolVar(&noSubsume, "no-subsume", false, "Disable subsumption/merging")
	NormalizeCmd.Flags().BoolVar(&ignoreMissing, "ignore-missing", false, "Skip FD/IND declarations referencing unknown tables instead of failing")
	NormalizeCmd.Flags().BoolVar(&minimizeFDs, "minimize-fds", false, "Minimize FDs before closure")
	NormalizeCmd.Flags().BoolVar(&retainFKs, "retain-fks", false, "Retain only INDs that represent foreign keys")
	NormalizeCmd.Flags().BoolVar(&useStats, "use-stats", false, "Use statistics-guided scoring for decomposition and key selection")
	NormalizeCmd.Flags().Float64Var(&fdThreshold, "fd-threshold", 0, "Minimum violating-FD score to act on (requires --use-stats)")
	NormalizeCmd.Flags().BoolVar(&showDependencies, "show-dependencies", false, "Print remaining FDs/INDs on completion")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	opts := config.Options{
		Input:            args[0],
		NoNorm:           noNorm,
		NoSubsume:        noSubsume,
		IgnoreMissing:    ignoreMissing,
		MinimizeFDs:      minimizeFDs,
		RetainFKs:        retainFKs,
		UseStats:         useStats,
		ShowDependencies: showDependencies,
	}
	if cmd.Flags().Changed("fd-threshold") {
		opts.FDThresholdSet = true
		opts.FDThreshold = &fdThreshold
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	logger.Get().Info("loading schema", "input", opts.Input)
	f, err := os.Open(opts.Input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	doc, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	s, err := loader.LoadDocument(doc, opts.IgnoreMissing, opts.UseStats)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	engine.Run(s, opts.EngineOptions())

	if opts.ShowDependencies {
		fmt.Print(s.String())
	} else {
		for _, name := range s.SortedTableNames() {
			fmt.Println(s.Tables[name].String())
		}
	}
	return nil
}
