package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schemanorm/schemanorm/internal/logger"
	"github.com/schemanorm/schemanorm/internal/version"
	"github.com/spf13/cobra"
)

var debug bool

var RootCmd = &cobra.Command{
	Use:   "schemanorm",
	Short: "Schema normalization and subsumption engine",
	Long: fmt.Sprintf(`schemanorm rewrites a denormalized relational schema into an
equivalent in Boyce-Codd Normal Form, folding away redundancy
expressible via inclusion dependencies.

Version: %s

Use "schemanorm normalize --help" for details.`, version.Version()),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	RootCmd.AddCommand(NormalizeCmd)
}

func setupLogger() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger.SetGlobal(slog.New(handler), debug)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
