package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"charm.land/log/v2"
	"github.com/spf13/cobra"

	"elmtl/internal/cli"
	"elmtl/internal/cli/commands"
	"elmtl/internal/config"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "elmtl",
		Short: "Parallel elm-test runner and test label toolkit",
		Long: `Run Elm test modules in parallel with elm-test, browse failures by their
hierarchical label paths and resolve elmTest:// locations to source lines.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "elmtl"})

	// Project config: defaults, .elmtl.yaml, then .env and ELMTL_* variables
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var flags cli.Flags
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print debug logs")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if flags.Verbose {
			logger.SetLevel(log.DebugLevel)
		}
	}

	cmds := commands.NewCommands(cfg, logger)
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
