package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/rimlocale/internal/archive"
	"codeberg.org/snonux/rimlocale/internal/cli"
	"codeberg.org/snonux/rimlocale/internal/logging"
	"codeberg.org/snonux/rimlocale/internal/models"
	"codeberg.org/snonux/rimlocale/internal/processor"
	"codeberg.org/snonux/rimlocale/internal/report"
)

// errUnitsFailed makes the process exit non-zero after the summary was logged
var errUnitsFailed = errors.New("some translations failed")

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUnitsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	flags.LoadFromViper()
	if len(args) > 0 {
		flags.InputDir = args[0]
	}

	log := logging.New(logging.Options{
		Level:   flags.LogLevel,
		Format:  flags.LogFormat,
		NoColor: flags.NoColor,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Handle --archive-cache flag
	if flags.ArchiveCache {
		dest, err := archive.ArchiveDir(flags.CacheDir, "prompt-cache")
		if err != nil {
			return fmt.Errorf("failed to archive prompt cache: %w", err)
		}
		log.Info().Str("archive", dest).Msg("prompt cache archived")
		return nil
	}

	// Handle --last-run flag
	if flags.LastRun {
		if flags.ReportDB == "" {
			return errors.New("--last-run needs --report-db")
		}
		store, err := report.Open(flags.ReportDB)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.WriteLastRun(ctx, cmd.OutOrStdout())
	}

	// Handle --list-models flag
	if flags.ListModels {
		apiKey, err := cli.RequireAPIKey("openai")
		if err != nil {
			return err
		}
		lister := models.NewLister(apiKey, flags.BaseURL)
		return lister.ListAvailableModels(ctx, cmd.OutOrStdout())
	}

	if flags.DryRun {
		proc, err := processor.NewProcessor(flags, nil, log)
		if err != nil {
			return err
		}
		_, err = proc.Run(ctx)
		return err
	}

	apiKey, err := cli.RequireAPIKey(flags.Provider)
	if err != nil {
		return err
	}

	provider, cached, err := processor.BuildProvider(ctx, flags, apiKey, log)
	if err != nil {
		return err
	}

	proc, err := processor.NewProcessor(flags, provider, log)
	if err != nil {
		return err
	}

	summary, err := proc.Run(ctx)
	if err != nil {
		return err
	}

	if cached != nil {
		stats := cached.Stats()
		log.Debug().
			Int64("hits", stats.Hits).
			Int64("misses", stats.Misses).
			Int64("writes", stats.Writes).
			Int64("write_failures", stats.WriteFailures).
			Str("dir", flags.CacheDir).
			Msg("prompt cache")
	}

	if summary.Failed > 0 {
		return errUnitsFailed
	}
	return nil
}
