package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/wordtoons/internal"
	"codeberg.org/snonux/wordtoons/internal/archive"
	"codeberg.org/snonux/wordtoons/internal/cli"
	"codeberg.org/snonux/wordtoons/internal/logging"
	"codeberg.org/snonux/wordtoons/internal/models"
	"codeberg.org/snonux/wordtoons/internal/processor"
)

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

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(internal.Version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	cli.ApplyConfig(flags)
	if err := flags.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(flags.LogLevel)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	// Handle --archive flag
	if flags.Archive {
		archivePath, err := archive.ArchiveResults(flags.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to archive results: %w", err)
		}
		fmt.Printf("Results directory archived to: %s\n", archivePath)
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey(), cli.GetGeminiKey())
		return lister.ListAvailableModels(ctx)
	}

	proc, err := processor.NewProcessor(ctx, flags, logger)
	if err != nil {
		return err
	}

	switch {
	case flags.BatchFile != "":
		if err := proc.ProcessBatch(ctx); err != nil {
			return err
		}
	case len(args) > 0:
		if err := proc.ProcessSingleWord(ctx, args[0]); err != nil {
			return err
		}
	default:
		// No input provided - launch GUI mode by default
		return proc.RunGUIMode(ctx)
	}

	if !flags.SkipSave {
		fmt.Fprintf(os.Stderr, "\nDone! Results saved to: %s\n", flags.OutputDir)
	}
	return nil
}
