// Package cli defines the command-line surface of the crawler.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Viderspace/NeedleWhatsappCrawler/internal/config"
	"github.com/Viderspace/NeedleWhatsappCrawler/internal/judge"
	"github.com/Viderspace/NeedleWhatsappCrawler/internal/logger"
	"github.com/Viderspace/NeedleWhatsappCrawler/internal/pipeline"
)

var (
	flagWindow    int
	flagThreshold float64
)

// NewRootCmd builds the root command: one positional transcript path plus
// the window and threshold knobs.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "needle <transcript.json>",
		Short: "Scan an exported WhatsApp chat for questions and estimate how many messages answer each one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVarP(&flagWindow, "window", "w", 20, "messages inspected after each question")
	cmd.Flags().Float64VarP(&flagThreshold, "threshold", "t", 0.99, "answer-likelihood cutoff in [0,1] phrased into the judgment request")

	return cmd
}

func run(cmd *cobra.Command, inputPath string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Explicit flags override config; otherwise config (and its defaults) win.
	if cmd.Flags().Changed("window") {
		if flagWindow <= 0 {
			return fmt.Errorf("window must be a positive integer, got %d", flagWindow)
		}
		cfg.WindowSize = flagWindow
	}
	if cmd.Flags().Changed("threshold") {
		if flagThreshold < 0 || flagThreshold > 1 {
			return fmt.Errorf("threshold must be in [0,1], got %g", flagThreshold)
		}
		cfg.Threshold = flagThreshold
	}

	log := logger.New(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("starting analysis",
		"input", inputPath,
		"window_size", cfg.WindowSize,
		"threshold", cfg.Threshold)

	gen, err := judge.NewGeminiGenerator(ctx, cfg.Gemini, log)
	if err != nil {
		return err
	}
	judgeClient := judge.NewClient(gen, log, cfg.Gemini, cfg.Threshold)

	p := pipeline.New(log, judgeClient, cfg.WindowSize, cfg.Report.OutputDir)
	result, err := p.Run(ctx, inputPath)
	if err != nil {
		return err
	}

	if result.OutputPath == "" {
		fmt.Println("No questions found in transcript.")
		return nil
	}
	fmt.Printf("Wrote %d questions to %s\n", result.QuestionCount, result.OutputPath)
	return nil
}

// Execute runs the root command and exits non-zero on failure. A cancelled
// context (interrupt) also exits non-zero, with no partial output written.
func Execute(ctx context.Context) int {
	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
