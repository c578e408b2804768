package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sentimentheatmap/internal/app"
	"sentimentheatmap/internal/config"
	"sentimentheatmap/internal/logger"
	"sentimentheatmap/internal/pipeline"
	"sentimentheatmap/internal/provider"
)

type fetchOptions struct {
	configPath  string
	tickers     string
	days        int
	timeout     time.Duration
	snapshotDir string
	noSnapshot  bool
}

type fetchOutput struct {
	FetchedAt time.Time         `json:"fetched_at"`
	Records   []pipeline.Record `json:"records"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := fetchOptions{}
	cmd := &cobra.Command{
		Use:           "fetch",
		Short:         "Run the sentiment pipeline once and print the records as JSON",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd.Context(), cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", os.Getenv("CONFIG_FILE"), "path to config file (json or yaml)")
	f.StringVar(&opts.tickers, "tickers", "", "comma-separated tickers (default: configured list)")
	f.IntVar(&opts.days, "days", 0, "lookback window in days (default: configured value)")
	f.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "overall run timeout")
	f.StringVar(&opts.snapshotDir, "snapshot-dir", "", "directory for CSV snapshots")
	f.BoolVar(&opts.noSnapshot, "no-snapshot", false, "do not write a CSV snapshot")
	return cmd
}

func runFetch(ctx context.Context, cmd *cobra.Command, opts fetchOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.InitWithOutput(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())

	if opts.tickers != "" {
		cfg.Pipeline.Tickers = provider.NormalizeTickers(provider.SplitCSV(opts.tickers))
	}
	if opts.days != 0 {
		cfg.Pipeline.LookbackDays = opts.days
	}
	if opts.snapshotDir != "" {
		cfg.Snapshot.Dir = opts.snapshotDir
	}
	if opts.noSnapshot {
		cfg.Snapshot.Enabled = false
	}

	a, err := app.Build(cfg, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	res, err := a.Session.Load(ctx, cfg.Pipeline.Tickers, cfg.Pipeline.LookbackDays)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(fetchOutput{FetchedAt: res.FetchedAt, Records: res.Records}); err != nil {
		return err
	}
	return nil
}
