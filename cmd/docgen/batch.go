package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ieglobal/go-docgen/internal/batch"
)

func (a *app) batchCmd() *cobra.Command {
	var (
		out         string
		concurrency int
		failFast    bool
	)
	cmd := &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Generate every agreement listed in a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}
			manifest, err := batch.ParseManifest(data)
			if err != nil {
				return err
			}
			if out == "" {
				out = a.cfg.Output.Dir
			}
			if concurrency <= 0 {
				concurrency = a.cfg.Batch.Concurrency
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}

			sink := func(_ context.Context, outcome batch.Outcome) error {
				// Base keeps manifest outputs inside the output directory.
				path := filepath.Join(out, filepath.Base(outcome.Filename()))
				return writeFile(path, outcome.Result.Data)
			}
			outcomes, runErr := batch.Run(cmd.Context(), a.generator(), manifest.Jobs,
				batch.WithConcurrency(concurrency),
				batch.WithSink(sink),
				batch.WithFailFast(failFast),
			)

			written := 0
			for _, outcome := range outcomes {
				if outcome.Err != nil {
					a.log.Error("job failed", "index", outcome.Index, "type", outcome.Job.Type, "error", outcome.Err)
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %d %s: %v\n", outcome.Index, outcome.Job.Type, outcome.Err)
					continue
				}
				written++
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %d %s\n", outcome.Index, filepath.Join(out, filepath.Base(outcome.Filename())))
			}
			a.log.Info("batch finished", "jobs", len(manifest.Jobs), "written", written, "concurrency", concurrency)
			return runErr
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (defaults to output.dir)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "parallel generations (defaults to batch.concurrency)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop after the first failure")
	return cmd
}
