package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/antithesishq/promptgen/internal/proptest"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var soakCmd = &cobra.Command{
	Use:          "soak",
	Short:        "Start a continuous testing workload",
	Long:         "Start a continuous testing workload. The workload generates random word lists and templates, runs the generator against them, and verifies that every result satisfies promptgen's invariants.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := orFatal(newLogger(cmd.Flags(), cmd.ErrOrStderr()))
		workers := orFatal(cmd.Flags().GetInt("workers"))
		iterations := orFatal(cmd.Flags().GetInt("iterations"))
		dir := orFatal(cmd.Flags().GetString("failure-dir"))
		replay := orFatal(cmd.Flags().GetString("replay"))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if replay != "" {
			return replayWorkload(ctx, logger, replay)
		}
		if workers < 1 {
			return fmt.Errorf("workers must be positive, got %d", workers)
		}

		var failures int
		for i := 0; iterations == 0 || i < iterations; i++ {
			if ctx.Err() != nil {
				break
			}
			failures += loadAndVerify(ctx, logger, workers, dir)
		}
		if failures > 0 {
			logger.Error("soak finished with failures", "failures", failures)
			return fmt.Errorf("%d workloads failed", failures)
		}
		return nil
	},
}

// loadAndVerify runs one batch of workloads concurrently and returns the
// number that failed.
func loadAndVerify(ctx context.Context, logger *slog.Logger, workers int, dir string) int {
	var wg sync.WaitGroup
	var failed atomic.Int64
	for range workers {
		r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		wg.Go(func() {
			if err := proptest.CheckDraws(r); err != nil {
				logger.Error("draw check failed", "err", err)
				failed.Add(1)
			}
			w := proptest.GenWorkload(r)
			res, err := proptest.RunWorkload(ctx, logger, w)
			if errors.Is(err, context.Canceled) {
				return
			}
			if err == nil {
				err = proptest.CheckWorkload(w, res)
			}
			if err == nil {
				logger.Debug("workload passed", "seed", w.Seed, "rounds", w.Count, "distinct", res.Distinct())
				return
			}
			failed.Add(1)
			logger.Error("workload failed", "seed", w.Seed, "template", w.Template, "err", err)
			fname, err := saveWorkload(dir, w)
			if err != nil {
				logger.Error("save failed workload", "seed", w.Seed, "err", err)
				return
			}
			logger.Info("saved failed workload", "path", fname)
		})
	}
	wg.Wait()
	n := int(failed.Load())
	if n == 0 {
		logger.Info("consistency check passed", "workloads", workers)
	}
	return n
}

// saveWorkload writes w as YAML for replaying with --replay.
func saveWorkload(dir string, w proptest.Workload) (string, error) {
	data, err := yaml.Marshal(w)
	if err != nil {
		return "", err
	}
	fname := filepath.Join(dir, fmt.Sprintf("soak-failure-%d.yaml", w.Seed))
	return fname, os.WriteFile(fname, data, 0o644)
}

// replayWorkload reruns a workload saved by saveWorkload and checks it again.
func replayWorkload(ctx context.Context, logger *slog.Logger, fname string) error {
	data, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	var w proptest.Workload
	if err := yaml.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode %s: %w", fname, err)
	}
	res, err := proptest.RunWorkload(ctx, logger, w)
	if err == nil {
		err = proptest.CheckWorkload(w, res)
	}
	if err != nil {
		return fmt.Errorf("replay %s: %w", fname, err)
	}
	logger.Info("workload passed", "seed", w.Seed, "rounds", res.Rounds, "distinct", res.Distinct())
	return nil
}

func init() {
	rootCmd.AddCommand(soakCmd)

	soakCmd.Flags().Int("workers", 4, "concurrent workloads per batch")
	soakCmd.Flags().Int("iterations", 0, "number of batches to run; 0 runs until interrupted")
	soakCmd.Flags().String("failure-dir", ".", "directory for failed workloads")
	soakCmd.Flags().String("replay", "", "rerun a saved failed workload and exit")
}
