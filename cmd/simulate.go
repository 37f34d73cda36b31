package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"hellbingo/config"
	"hellbingo/events"
	"hellbingo/infrastructure/observability"
	"hellbingo/models"
	"hellbingo/service"

	log "github.com/sirupsen/logrus"
)

const histogramWidth = 40

// RunSimulate plays a batch of autopilot campaigns and prints a survival report
func RunSimulate(ctx context.Context, args []string, out io.Writer) error {
	cfg := config.Get()
	ConfigureLogging(cfg)

	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(out)
	runs := fs.Int("runs", 1000, "number of campaigns to play")
	seed := fs.Int64("seed", cfg.GameSeed, "base seed; run i uses seed+i (0 seeds from the clock)")
	enemies := fs.Int("enemies", cfg.EnemyCount, "enemies per campaign")
	ink := fs.Int("ink", cfg.StartingCurrency, "starting ink")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", *runs)
	}
	if *enemies < 1 {
		return fmt.Errorf("enemies must be at least 1, got %d", *enemies)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		if err := observability.ShutdownGlobalMetrics(context.Background()); err != nil {
			log.WithError(err).Error("Error shutting down metrics")
		}
	}()
	bus := events.NewSyncBus()
	observability.GetMetrics().Register(bus)

	opts := service.SimulationOptions{
		Runs:             *runs,
		Seed:             *seed,
		EnemyCount:       *enemies,
		StartingCurrency: *ink,
	}
	log.WithFields(log.Fields{
		"runs":    opts.Runs,
		"seed":    opts.Seed,
		"enemies": opts.EnemyCount,
	}).Info("Starting simulation")

	start := time.Now()
	stats, err := service.RunSimulation(ctx, opts, bus)
	if err != nil {
		return err
	}

	PrintSimulationReport(out, opts, stats, time.Since(start))
	return nil
}

// PrintSimulationReport writes a human-readable summary of stats
func PrintSimulationReport(out io.Writer, opts service.SimulationOptions, stats *models.SimulationStats, elapsed time.Duration) {
	fmt.Fprintf(out, "=== Survival Analysis: %d campaigns, %d enemies, seed %d ===\n\n",
		stats.Runs, opts.EnemyCount, opts.Seed)

	fmt.Fprintf(out, "Results:\n")
	fmt.Fprintf(out, "  Victories:      %d (%.2f%%)\n", stats.Victories, stats.WinPercentage)
	fmt.Fprintf(out, "  Executions:     %d (%.2f%%)\n", stats.Eliminations, 100-stats.WinPercentage)
	fmt.Fprintf(out, "  Average nights: %.2f (max %d)\n", stats.AverageNights, stats.MaxNights)
	fmt.Fprintf(out, "  Draws / night:  %.2f\n", stats.AverageDraws)
	fmt.Fprintf(out, "  Final ink:      %.2f on average\n", stats.AverageCurrency)
	fmt.Fprintf(out, "  Shield saves:   %d\n", stats.ShieldSaves)

	fmt.Fprintf(out, "\nPower-ups used:\n")
	for _, kind := range models.AllPowerUps {
		fmt.Fprintf(out, "  %-9s %d\n", kind, stats.PowerUpsUsed[kind])
	}

	fmt.Fprintf(out, "\nNights reached:\n")
	nights := make([]int, 0, len(stats.NightHistogram))
	peak := 0
	for n, count := range stats.NightHistogram {
		nights = append(nights, n)
		if count > peak {
			peak = count
		}
	}
	sort.Ints(nights)
	for _, n := range nights {
		count := stats.NightHistogram[n]
		barLength := int(math.Round(float64(count) / float64(peak) * histogramWidth))
		fmt.Fprintf(out, "  %3d: %6d (%5.2f%%) %s\n",
			n, count, float64(count)/float64(stats.Runs)*100, strings.Repeat("█", barLength))
	}

	fmt.Fprintf(out, "\nCompleted in %s\n", elapsed.Round(time.Millisecond))
}
