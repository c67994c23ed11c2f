// Package main runs batches of path searches over randomly generated maps
// and reports expansion and timing statistics, optionally as per-search CSV.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/samdwyer/pathsight/internal/config"
	"github.com/samdwyer/pathsight/internal/grid"
	"github.com/samdwyer/pathsight/internal/logger"
	"github.com/samdwyer/pathsight/internal/pathfind"
	"github.com/samdwyer/pathsight/internal/world"
)

// searchRow is one CSV record per executed search.
type searchRow struct {
	Run        int     `csv:"run"`
	OriginX    int     `csv:"origin_x"`
	OriginY    int     `csv:"origin_y"`
	TargetX    int     `csv:"target_x"`
	TargetY    int     `csv:"target_y"`
	Found      bool    `csv:"found"`
	PathLen    int     `csv:"path_len"`
	Expanded   int     `csv:"expanded"`
	DurationUS float64 `csv:"duration_us"`
}

func main() {
	configPath := flag.String("config", "", "optional YAML config overriding the embedded defaults")
	outPath := flag.String("out", "", "CSV file for per-search records (empty = no CSV)")
	searches := flag.Int("searches", 0, "number of searches (0 = config value)")
	seed := flag.Int64("seed", 0, "grid and query seed (0 = config value)")
	flag.Parse()

	// Optional .env so LOG_LEVEL and friends work the same as the runner.
	_ = godotenv.Load()
	logger.Init()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	if *searches > 0 {
		cfg.Bench.Searches = *searches
	}
	if *seed != 0 {
		cfg.Bench.Seed = *seed
	}

	logger.Log.WithFields(logrus.Fields{
		"grid":        fmt.Sprintf("%dx%d", cfg.Bench.GridWidth, cfg.Bench.GridHeight),
		"wall_chance": cfg.Bench.WallChance,
		"searches":    cfg.Bench.Searches,
		"seed":        cfg.Bench.Seed,
	}).Info("Starting search benchmark")

	rows, err := runBench(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Benchmark failed")
	}

	summarize(rows)

	if *outPath != "" {
		if err := writeCSV(*outPath, rows); err != nil {
			logger.Log.WithError(err).Fatal("Failed to write CSV")
		}
		logger.Log.WithFields(logrus.Fields{
			"file": *outPath,
			"rows": len(rows),
		}).Info("Wrote per-search records")
	}
}

// runBench generates a seeded random map, then times a batch of searches
// between random open cells on it.
func runBench(cfg *config.Config) ([]searchRow, error) {
	bench := cfg.Bench
	rng := rand.New(rand.NewSource(bench.Seed))

	level := world.NewLevel(bench.GridWidth, bench.GridHeight)
	level.OccupiedCostFactor = cfg.Path.OccupiedCostFactor
	level.TieBreakWeight = cfg.Path.TieBreakWeight

	open := make([]grid.Point, 0, bench.GridWidth*bench.GridHeight)
	for y := 0; y < bench.GridHeight; y++ {
		for x := 0; x < bench.GridWidth; x++ {
			if rng.Float64() >= bench.WallChance {
				level.SetTile(x, y, world.TileFloor)
				open = append(open, grid.Pt(x, y))
			}
		}
	}
	if len(open) < 2 {
		return nil, fmt.Errorf("map generation left %d open cells, need at least 2", len(open))
	}

	search := pathfind.NewSearch(level)
	rows := make([]searchRow, 0, bench.Searches)
	for i := 0; i < bench.Searches; i++ {
		origin := open[rng.Intn(len(open))]
		target := open[rng.Intn(len(open))]
		for target == origin {
			target = open[rng.Intn(len(open))]
		}

		started := time.Now()
		path := search.Find(origin, target)
		elapsed := time.Since(started)

		rows = append(rows, searchRow{
			Run:        i,
			OriginX:    origin.X,
			OriginY:    origin.Y,
			TargetX:    target.X,
			TargetY:    target.Y,
			Found:      path != nil,
			PathLen:    len(path),
			Expanded:   search.LastExpanded(),
			DurationUS: float64(elapsed.Nanoseconds()) / 1e3,
		})
	}
	return rows, nil
}

// summarize logs batch-level statistics over the collected rows.
func summarize(rows []searchRow) {
	expanded := make([]float64, 0, len(rows))
	durations := make([]float64, 0, len(rows))
	lengths := make([]float64, 0, len(rows))
	for _, r := range rows {
		if r.Found {
			lengths = append(lengths, float64(r.PathLen))
		}
		expanded = append(expanded, float64(r.Expanded))
		durations = append(durations, r.DurationUS)
	}
	// Quantile wants its input sorted.
	sort.Float64s(durations)

	mean, std := stat.MeanStdDev(expanded, nil)
	logger.Log.WithFields(logrus.Fields{
		"searches":      len(rows),
		"found":         len(lengths),
		"path_len_mean": fmt.Sprintf("%.1f", stat.Mean(lengths, nil)),
		"expanded_mean": fmt.Sprintf("%.1f", mean),
		"expanded_std":  fmt.Sprintf("%.1f", std),
		"duration_p50":  fmt.Sprintf("%.1fus", stat.Quantile(0.5, stat.Empirical, durations, nil)),
		"duration_p90":  fmt.Sprintf("%.1fus", stat.Quantile(0.9, stat.Empirical, durations, nil)),
		"duration_p99":  fmt.Sprintf("%.1fus", stat.Quantile(0.99, stat.Empirical, durations, nil)),
	}).Info("Search batch complete")
}

// writeCSV dumps every per-search record to one CSV file.
func writeCSV(path string, rows []searchRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
