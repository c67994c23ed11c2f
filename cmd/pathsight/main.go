// Package main is the entry point for the pathsight scenario runner: it
// loads an embedded scenario, surveys it from the origin, routes to the
// target, and walks the route step by step.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/pathsight/data"
	"github.com/samdwyer/pathsight/internal/config"
	"github.com/samdwyer/pathsight/internal/entity"
	"github.com/samdwyer/pathsight/internal/grid"
	"github.com/samdwyer/pathsight/internal/logger"
	"github.com/samdwyer/pathsight/internal/telemetry"
	"github.com/samdwyer/pathsight/internal/world"
)

func main() {
	scenarioID := flag.String("scenario", "crossroads", "scenario id from the embedded scenarios.json")
	configPath := flag.String("config", "", "optional YAML config overriding the embedded defaults")
	flag.Parse()

	// Load .env before the logger so LOG_LEVEL and friends can come from
	// it. A missing .env is fine; env vars may be set directly.
	_ = godotenv.Load()
	setupOTelEnv()
	logger.Init()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Log.WithError(err).Warn("Telemetry setup failed, continuing without traces")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Log.WithError(err).Error("Telemetry shutdown failed")
			}
		}()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}

	registry, err := data.LoadScenarioRegistry()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load scenarios")
	}

	scenario := registry.GetByID(*scenarioID)
	if scenario == nil {
		logger.Log.WithFields(logrus.Fields{
			"scenario":  *scenarioID,
			"available": strings.Join(registry.IDs(), ", "),
		}).Fatal("Unknown scenario")
	}

	if err := run(ctx, cfg, scenario); err != nil {
		logger.Log.WithError(err).Fatal("Scenario run failed")
	}
}

// run plays one scenario end to end: build the level, survey it from the
// origin, route to the target, then walk the route resurveying on the way.
func run(ctx context.Context, cfg *config.Config, sc *data.ScenarioDef) error {
	tracer := telemetry.Tracer("runner")
	ctx, span := tracer.Start(ctx, "scenario.run")
	defer span.End()

	level, err := world.LevelFromRows(sc.Rows)
	if err != nil {
		return err
	}
	level.OccupiedCostFactor = cfg.Path.OccupiedCostFactor
	level.TieBreakWeight = cfg.Path.TieBreakWeight

	for _, o := range sc.Occupants {
		level.Actors.Add(entity.NewActor(o.Name, o.X, o.Y, o.Blocks))
	}

	radius := sc.Radius
	if radius <= 0 {
		radius = cfg.FOV.DefaultRadius
	}

	ox, oy := sc.OriginXY()
	tx, ty := sc.TargetXY()
	origin, target := grid.Pt(ox, oy), grid.Pt(tx, ty)

	scout := entity.NewActor("scout", ox, oy, true)
	level.Actors.Add(scout)

	log := logger.Log.WithFields(logrus.Fields{
		"scenario": sc.ID,
		"map":      fmt.Sprintf("%dx%d", level.Width, level.Height),
	})
	log.WithFields(logrus.Fields{
		"actors": level.Actors.Count(),
		"radius": radius,
	}).Info("Scenario loaded")

	level.RefreshVisibility(ctx, ox, oy, radius)
	log.WithFields(logrus.Fields{
		"visible": level.VisibleCount(),
		"seen":    level.SeenCount(),
	}).Info("Initial survey complete")

	path := level.FindPath(ctx, origin, target)
	if path == nil && len(sc.OpenDoors) > 0 {
		// The first attempt can fail on purpose: some scenarios start
		// behind closed doors.
		for _, d := range sc.OpenDoors {
			level.SetTile(d[0], d[1], world.TileFloor)
			log.WithField("door", fmt.Sprintf("(%d, %d)", d[0], d[1])).Info("Opened door")
		}
		path = level.FindPath(ctx, origin, target)
	}

	switch {
	case path == nil:
		return fmt.Errorf("no route from %v to %v", origin, target)
	case len(path) == 0:
		log.Info("Already standing on the target")
		return nil
	}
	log.WithField("steps", len(path)).Info("Route found")

	for i, step := range path {
		if !level.Actors.MoveTo(scout, step.X, step.Y) {
			return fmt.Errorf("walk failed at step %d: %v", i, step)
		}
		level.RefreshVisibility(ctx, step.X, step.Y, radius)
	}

	log.WithFields(logrus.Fields{
		"position": fmt.Sprintf("(%d, %d)", scout.X, scout.Y),
		"visible":  level.VisibleCount(),
		"seen":     level.SeenCount(),
	}).Info("Target reached")
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Construct the headers from the API key ourselves; the .env file may
	// carry an unexpanded variable reference that does not work as-is.
	apiKey := os.Getenv("HONEYCOMB_PATHSIGHT_API_KEY")
	dataset := os.Getenv("HONEYCOMB_PATHSIGHT_DATASET")
	if dataset == "" {
		dataset = "pathsight" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
