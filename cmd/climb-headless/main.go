// Command climb-headless plays one session with the scripted autopilot and
// prints how it went. It needs no network and is handy for tuning.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"ascent/internal/climb"
	"ascent/internal/game"
	"ascent/internal/platform/config"
	"ascent/internal/platform/logger"
	"ascent/internal/prefs"
	"ascent/internal/session"
)

type headlessConfig struct {
	ScenePath string  `env:"ASCENT_SCENE" envDefault:"assets/scenes/climb.json"`
	Mode      string  `env:"ASCENT_MODE" envDefault:"endless"`
	Seed      uint64  `env:"ASCENT_SEED" envDefault:"1"`
	TickRate  int     `env:"ASCENT_TICK_RATE" envDefault:"60"`
	Duration  float64 `env:"ASCENT_HEADLESS_DURATION" envDefault:"120"`
	PrefsPath string  `env:"ASCENT_PREFS_PATH"`
	SavePath  string  `env:"ASCENT_HEADLESS_SAVE_SCENE"`
	Target    float32 `env:"ASCENT_TARGET_DISTANCE" envDefault:"15"`
	JSON      bool
	Verbose   bool

	Tuning climb.Tuning        `envPrefix:"ASCENT_"`
	Water  session.WaterTuning `envPrefix:"ASCENT_WATER_"`
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		config.Exitf("climb-headless: %v", err)
	}
	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("climb-headless: %v", err)
	}
	if err := run(cfg, os.Stdout); err != nil {
		config.Exitf("climb-headless: %v", err)
	}
}

func parseConfig(fs *flag.FlagSet, args []string) (headlessConfig, error) {
	var cfg headlessConfig
	if err := config.ParseEnv(&cfg); err != nil {
		return headlessConfig{}, err
	}
	fs.StringVar(&cfg.ScenePath, "scene", cfg.ScenePath, "climb scene file")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "session mode: endless or finish")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for a random one")
	fs.Float64Var(&cfg.Duration, "duration", cfg.Duration, "simulated seconds before giving up")
	fs.StringVar(&cfg.PrefsPath, "prefs", cfg.PrefsPath, "record the highest climb in this database")
	fs.StringVar(&cfg.SavePath, "save-scene", cfg.SavePath, "write the final world to this scene file")
	fs.BoolVar(&cfg.JSON, "json", false, "print the result as JSON")
	fs.BoolVar(&cfg.Verbose, "v", false, "log session events")
	if err := fs.Parse(args); err != nil {
		return headlessConfig{}, fmt.Errorf("parse flags: %w", err)
	}
	if cfg.TickRate <= 0 {
		return headlessConfig{}, fmt.Errorf("tick rate must be positive, got %d", cfg.TickRate)
	}
	return cfg, nil
}

func run(cfg headlessConfig, out io.Writer) error {
	mode, err := game.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	log := logger.Discard()
	if cfg.Verbose {
		log = logger.New(out, out, 0)
	}

	opts := game.Options{Log: log}
	if cfg.PrefsPath != "" {
		store, err := prefs.Open(cfg.PrefsPath)
		if err != nil {
			return fmt.Errorf("open prefs: %w", err)
		}
		defer store.Close()
		opts.Records = store
	}

	step := 1 / float32(cfg.TickRate)
	pilot := game.NewAutopilot(step)
	opts.Input = pilot

	g, err := game.New(game.Config{
		ScenePath:      cfg.ScenePath,
		Mode:           mode,
		Tuning:         cfg.Tuning,
		Water:          cfg.Water,
		TargetDistance: cfg.Target,
		Seed:           cfg.Seed,
	}, opts)
	if err != nil {
		return err
	}
	pilot.Bind(g.Ctx)

	start := time.Now()
	maxTicks := uint64(cfg.Duration * float64(cfg.TickRate))
	for g.Sim.Ticks() < maxTicks && !g.Ended() {
		g.Update(step)
	}
	if !g.Ended() {
		_ = g.Outcome.End("timeout") // no scene loader to switch to
	}

	if cfg.SavePath != "" {
		if err := g.World.SaveScene(cfg.SavePath); err != nil {
			return err
		}
	}

	r := g.Result()
	if cfg.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Fprintf(out, "session %s (%s)\n", r.SessionID, r.Mode)
	fmt.Fprintf(out, "  ended:   %s after %.1fs (%d ticks, %v wall time)\n", r.Reason, r.Elapsed, r.Ticks, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(out, "  highest: %.1f m\n", r.Highest)
	fmt.Fprintf(out, "  walls:   %d, grabs: %d\n", r.Walls, pilot.Grabs())
	return nil
}
