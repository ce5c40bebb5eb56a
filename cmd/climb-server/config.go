package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"ascent/internal/climb"
	"ascent/internal/game"
	"ascent/internal/platform/config"
	"ascent/internal/session"
)

type serverConfig struct {
	Addr           string        `env:"ASCENT_ADDR" envDefault:":8090"`
	ScenePath      string        `env:"ASCENT_SCENE" envDefault:"assets/scenes/climb.json"`
	EndScenePath   string        `env:"ASCENT_END_SCENE" envDefault:"assets/scenes/end.json"`
	PrefsPath      string        `env:"ASCENT_PREFS_PATH" envDefault:"data/prefs.db"`
	TickRate       int           `env:"ASCENT_TICK_RATE" envDefault:"60"`
	Mode           string        `env:"ASCENT_MODE" envDefault:"endless"`
	TargetDistance float32       `env:"ASCENT_TARGET_DISTANCE" envDefault:"15"`
	HUDEvery       int           `env:"ASCENT_HUD_EVERY" envDefault:"3"`
	HandStaleAfter time.Duration `env:"ASCENT_HAND_STALE_AFTER" envDefault:"500ms"`
	Seed           uint64        `env:"ASCENT_SEED"`
	Version        string        `env:"ASCENT_VERSION" envDefault:"dev"`

	Tuning climb.Tuning        `envPrefix:"ASCENT_"`
	Water  session.WaterTuning `envPrefix:"ASCENT_WATER_"`
}

// parseConfig reads the environment, then lets flags override it.
func parseConfig(fs *flag.FlagSet, args []string) (serverConfig, error) {
	var cfg serverConfig
	if err := config.ParseEnv(&cfg); err != nil {
		return serverConfig{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.ScenePath, "scene", cfg.ScenePath, "climb scene file")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "session mode: endless or finish")
	fs.StringVar(&cfg.PrefsPath, "prefs", cfg.PrefsPath, "preferences database")
	if err := fs.Parse(args); err != nil {
		return serverConfig{}, fmt.Errorf("parse flags: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return serverConfig{}, err
	}
	return cfg, nil
}

func (c serverConfig) validate() error {
	if c.TickRate <= 0 {
		return errors.New("tick rate must be positive")
	}
	if c.ScenePath == "" {
		return errors.New("scene path is required")
	}
	if _, err := game.ParseMode(c.Mode); err != nil {
		return err
	}
	return nil
}

func (c serverConfig) step() float32 {
	return 1 / float32(c.TickRate)
}

func (c serverConfig) gameConfig() game.Config {
	mode, _ := game.ParseMode(c.Mode)
	return game.Config{
		ScenePath:      c.ScenePath,
		Mode:           mode,
		Tuning:         c.Tuning,
		Water:          c.Water,
		TargetDistance: c.TargetDistance,
		Seed:           c.Seed,
	}
}
