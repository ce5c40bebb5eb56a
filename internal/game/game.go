// Package game assembles a playable climbing session from a scene file: the
// world, the simulation, the mode's win or lose rule and the HUD.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"ascent/internal/climb"
	"ascent/internal/components"
	"ascent/internal/engine"
	"ascent/internal/hud"
	"ascent/internal/platform/logger"
	_ "ascent/internal/scripts"
	"ascent/internal/session"
	"ascent/internal/world"

	"github.com/google/uuid"
)

// Mode selects how a session ends.
type Mode string

const (
	// ModeEndless ends when the rising water catches the player.
	ModeEndless Mode = "endless"
	// ModeFinish ends when the world has moved TargetDistance.
	ModeFinish Mode = "finish"
)

// Object names the session looks up in the scene.
const (
	WaterName       = "Water"
	ProgressBarName = "ProgressBar"
)

var ErrUnknownMode = errors.New("game: unknown mode")

// ParseMode accepts the names of the modes; empty means endless.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeEndless:
		return ModeEndless, nil
	case ModeFinish:
		return ModeFinish, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Config describes one session.
type Config struct {
	ScenePath      string
	Mode           Mode
	Tuning         climb.Tuning
	Water          session.WaterTuning
	TargetDistance float32
	Seed           uint64 // 0 picks a random seed
	SessionID      string // empty generates one
}

// DefaultConfig is an endless session with default tuning.
func DefaultConfig(scenePath string) Config {
	return Config{
		ScenePath:      scenePath,
		Mode:           ModeEndless,
		Tuning:         climb.DefaultTuning(),
		Water:          session.DefaultWaterTuning(),
		TargetDistance: session.DefaultTargetDistance,
	}
}

// Options are the collaborators a session talks to. Any of them may be nil.
type Options struct {
	Input   climb.HandProvider
	Records session.Recorder
	Scenes  session.SceneLoader
	Log     *logger.Logger
}

// Game is one running climbing session.
type Game struct {
	ID   string
	Mode Mode

	World    *world.World
	Ctx      *climb.Context
	Sim      *climb.Simulation
	Water    *session.RisingWater
	Progress *session.ProgressTracker
	HUD      *hud.HUD
	Outcome  *session.Outcome
}

// Result summarises a session.
type Result struct {
	SessionID string  `json:"session"`
	Mode      Mode    `json:"mode"`
	Reason    string  `json:"reason,omitempty"`
	Ended     bool    `json:"ended"`
	Highest   float32 `json:"highest"`
	Ticks     uint64  `json:"ticks"`
	Elapsed   float64 `json:"elapsed"`
	Walls     int     `json:"walls"`
}

// New loads the scene and wires a session ready to Update. The scene is
// attached before New returns, so every component has started.
func New(cfg Config, opts Options) (*Game, error) {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	mode := cfg.Mode
	if mode == "" {
		mode = ModeEndless
	}
	if mode != ModeEndless && mode != ModeFinish {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	w := world.New(session.ClimbScene)
	if err := w.LoadScene(cfg.ScenePath); err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}

	ctx := climb.NewContext(cfg.Tuning, newRand(cfg.Seed), log)
	if err := w.Bind(ctx); err != nil {
		return nil, fmt.Errorf("bind scene: %w", err)
	}
	progress, err := w.NewProgression(ctx)
	if err != nil {
		return nil, fmt.Errorf("world progression: %w", err)
	}

	g := &Game{
		ID:      cfg.SessionID,
		Mode:    mode,
		World:   w,
		Ctx:     ctx,
		Sim:     climb.NewSimulation(ctx, opts.Input, progress),
		Outcome: session.NewOutcome(opts.Scenes, opts.Records, log),
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.Sim.Begin()

	switch mode {
	case ModeEndless:
		g.Water = session.NewRisingWater(ctx, w.Scene.FindByName(WaterName), g.Outcome, cfg.Water)
		g.Sim.AddSystem(g.Water)
	case ModeFinish:
		bar := findBar(w.Scene)
		g.Progress = session.NewProgressTracker(ctx, nil, bar, g.Outcome)
		if cfg.TargetDistance > 0 {
			g.Progress.TargetDistance = cfg.TargetDistance
		}
		if bar != nil {
			progress.Indicator = bar
		}
		g.Sim.AddSystem(g.Progress)
	}

	g.HUD = hud.New(ctx, g.ID)
	g.HUD.Water = g.Water
	g.HUD.Progress = g.Progress
	g.HUD.BindScene(w.Scene)
	g.Sim.AddSystem(g.HUD)

	log.Event("SESSION_START", g.ID, fmt.Sprintf("mode %s, %d wall prefabs", mode, len(w.PrefabIDs(world.WallTag))))
	return g, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func findBar(scene *engine.Scene) *components.UIProgressBar {
	g := scene.FindByName(ProgressBarName)
	if g == nil {
		return nil
	}
	return engine.GetComponent[*components.UIProgressBar](g)
}

// Update advances the session by one step. An ended session stays frozen.
func (g *Game) Update(deltaTime float32) {
	if g.Outcome.Ended() {
		return
	}
	g.Sim.Step(deltaTime)
}

func (g *Game) Ended() bool {
	return g.Outcome.Ended()
}

func (g *Game) Result() Result {
	r := Result{
		SessionID: g.ID,
		Mode:      g.Mode,
		Reason:    g.Outcome.Reason(),
		Ended:     g.Outcome.Ended(),
		Highest:   g.Outcome.Highest(),
		Ticks:     g.Sim.Ticks(),
		Elapsed:   g.Sim.Elapsed(),
	}
	if g.Ctx.Progress != nil {
		r.Walls = len(g.Ctx.Progress.Walls())
	}
	return r
}
