package game

import (
	"errors"
	"testing"

	"ascent/internal/climb"
	"ascent/internal/hud"
	"ascent/internal/session"
)

const testScene = "../../assets/scenes/climb.json"

const step = float32(1.0 / 60.0)

type fakeRecorder struct {
	calls   int
	highest float32
}

func (r *fakeRecorder) RecordHighestClimb(height float32) (bool, error) {
	r.calls++
	if height > r.highest {
		r.highest = height
		return true, nil
	}
	return false, nil
}

func testConfig(mode Mode) Config {
	cfg := DefaultConfig(testScene)
	cfg.Mode = mode
	cfg.Seed = 7
	return cfg
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeEndless, false},
		{"endless", ModeEndless, false},
		{"finish", ModeFinish, false},
		{"sprint", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestNewRejectsUnknownMode(t *testing.T) {
	_, err := New(testConfig("sprint"), Options{})
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Expected ErrUnknownMode, got %v", err)
	}
}

func TestNewMissingScene(t *testing.T) {
	cfg := testConfig(ModeEndless)
	cfg.ScenePath = "does-not-exist.json"
	if _, err := New(cfg, Options{}); err == nil {
		t.Error("Expected an error for a missing scene file")
	}
}

func TestNewWiresEndlessSession(t *testing.T) {
	g, err := New(testConfig(ModeEndless), Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.ID == "" {
		t.Error("Expected a generated session ID")
	}
	if g.Ctx.WorldRoot == nil || g.Ctx.Player == nil {
		t.Fatal("Expected world root and player to be bound")
	}
	if g.Water == nil || !g.Water.Enabled {
		t.Error("Expected rising water to be enabled")
	}
	if g.Progress != nil {
		t.Error("Endless mode should not track a finish line")
	}
	if len(g.Ctx.Grabbables()) == 0 {
		t.Error("Expected anchors to be registered")
	}
	if g.HUD.Stamina[climb.Left] == nil || g.HUD.Stamina[climb.Right] == nil {
		t.Error("Expected both stamina bars to be bound")
	}
	if g.Ctx.Progress == nil || g.Ctx.Progress.Current == nil {
		t.Error("Expected world progression with a current wall")
	}
}

func TestKeepsGivenSessionID(t *testing.T) {
	cfg := testConfig(ModeEndless)
	cfg.SessionID = "fixed"
	g, err := New(cfg, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.ID != "fixed" || g.HUD.SessionID != "fixed" {
		t.Errorf("Expected session ID fixed, got %q / %q", g.ID, g.HUD.SessionID)
	}
}

func TestIdlePlayerDrowns(t *testing.T) {
	rec := &fakeRecorder{}
	director := session.NewDirector(session.ClimbScene, session.EndScene)
	g, err := New(testConfig(ModeEndless), Options{Records: rec, Scenes: director})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 60*30 && !g.Ended(); i++ {
		g.Update(step)
	}

	if !g.Ended() {
		t.Fatal("Expected the water to end the session")
	}
	r := g.Result()
	if r.Reason != "drowned" {
		t.Errorf("Expected reason drowned, got %q", r.Reason)
	}
	if r.Highest != 0 {
		t.Errorf("Expected no height climbed, got %f", r.Highest)
	}
	if rec.calls != 1 {
		t.Errorf("Expected one record call, got %d", rec.calls)
	}
	if director.Current() != session.EndScene {
		t.Errorf("Expected %s, got %q", session.EndScene, director.Current())
	}

	ticks := g.Sim.Ticks()
	g.Update(step)
	if g.Sim.Ticks() != ticks {
		t.Error("An ended session should not advance")
	}
}

func TestAutopilotClimbs(t *testing.T) {
	pilot := NewAutopilot(step)
	g, err := New(testConfig(ModeEndless), Options{Input: pilot})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pilot.Bind(g.Ctx)

	var snaps []hud.Snapshot
	g.HUD.PublishEvery = 60
	g.HUD.Publish = func(s hud.Snapshot) { snaps = append(snaps, s) }

	for i := 0; i < 60*10 && !g.Ended(); i++ {
		g.Update(step)
	}

	if pilot.Grabs() < 2 {
		t.Errorf("Expected the pilot to alternate hands, got %d grabs", pilot.Grabs())
	}
	if !g.Ctx.Progress.Started {
		t.Error("Expected the first grip to start the world")
	}
	if h := g.Outcome.Highest(); h <= 2 {
		t.Errorf("Expected to climb more than 2 m in 10 s, got %f", h)
	}
	if len(snaps) == 0 {
		t.Fatal("Expected HUD snapshots")
	}
	if snaps[0].Session != g.ID {
		t.Errorf("Expected snapshot session %q, got %q", g.ID, snaps[0].Session)
	}
	if snaps[len(snaps)-1].Gap == "" {
		t.Error("Expected endless snapshots to carry the gap")
	}
}

func TestAutopilotWithoutContextStaysOpen(t *testing.T) {
	pilot := NewAutopilot(step)
	if s := pilot.Sample(climb.Left); s.Gripping {
		t.Error("Unbound pilot should not grip")
	}
}

func TestFinishModeEnds(t *testing.T) {
	cfg := testConfig(ModeFinish)
	cfg.TargetDistance = 3
	rec := &fakeRecorder{}
	director := session.NewDirector(session.ClimbScene, session.EndScene)
	pilot := NewAutopilot(step)

	g, err := New(cfg, Options{Input: pilot, Records: rec, Scenes: director})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pilot.Bind(g.Ctx)
	if g.Progress == nil || g.Water != nil {
		t.Fatal("Finish mode should track progress instead of water")
	}
	if g.Progress.TargetDistance != 3 {
		t.Errorf("Expected target distance 3, got %f", g.Progress.TargetDistance)
	}

	for i := 0; i < 60*20 && !g.Ended(); i++ {
		g.Update(step)
	}

	if g.Result().Reason != "finished" {
		t.Fatalf("Expected reason finished, got %q", g.Result().Reason)
	}
	if g.Progress.Progress() != 1 {
		t.Errorf("Expected full progress, got %f", g.Progress.Progress())
	}
	if rec.highest < 3 {
		t.Errorf("Expected at least 3 m recorded, got %f", rec.highest)
	}
}
