// Package hud turns session state into what the player sees: stamina
// sliders, height readouts and the end screen.
package hud

import (
	"fmt"

	"ascent/internal/climb"
	"ascent/internal/components"
	"ascent/internal/engine"
	"ascent/internal/session"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Stamina at or below this value is shown as low.
const LowStaminaThreshold = 33

// Widget names looked up by BindScene.
const (
	LeftStaminaName  = "LeftStamina"
	RightStaminaName = "RightStamina"
	HeightTextName   = "PlayerHeightText"
	WaterTextName    = "WaterHeightText"
	GapTextName      = "GapText"
	EndTextName      = "HighestHeightText"
)

// StaminaColor is red for low stamina and white otherwise.
func StaminaColor(stamina float32) rl.Color {
	if stamina <= LowStaminaThreshold {
		return rl.Red
	}
	return rl.White
}

func hexColor(c rl.Color) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func PlayerHeightText(m float32) string { return fmt.Sprintf("Player Height: %.1f m", m) }
func WaterHeightText(m float32) string  { return fmt.Sprintf("Water Height: %.1f m", m) }
func GapText(m float32) string          { return fmt.Sprintf("Gap: %.1f m", m) }

// EndScreenText is the end scene's summary of the stored record.
func EndScreenText(highest float32) string {
	return fmt.Sprintf("Height Reached:\n%.1f m", highest)
}

// Gauge is one hand's stamina readout.
type Gauge struct {
	Side     string  `json:"side"`
	Value    float32 `json:"value"`
	Max      float32 `json:"max"`
	Low      bool    `json:"low"`
	Color    string  `json:"color"`
	Gripping bool    `json:"gripping"`
	Holding  bool    `json:"holding"`
}

// Snapshot is the HUD state of one tick, sent to clients as JSON.
type Snapshot struct {
	Type          string   `json:"type"`
	Session       string   `json:"session"`
	Tick          uint64   `json:"tick"`
	Elapsed       float64  `json:"elapsed"`
	Hands         [2]Gauge `json:"hands"`
	Started       bool     `json:"started"`
	FallSpeed     float32  `json:"fall_speed"`
	ClimbedHeight float32  `json:"climbed_height"`
	PlayerHeight  string   `json:"player_height"`
	WaterHeight   string   `json:"water_height,omitempty"`
	Gap           string   `json:"gap,omitempty"`
	Progress      *float32 `json:"progress,omitempty"`
}

// EndScreen is sent once the end scene is active.
type EndScreen struct {
	Type    string  `json:"type"`
	Session string  `json:"session"`
	Reason  string  `json:"reason,omitempty"`
	Highest float32 `json:"highest"`
	Text    string  `json:"text"`
}

func NewEndScreen(sessionID, reason string, highest float32) EndScreen {
	return EndScreen{
		Type:    "end",
		Session: sessionID,
		Reason:  reason,
		Highest: highest,
		Text:    EndScreenText(highest),
	}
}

// HUD is a session system: every tick it refreshes the scene widgets it is
// bound to and publishes a Snapshot. It never writes back to the session.
type HUD struct {
	SessionID string

	Water    *session.RisingWater
	Progress *session.ProgressTracker

	Stamina    [2]*components.UIProgressBar
	HeightText *components.UIText
	WaterText  *components.UIText
	GapText    *components.UIText

	// Publish receives every PublishEvery-th snapshot.
	Publish      func(Snapshot)
	PublishEvery int

	ctx     *climb.Context
	ticks   uint64
	elapsed float64
}

func New(ctx *climb.Context, sessionID string) *HUD {
	return &HUD{SessionID: sessionID, ctx: ctx, PublishEvery: 1}
}

// BindScene picks up the widgets by their conventional names. Missing
// widgets are skipped.
func (h *HUD) BindScene(scene *engine.Scene) {
	if scene == nil {
		return
	}
	h.Stamina[climb.Left] = widget[*components.UIProgressBar](scene, LeftStaminaName)
	h.Stamina[climb.Right] = widget[*components.UIProgressBar](scene, RightStaminaName)
	h.HeightText = widget[*components.UIText](scene, HeightTextName)
	h.WaterText = widget[*components.UIText](scene, WaterTextName)
	h.GapText = widget[*components.UIText](scene, GapTextName)
}

func widget[T engine.Component](scene *engine.Scene, name string) T {
	var zero T
	g := scene.FindByName(name)
	if g == nil {
		return zero
	}
	return engine.GetComponent[T](g)
}

func (h *HUD) Tick(deltaTime float32) {
	h.ticks++
	h.elapsed += float64(deltaTime)

	snap := h.Snapshot()
	h.apply(snap)

	every := uint64(max(h.PublishEvery, 1))
	if h.Publish != nil && h.ticks%every == 0 {
		h.Publish(snap)
	}
}

// Snapshot reads the current session state.
func (h *HUD) Snapshot() Snapshot {
	snap := Snapshot{
		Type:    "hud",
		Session: h.SessionID,
		Tick:    h.ticks,
		Elapsed: h.elapsed,
	}
	for i, hand := range h.ctx.Hands {
		if hand == nil {
			continue
		}
		snap.Hands[i] = Gauge{
			Side:     hand.Side.String(),
			Value:    hand.Stamina,
			Max:      hand.MaxStamina,
			Low:      hand.Stamina <= LowStaminaThreshold,
			Color:    hexColor(StaminaColor(hand.Stamina)),
			Gripping: hand.Gripping,
			Holding:  hand.Holding != nil,
		}
	}

	if p := h.ctx.Progress; p != nil {
		snap.Started = p.Started
		snap.FallSpeed = p.FallSpeed
		snap.ClimbedHeight = max(p.ClimbedHeight(), 0)
	}
	if h.Water != nil && h.Water.Enabled {
		snap.ClimbedHeight = h.Water.ClimbedHeight()
		snap.WaterHeight = WaterHeightText(h.Water.WaterHeight())
		snap.Gap = GapText(h.Water.Gap())
	}
	snap.PlayerHeight = PlayerHeightText(snap.ClimbedHeight)

	if h.Progress != nil {
		v := h.Progress.Progress()
		snap.Progress = &v
	}
	return snap
}

func (h *HUD) apply(snap Snapshot) {
	for i, bar := range h.Stamina {
		if bar == nil {
			continue
		}
		bar.MaxValue = snap.Hands[i].Max
		bar.Value = snap.Hands[i].Value
		bar.FillColor = StaminaColor(snap.Hands[i].Value)
	}
	if h.HeightText != nil {
		h.HeightText.SetText(snap.PlayerHeight)
	}
	if h.WaterText != nil && snap.WaterHeight != "" {
		h.WaterText.SetText(snap.WaterHeight)
	}
	if h.GapText != nil && snap.Gap != "" {
		h.GapText.SetText(snap.Gap)
	}
}

// ShowEndScreen writes the record into the end scene's text widget.
func ShowEndScreen(scene *engine.Scene, highest float32) bool {
	text := widget[*components.UIText](scene, EndTextName)
	if text == nil {
		return false
	}
	text.SetText(EndScreenText(highest))
	return true
}
