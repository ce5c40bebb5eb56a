package session

import (
	"ascent/internal/climb"
	"ascent/internal/engine"
)

const PlayerTag = "Player"

// WaterTuning configures the rising water of endless mode.
type WaterTuning struct {
	InitialSpeed float32 `env:"INITIAL_SPEED" envDefault:"0.5"`
	Acceleration float32 `env:"ACCELERATION" envDefault:"0.05"`
	MaxSpeed     float32 `env:"MAX_SPEED" envDefault:"3"`
	LoseAfter    float32 `env:"LOSE_AFTER" envDefault:"5"` // seconds above the player
}

func DefaultWaterTuning() WaterTuning {
	return WaterTuning{
		InitialSpeed: 0.5,
		Acceleration: 0.05,
		MaxSpeed:     3,
		LoseAfter:    5,
	}
}

// RisingWater raises a water surface under the world root at an
// accelerating rate. The session is lost once the surface has stayed at or
// above the player for LoseAfter seconds.
type RisingWater struct {
	Enabled bool
	WaterTuning
	Speed float32

	ctx     *climb.Context
	water   *engine.GameObject
	player  *engine.GameObject
	outcome *Outcome

	worldStartY float32
	waterStartY float32
	aboveTimer  float32
}

// NewRisingWater validates its references up front; a missing world root,
// water or player is logged and leaves the hazard disabled.
func NewRisingWater(ctx *climb.Context, water *engine.GameObject, outcome *Outcome, tuning WaterTuning) *RisingWater {
	w := &RisingWater{
		WaterTuning: tuning,
		Speed:       tuning.InitialSpeed,
		ctx:         ctx,
		water:       water,
		player:      ctx.Player,
		outcome:     outcome,
	}

	if ctx.WorldRoot == nil {
		ctx.Log.Error("RisingWater: world root is not assigned")
		return w
	}
	if water == nil {
		ctx.Log.Error("RisingWater: water object is not assigned")
		return w
	}
	if w.player == nil && ctx.Scene != nil {
		if found := ctx.Scene.FindByTag(PlayerTag); len(found) > 0 {
			w.player = found[0]
		}
	}
	if w.player == nil {
		ctx.Log.Errorf("RisingWater: no player assigned and no object tagged %q", PlayerTag)
		return w
	}

	w.worldStartY = ctx.WorldRoot.WorldPosition().Y
	w.waterStartY = water.Transform.Position.Y
	w.Enabled = true
	return w
}

func (w *RisingWater) Tick(deltaTime float32) {
	if !w.Enabled {
		return
	}

	w.Speed = min(w.Speed+w.Acceleration*deltaTime, w.MaxSpeed)
	w.water.Transform.Position.Y += w.Speed * deltaTime

	if w.outcome != nil {
		w.outcome.Observe(w.ClimbedHeight())
	}

	if w.water.WorldPosition().Y >= w.player.WorldPosition().Y {
		w.aboveTimer += deltaTime
		if w.aboveTimer >= w.LoseAfter {
			w.Enabled = false
			w.ctx.Log.Infof("RisingWater: water stayed above the player for %.1fs", w.aboveTimer)
			if w.outcome != nil {
				w.outcome.End("drowned")
			}
		}
	} else {
		w.aboveTimer = 0
	}
}

// ClimbedHeight is how far the world has been pulled down, never negative.
func (w *RisingWater) ClimbedHeight() float32 {
	if w.ctx.WorldRoot == nil {
		return 0
	}
	return max(0, w.worldStartY-w.ctx.WorldRoot.WorldPosition().Y)
}

// WaterHeight is how far the surface has risen inside the world.
func (w *RisingWater) WaterHeight() float32 {
	if w.water == nil {
		return 0
	}
	return w.water.Transform.Position.Y - w.waterStartY
}

// Gap is the world-space distance from the surface up to the player;
// negative while submerged.
func (w *RisingWater) Gap() float32 {
	if w.water == nil || w.player == nil {
		return 0
	}
	return w.player.WorldPosition().Y - w.water.WorldPosition().Y
}

// Submerged returns how long the water has been above the player.
func (w *RisingWater) Submerged() float32 { return w.aboveTimer }
