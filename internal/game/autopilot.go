package game

import (
	"ascent/internal/climb"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Autopilot is a scripted climber. It works one hand at a time: reach for
// the highest anchor in range, pull it down past the player, let go and hand
// over to the other side. A hand that misses, is shaken loose or runs out of
// stamina hands over early.
type Autopilot struct {
	Reach     float32 // highest anchor considered, above the player
	PullDepth float32 // a pull ends this far below the player
	PullSpeed float32 // metres per second
	Step      float32 // seconds between samples of the same hand

	// Stamina fraction under which a reachable pickup beats an anchor.
	RefillBelow float32

	ctx    *climb.Context
	active climb.Side
	hands  [2]pilotHand

	grabs int
}

type pilotHand struct {
	pos  rl.Vector3
	grip bool
}

func NewAutopilot(step float32) *Autopilot {
	return &Autopilot{
		Reach:       2.5,
		PullDepth:   0.5,
		PullSpeed:   2,
		Step:        step,
		RefillBelow: 0.4,
		active:      climb.Left,
	}
}

// Bind points the pilot at a running session. Until then both hands stay open.
func (a *Autopilot) Bind(ctx *climb.Context) {
	a.ctx = ctx
}

// Grabs returns how many times a hand reached for a target.
func (a *Autopilot) Grabs() int { return a.grabs }

func (a *Autopilot) Sample(side climb.Side) climb.HandSample {
	h := &a.hands[side]
	if a.ctx == nil {
		return climb.HandSample{}
	}
	if side != a.active {
		h.grip = false
		return h.sample()
	}

	state := a.ctx.Hand(side)
	switch {
	case !h.grip:
		target := a.pick()
		if target == nil {
			break
		}
		h.pos = target.Object().WorldPosition()
		h.grip = true
		a.grabs++
	case state.Holding == nil || !state.Gripping:
		a.handOver(h)
	default:
		h.pos.Y -= a.PullSpeed * a.Step
		if h.pos.Y <= a.ctx.PlayerPosition().Y-a.PullDepth {
			a.handOver(h)
		}
	}
	return h.sample()
}

func (a *Autopilot) handOver(h *pilotHand) {
	h.grip = false
	if a.active == climb.Left {
		a.active = climb.Right
	} else {
		a.active = climb.Left
	}
}

// pick returns the highest anchor in reach, or a pickup when stamina is low.
func (a *Autopilot) pick() climb.Grabbable {
	playerY := a.ctx.PlayerPosition().Y
	low := a.ctx.Hand(a.active).StaminaFraction() < a.RefillBelow

	var best, refill climb.Grabbable
	var bestY float32
	for _, g := range a.ctx.Grabbables() {
		if !g.CanGrab() {
			continue
		}
		y := g.Object().WorldPosition().Y
		if y <= playerY || y > playerY+a.Reach {
			continue
		}
		if _, ok := g.(climb.Dragger); !ok {
			refill = g
			continue
		}
		if best == nil || y > bestY {
			best, bestY = g, y
		}
	}
	if low && refill != nil {
		return refill
	}
	return best
}

func (h *pilotHand) sample() climb.HandSample {
	return climb.HandSample{Position: h.pos, Gripping: h.grip}
}
