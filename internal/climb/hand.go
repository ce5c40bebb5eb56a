package climb

import (
	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// HandSample is one tick of tracking data for a hand.
type HandSample struct {
	Position rl.Vector3
	Gripping bool
}

// HandProvider supplies tracked hand data. Sample is called once per hand per tick.
type HandProvider interface {
	Sample(side Side) HandSample
}

// Grabbable is anything a hand can latch onto.
type Grabbable interface {
	Object() *engine.GameObject
	// CanGrab is false while the target is inactive or its colliders are off.
	CanGrab() bool
	OnGrab(hand *HandState)
}

// Dragger is a Grabbable that pulls the world while a hand grips it.
type Dragger interface {
	Grabbable
	ApplyGrip(hand *HandState)
}

// HandState is the per-hand record the phases read and write.
//
// Gripping follows the tracked grip but only turns on at a rising edge with
// stamina left; exhaustion forces it off until the next fresh grip. Holding is
// latched at that rising edge. Pulling is the grip-driving flag world
// progression reads.
type HandState struct {
	Side       Side
	Position   rl.Vector3
	Gripping   bool
	Holding    Grabbable
	Pulling    bool
	Stamina    float32
	MaxStamina float32

	tracked bool // raw grip signal from the previous sample
}

func NewHandState(side Side, maxStamina float32) *HandState {
	return &HandState{
		Side:       side,
		Stamina:    maxStamina,
		MaxStamina: maxStamina,
	}
}

// StaminaFraction returns Stamina/MaxStamina, 0 when MaxStamina is not positive.
func (h *HandState) StaminaFraction() float32 {
	if h.MaxStamina <= 0 {
		return 0
	}
	return h.Stamina / h.MaxStamina
}

// IsHolding reports whether the hand is latched onto g.
func (h *HandState) IsHolding(g Grabbable) bool {
	return h.Holding != nil && g != nil && h.Holding == g
}

// Tracked reports the raw grip signal from the last sample. Forced releases
// and exhaustion never change it.
func (h *HandState) Tracked() bool {
	return h.tracked
}

// Release drops whatever the hand holds and clears its pull.
func (h *HandState) Release() {
	h.Holding = nil
	h.Pulling = false
}

// apply feeds one tracking sample into the hand and reports whether the grip
// started this tick.
func (h *HandState) apply(s HandSample) (rising bool) {
	h.Position = s.Position
	rising = s.Gripping && !h.tracked
	h.tracked = s.Gripping

	if !s.Gripping {
		h.Gripping = false
		h.Release()
		return false
	}
	if rising && h.Stamina > 0 {
		h.Gripping = true
		return true
	}
	return false
}
