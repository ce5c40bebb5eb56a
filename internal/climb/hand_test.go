package climb

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var rlZero = rl.Vector3{}

func TestHandGripStartsOnRisingEdge(t *testing.T) {
	h := NewHandState(Left, 100)

	if !h.apply(HandSample{Position: rl.Vector3{Y: 1}, Gripping: true}) {
		t.Error("Expected first grip sample to be a rising edge")
	}
	if !h.Gripping {
		t.Error("Expected hand to be gripping")
	}
	if h.Position.Y != 1 {
		t.Errorf("Expected position to follow the sample, got %v", h.Position)
	}
	if h.apply(HandSample{Gripping: true}) {
		t.Error("Sustained grip should not be a rising edge")
	}
}

func TestHandReleaseClearsHolding(t *testing.T) {
	h := NewHandState(Right, 100)
	h.apply(HandSample{Gripping: true})
	h.Holding = NewGrabbableAnchor()
	h.Pulling = true

	h.apply(HandSample{Gripping: false})

	if h.Gripping || h.Pulling || h.Holding != nil {
		t.Errorf("Expected full release, got gripping=%v pulling=%v holding=%v", h.Gripping, h.Pulling, h.Holding)
	}
}

func TestExhaustedHandNeedsFreshGrip(t *testing.T) {
	h := NewHandState(Left, 100)
	h.apply(HandSample{Gripping: true})

	// Forced off by exhaustion while the tracker still reports a grip
	h.Gripping = false
	h.Stamina = 50
	if h.apply(HandSample{Gripping: true}) || h.Gripping {
		t.Error("Holding the grip should not re-grip after a forced release")
	}

	h.apply(HandSample{Gripping: false})
	if !h.apply(HandSample{Gripping: true}) || !h.Gripping {
		t.Error("A fresh grip should grip again")
	}
}

func TestHandWithoutStaminaCannotGrip(t *testing.T) {
	h := NewHandState(Left, 100)
	h.Stamina = 0

	if h.apply(HandSample{Gripping: true}) {
		t.Error("Empty hand should not report a grip start")
	}
	if h.Gripping {
		t.Error("Empty hand should not grip")
	}
}

func TestStaminaFraction(t *testing.T) {
	h := NewHandState(Left, 80)
	h.Stamina = 20
	if h.StaminaFraction() != 0.25 {
		t.Errorf("Expected 0.25, got %f", h.StaminaFraction())
	}
	h.MaxStamina = 0
	if h.StaminaFraction() != 0 {
		t.Errorf("Expected 0 with no max, got %f", h.StaminaFraction())
	}
}

func TestSideString(t *testing.T) {
	if Left.String() != "left" || Right.String() != "right" {
		t.Errorf("Unexpected side names %q %q", Left, Right)
	}
}
