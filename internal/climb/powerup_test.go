package climb

import (
	"testing"

	"ascent/internal/components"
	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func addPowerUp(ctx *Context, pos rl.Vector3) (*engine.GameObject, *StaminaPowerUp) {
	g := engine.NewGameObject("PowerUp")
	g.Transform.Position = pos
	g.AddComponent(components.NewSphereCollider(0.3))
	p := NewStaminaPowerUp()
	g.AddComponent(p)
	ctx.WorldRoot.AddChild(g)
	ctx.Attach(g)
	return g, p
}

func TestPowerUpRestoresBothHandsAndDisappears(t *testing.T) {
	ctx := newTestContext()
	g, p := addPowerUp(ctx, rl.Vector3{X: 1})
	ctx.Hand(Left).Stamina = 10
	ctx.Hand(Right).Stamina = 90

	h := ctx.Hand(Left)
	h.Gripping = true
	p.OnGrab(h)

	if ctx.Hand(Left).Stamina != 50 || ctx.Hand(Right).Stamina != 100 {
		t.Errorf("Expected 50/100 after restore, got %f/%f", ctx.Hand(Left).Stamina, ctx.Hand(Right).Stamina)
	}
	if h.Holding != nil {
		t.Error("Hand should not stay latched to a pickup")
	}
	if ctx.Scene.FindByUID(g.UID) != nil {
		t.Error("Expected the pickup to be removed from the scene")
	}
	if g.Parent != nil || g.Active {
		t.Error("Expected the pickup to be detached and inactive")
	}
	if len(ctx.Grabbables()) != 0 {
		t.Error("Expected the pickup to be unregistered")
	}

	ctx.Hand(Left).Stamina = 10
	p.OnGrab(h)
	if ctx.Hand(Left).Stamina != 10 {
		t.Error("A used pickup should not restore again")
	}
}

func TestPowerUpIgnoresNonGrippingHand(t *testing.T) {
	ctx := newTestContext()
	_, p := addPowerUp(ctx, rlZero)
	ctx.Hand(Right).Stamina = 10

	p.OnGrab(ctx.Hand(Right))

	if ctx.Hand(Right).Stamina != 10 {
		t.Errorf("Expected no restore without a grip, got %f", ctx.Hand(Right).Stamina)
	}
	if !p.CanGrab() {
		t.Error("Pickup should still be available")
	}
}
