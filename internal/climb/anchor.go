package climb

import (
	"ascent/internal/components"
	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// GrabbableAnchor is a climbing hold. While a hand grips it the world root is
// dragged so the anchor follows the hand, scaled by the hand's stamina.
type GrabbableAnchor struct {
	engine.BaseComponent
	Enabled bool

	ctx *Context
}

func NewGrabbableAnchor() *GrabbableAnchor {
	return &GrabbableAnchor{Enabled: true}
}

func (a *GrabbableAnchor) Bind(ctx *Context) {
	a.ctx = ctx
	ctx.Register(a)
}

func (a *GrabbableAnchor) Object() *engine.GameObject {
	return a.GetGameObject()
}

func (a *GrabbableAnchor) CanGrab() bool {
	g := a.GetGameObject()
	if !a.Enabled || g == nil || !g.ActiveInHierarchy() {
		return false
	}
	return anyColliderEnabled(g)
}

func (a *GrabbableAnchor) OnGrab(hand *HandState) {
	hand.Holding = a
	hand.Pulling = true
}

// ApplyGrip drags the world root by the hand-to-anchor offset on X and Y.
// The first grip starts the session's fall timer.
func (a *GrabbableAnchor) ApplyGrip(hand *HandState) {
	if a.ctx == nil || a.ctx.WorldRoot == nil {
		return
	}
	if p := a.ctx.Progress; p != nil && !p.Started {
		p.Started = true
		a.ctx.Log.Info("Climb: first grip, world is live")
	}
	hand.Pulling = true

	d := rl.Vector3Subtract(hand.Position, a.GetGameObject().WorldPosition())
	d.Z = 0
	d = rl.Vector3Scale(d, hand.StaminaFraction())

	root := a.ctx.WorldRoot
	root.Transform.Position = rl.Vector3Add(root.Transform.Position, d)
}

func anyColliderEnabled(g *engine.GameObject) bool {
	for _, c := range colliders(g) {
		if c.IsEnabled() {
			return true
		}
	}
	return false
}

// colliders returns the collider components on g itself.
func colliders(g *engine.GameObject) []engine.Toggleable {
	var out []engine.Toggleable
	for _, c := range engine.GetComponents[*components.BoxCollider](g) {
		out = append(out, c)
	}
	for _, c := range engine.GetComponents[*components.SphereCollider](g) {
		out = append(out, c)
	}
	return out
}

// renderers returns the renderer components on g itself.
func renderers(g *engine.GameObject) []engine.Toggleable {
	var out []engine.Toggleable
	for _, r := range engine.GetComponents[*components.MeshRenderer](g) {
		out = append(out, r)
	}
	return out
}
