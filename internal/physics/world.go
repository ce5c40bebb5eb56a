package physics

import (
	"log"
	"math"

	"ascent/internal/components"
	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PhysicsWorld integrates rigidbodies and answers overlap queries for colliders.
// Bodies switch between kinematic and dynamic at runtime, so classification
// happens every step rather than on registration.
type PhysicsWorld struct {
	Gravity rl.Vector3
	Bodies  []*engine.GameObject // objects carrying a Rigidbody
	Statics []*engine.GameObject // colliders without a Rigidbody
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		Gravity: rl.Vector3{X: 0, Y: -9.81, Z: 0},
		Bodies:  make([]*engine.GameObject, 0),
		Statics: make([]*engine.GameObject, 0),
	}
}

// AddObject registers g. Objects with neither a rigidbody nor a collider are ignored.
func (p *PhysicsWorld) AddObject(g *engine.GameObject) {
	if p.contains(g) {
		return
	}
	if engine.GetComponent[*components.Rigidbody](g) != nil {
		p.Bodies = append(p.Bodies, g)
		return
	}
	if hasCollider(g) {
		p.Statics = append(p.Statics, g)
	}
}

// AddHierarchy registers root and every descendant.
func (p *PhysicsWorld) AddHierarchy(root *engine.GameObject) {
	root.Walk(func(g *engine.GameObject) {
		p.AddObject(g)
	})
}

func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	for i, obj := range p.Bodies {
		if obj == g {
			p.Bodies = append(p.Bodies[:i], p.Bodies[i+1:]...)
			return
		}
	}
	for i, obj := range p.Statics {
		if obj == g {
			p.Statics = append(p.Statics[:i], p.Statics[i+1:]...)
			return
		}
	}
}

// RemoveHierarchy unregisters root and every descendant.
func (p *PhysicsWorld) RemoveHierarchy(root *engine.GameObject) {
	root.Walk(func(g *engine.GameObject) {
		p.RemoveObject(g)
	})
}

func (p *PhysicsWorld) contains(g *engine.GameObject) bool {
	for _, obj := range p.Bodies {
		if obj == g {
			return true
		}
	}
	for _, obj := range p.Statics {
		if obj == g {
			return true
		}
	}
	return false
}

// dynamicObjectCount returns how many bodies the next step will move.
func (p *PhysicsWorld) dynamicObjectCount() int {
	n := 0
	for _, obj := range p.Bodies {
		if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil && rb.Simulated() {
			n++
		}
	}
	return n
}

// Update applies gravity and integrates every dynamic body.
// Kinematic bodies follow their transform and are never moved here.
func (p *PhysicsWorld) Update(deltaTime float32) {
	for _, obj := range p.Bodies {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || !rb.Simulated() {
			continue
		}

		if rb.UseGravity {
			rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(p.Gravity, deltaTime))
		}

		obj.Transform.Position = rl.Vector3Add(
			obj.Transform.Position,
			rl.Vector3Scale(rb.Velocity, deltaTime),
		)
		obj.Transform.Rotation = rl.Vector3Add(
			obj.Transform.Rotation,
			rl.Vector3Scale(rb.AngularVelocity, deltaTime),
		)

		// Time-based so it's framerate independent
		damping := float32(1.0) - (1.0-rb.AngularDamping)*deltaTime*60
		if damping < 0 {
			damping = 0
		}
		rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, damping)

		if isBad(obj.Transform.Position) {
			log.Printf("Physics: %s left the valid range, stopping it", obj.Name)
			obj.Transform.Position = rl.Vector3{}
			rb.Stop()
		}
	}
}

// OverlapPoint returns the active objects whose enabled collider contains point,
// with every collider grown by margin.
func (p *PhysicsWorld) OverlapPoint(point rl.Vector3, margin float32) []*engine.GameObject {
	var hits []*engine.GameObject
	check := func(g *engine.GameObject) {
		if g.ActiveInHierarchy() && colliderContains(g, point, margin) {
			hits = append(hits, g)
		}
	}
	for _, g := range p.Statics {
		check(g)
	}
	for _, g := range p.Bodies {
		check(g)
	}
	return hits
}

// colliderContains reports whether any enabled collider on g contains point.
func colliderContains(g *engine.GameObject, point rl.Vector3, margin float32) bool {
	for _, box := range engine.GetComponents[*components.BoxCollider](g) {
		if !box.Enabled {
			continue
		}
		if NewAABBFromCenter(box.GetCenter(), box.GetWorldSize()).Expand(margin).Contains(point) {
			return true
		}
	}
	for _, sphere := range engine.GetComponents[*components.SphereCollider](g) {
		if !sphere.Enabled {
			continue
		}
		s := g.WorldScale()
		scale := max(abs(s.X), abs(s.Y), abs(s.Z))
		r := sphere.Radius*scale + margin
		if rl.Vector3Distance(sphere.GetCenter(), point) <= r {
			return true
		}
	}
	return false
}

func hasCollider(g *engine.GameObject) bool {
	return engine.GetComponent[*components.BoxCollider](g) != nil ||
		engine.GetComponent[*components.SphereCollider](g) != nil
}

func isBad(v rl.Vector3) bool {
	for _, f := range []float32{v.X, v.Y, v.Z} {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return true
		}
	}
	return false
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
