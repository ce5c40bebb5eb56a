package components

import (
	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("Rigidbody", func() engine.Serializable {
		return NewRigidbody()
	})
}

type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // degrees per second on each axis
	Mass            float32
	AngularDamping  float32 // how fast rotation slows down
	UseGravity      bool
	IsKinematic     bool // driven by its parent/transform, never by the physics step
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Velocity:        rl.Vector3{},
		AngularVelocity: rl.Vector3{},
		Mass:            1.0,
		AngularDamping:  0.98, // slight damping each frame
		UseGravity:      true,
		IsKinematic:     false,
	}
}

// Simulated reports whether the physics step should move this body.
func (r *Rigidbody) Simulated() bool {
	g := r.GetGameObject()
	return !r.IsKinematic && g != nil && g.ActiveInHierarchy()
}

// Stop zeroes linear and angular velocity.
func (r *Rigidbody) Stop() {
	r.Velocity = rl.Vector3{}
	r.AngularVelocity = rl.Vector3{}
}

// TypeName implements engine.Serializable
func (r *Rigidbody) TypeName() string {
	return "Rigidbody"
}

// Serialize implements engine.Serializable
func (r *Rigidbody) Serialize() map[string]any {
	return map[string]any{
		"type":        "Rigidbody",
		"mass":        r.Mass,
		"useGravity":  r.UseGravity,
		"isKinematic": r.IsKinematic,
	}
}

// Deserialize implements engine.Serializable
func (r *Rigidbody) Deserialize(data map[string]any) {
	if m, ok := data["mass"].(float64); ok && m > 0 {
		r.Mass = float32(m)
	}
	if g, ok := data["useGravity"].(bool); ok {
		r.UseGravity = g
	}
	if k, ok := data["isKinematic"].(bool); ok {
		r.IsKinematic = k
	}
}
