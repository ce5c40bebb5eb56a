package components

import (
	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("SphereCollider", func() engine.Serializable {
		return NewSphereCollider(0.5)
	})
}

type SphereCollider struct {
	engine.BaseComponent
	Radius  float32
	Offset  rl.Vector3
	Enabled bool
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{
		Radius:  radius,
		Offset:  rl.Vector3{},
		Enabled: true,
	}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	g := s.GetGameObject()
	return rl.Vector3Add(g.WorldPosition(), s.Offset)
}

func (s *SphereCollider) SetEnabled(enabled bool) { s.Enabled = enabled }

func (s *SphereCollider) IsEnabled() bool { return s.Enabled }

func (s *SphereCollider) TypeName() string { return "SphereCollider" }

func (s *SphereCollider) Serialize() map[string]any {
	return map[string]any{
		"type":   "SphereCollider",
		"radius": s.Radius,
		"offset": []float32{s.Offset.X, s.Offset.Y, s.Offset.Z},
	}
}

func (s *SphereCollider) Deserialize(data map[string]any) {
	if v, ok := data["radius"].(float64); ok && v > 0 {
		s.Radius = float32(v)
	}
	if v, ok := vec3(data["offset"]); ok {
		s.Offset = v
	}
}
