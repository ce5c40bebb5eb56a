package components

import (
	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("BoxCollider", func() engine.Serializable {
		return NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1})
	})
}

// BoxCollider is an axis-aligned box around the object's world position.
type BoxCollider struct {
	engine.BaseComponent
	Size    rl.Vector3
	Offset  rl.Vector3
	Enabled bool
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:    size,
		Offset:  rl.Vector3{},
		Enabled: true,
	}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	return rl.Vector3Add(b.GetGameObject().WorldPosition(), b.Offset)
}

// GetWorldSize returns Size scaled by the object's world scale, always positive.
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	s := b.GetGameObject().WorldScale()
	return rl.Vector3{X: abs(b.Size.X * s.X), Y: abs(b.Size.Y * s.Y), Z: abs(b.Size.Z * s.Z)}
}

func (b *BoxCollider) SetEnabled(enabled bool) { b.Enabled = enabled }

func (b *BoxCollider) IsEnabled() bool { return b.Enabled }

func (b *BoxCollider) TypeName() string { return "BoxCollider" }

func (b *BoxCollider) Serialize() map[string]any {
	return map[string]any{
		"type":   "BoxCollider",
		"size":   []float32{b.Size.X, b.Size.Y, b.Size.Z},
		"offset": []float32{b.Offset.X, b.Offset.Y, b.Offset.Z},
	}
}

func (b *BoxCollider) Deserialize(data map[string]any) {
	if v, ok := vec3(data["size"]); ok {
		b.Size = v
	}
	if v, ok := vec3(data["offset"]); ok {
		b.Offset = v
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// vec3 decodes a JSON [x, y, z] array.
func vec3(raw any) (rl.Vector3, bool) {
	v, ok := raw.([]any)
	if !ok || len(v) < 3 {
		return rl.Vector3{}, false
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		f, ok := v[i].(float64)
		if !ok {
			return rl.Vector3{}, false
		}
		out[i] = float32(f)
	}
	return rl.Vector3{X: out[0], Y: out[1], Z: out[2]}, true
}
