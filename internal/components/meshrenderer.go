package components

import (
	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("MeshRenderer", func() engine.Serializable {
		return NewMeshRenderer(MeshCube, rl.White, rl.Vector3{X: 1, Y: 1, Z: 1})
	})
}

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
	MeshPlane
)

var meshNames = map[MeshType]string{
	MeshCube:   "cube",
	MeshSphere: "sphere",
	MeshPlane:  "plane",
}

// MeshRenderer describes how an object looks to the presentation layer.
// The simulation only toggles its visibility.
type MeshRenderer struct {
	engine.BaseComponent
	MeshType MeshType
	Color    rl.Color
	Size     rl.Vector3
	Enabled  bool
}

func NewMeshRenderer(meshType MeshType, color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Color:    color,
		Size:     size,
		Enabled:  true,
	}
}

// Visible reports whether the renderer should be drawn this frame.
func (m *MeshRenderer) Visible() bool {
	g := m.GetGameObject()
	return m.Enabled && g != nil && g.ActiveInHierarchy()
}

func (m *MeshRenderer) SetEnabled(enabled bool) { m.Enabled = enabled }

func (m *MeshRenderer) IsEnabled() bool { return m.Enabled }

func (m *MeshRenderer) TypeName() string { return "MeshRenderer" }

func (m *MeshRenderer) Serialize() map[string]any {
	return map[string]any{
		"type":  "MeshRenderer",
		"mesh":  meshNames[m.MeshType],
		"color": colorArray(m.Color),
		"size":  []float32{m.Size.X, m.Size.Y, m.Size.Z},
	}
}

func (m *MeshRenderer) Deserialize(data map[string]any) {
	if v, ok := data["mesh"].(string); ok {
		for t, name := range meshNames {
			if name == v {
				m.MeshType = t
			}
		}
	}
	if c, ok := color(data["color"]); ok {
		m.Color = c
	}
	if v, ok := vec3(data["size"]); ok {
		m.Size = v
	}
}

// colorArray encodes c as [r, g, b, a]. A []uint8 would marshal as base64.
func colorArray(c rl.Color) []int {
	return []int{int(c.R), int(c.G), int(c.B), int(c.A)}
}

// color decodes a JSON [r, g, b, a] array.
func color(raw any) (rl.Color, bool) {
	v, ok := raw.([]any)
	if !ok || len(v) < 4 {
		return rl.Color{}, false
	}
	var out [4]uint8
	for i := 0; i < 4; i++ {
		f, ok := v[i].(float64)
		if !ok {
			return rl.Color{}, false
		}
		out[i] = uint8(f)
	}
	return rl.NewColor(out[0], out[1], out[2], out[3]), true
}
