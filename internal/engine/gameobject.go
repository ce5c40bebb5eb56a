package engine

import (
	"math"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

// nextUID hands out scene-independent object identifiers. 0 is reserved for "none".
var nextUID atomic.Uint64

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// GetComponents returns every component of type T on g.
func GetComponents[T Component](g *GameObject) []T {
	var result []T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			result = append(result, typed)
		}
	}
	return result
}

// GetComponentsInChildren walks g's descendants depth-first (g excluded) and
// collects every component of type T.
func GetComponentsInChildren[T Component](g *GameObject) []T {
	var result []T
	for _, child := range g.Children {
		result = append(result, GetComponents[T](child)...)
		result = append(result, GetComponentsInChildren[T](child)...)
	}
	return result
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

// Started reports whether Start has already run.
func (g *GameObject) Started() bool {
	return g.started
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// SetParent re-parents g under parent (nil detaches it to the scene root).
// With worldPositionStays the local transform is recomputed so the world
// position, rotation and scale are unchanged; otherwise the local transform
// is kept as-is and the object jumps to the new parent's frame.
func (g *GameObject) SetParent(parent *GameObject, worldPositionStays bool) {
	if g.Parent == parent {
		return
	}

	var pos, rot, scale rl.Vector3
	if worldPositionStays {
		pos, rot, scale = g.WorldPosition(), g.WorldRotation(), g.WorldScale()
	}

	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	if parent != nil {
		parent.AddChild(g)
	}

	if !worldPositionStays {
		return
	}
	if parent == nil {
		g.Transform = Transform{Position: pos, Rotation: rot, Scale: scale}
		return
	}

	parentPos := parent.WorldPosition()
	parentRot := parent.WorldRotation()
	parentScale := parent.WorldScale()

	// Undo the parent's rotation, then its scale
	inv := rl.MatrixInvert(rotationMatrix(parentRot))
	local := rl.Vector3Transform(rl.Vector3Subtract(pos, parentPos), inv)
	g.Transform.Position = rl.Vector3{
		X: safeDiv(local.X, parentScale.X),
		Y: safeDiv(local.Y, parentScale.Y),
		Z: safeDiv(local.Z, parentScale.Z),
	}
	g.Transform.Rotation = rl.Vector3Subtract(rot, parentRot)
	g.Transform.Scale = rl.Vector3{
		X: safeDiv(scale.X, parentScale.X),
		Y: safeDiv(scale.Y, parentScale.Y),
		Z: safeDiv(scale.Z, parentScale.Z),
	}
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return a
	}
	return a / b
}

// rotationMatrix uses the ModelRenderer convention: X then Y then Z.
func rotationMatrix(rot rl.Vector3) rl.Matrix {
	rx := float64(rot.X) * math.Pi / 180
	ry := float64(rot.Y) * math.Pi / 180
	rz := float64(rot.Z) * math.Pi / 180
	rotX := rl.MatrixRotateX(float32(rx))
	rotY := rl.MatrixRotateY(float32(ry))
	rotZ := rl.MatrixRotateZ(float32(rz))
	return rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentPos := g.Parent.WorldPosition()
	parentRot := g.Parent.WorldRotation()
	parentScale := g.Parent.WorldScale()

	// Scale local position by parent's world scale
	scaled := rl.Vector3{
		X: g.Transform.Position.X * parentScale.X,
		Y: g.Transform.Position.Y * parentScale.Y,
		Z: g.Transform.Position.Z * parentScale.Z,
	}

	rotated := rl.Vector3Transform(scaled, rotationMatrix(parentRot))
	return rl.Vector3Add(parentPos, rotated)
}

func (g *GameObject) WorldRotation() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.Vector3Add(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}

// Walk visits g and all of its descendants depth-first.
func (g *GameObject) Walk(fn func(*GameObject)) {
	fn(g)
	for _, child := range g.Children {
		child.Walk(fn)
	}
}

// ActiveInHierarchy reports whether g and every ancestor are active.
func (g *GameObject) ActiveInHierarchy() bool {
	for o := g; o != nil; o = o.Parent {
		if !o.Active {
			return false
		}
	}
	return true
}
