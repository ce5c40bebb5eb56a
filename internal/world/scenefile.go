package world

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

type SceneFile struct {
	Objects []ObjectDef `json:"objects"`
	Prefabs []PrefabDef `json:"prefabs,omitempty"`
}

// ObjectDef is one object in a scene or prefab. Parent names an object
// declared earlier in the same list; an empty parent means top level. Prefab
// instantiates a prefab in place of components and children.
type ObjectDef struct {
	Name       string           `json:"name"`
	Parent     string           `json:"parent,omitempty"`
	Prefab     string           `json:"prefab,omitempty"`
	Tags       []string         `json:"tags,omitempty"`
	Inactive   bool             `json:"inactive,omitempty"`
	Position   [3]float32       `json:"position"`
	Rotation   [3]float32       `json:"rotation"`
	Scale      [3]float32       `json:"scale"`
	Components []map[string]any `json:"components,omitempty"`
}

// PrefabDef is a reusable hierarchy. Its objects hang from a root named after
// the prefab, which carries Tags.
type PrefabDef struct {
	ID      string      `json:"id"`
	Tags    []string    `json:"tags,omitempty"`
	Objects []ObjectDef `json:"objects"`
}

// --- Loading ---

func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	return w.ParseScene(data)
}

// ParseScene loads prefabs and objects from JSON scene data into the world.
func (w *World) ParseScene(data []byte) error {
	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}

	for _, p := range sf.Prefabs {
		if p.ID == "" {
			return fmt.Errorf("parse scene: prefab without id")
		}
		for _, o := range p.Objects {
			if o.Prefab != "" {
				return fmt.Errorf("prefab %q: nested prefab %q", p.ID, o.Prefab)
			}
		}
		w.AddPrefab(p)
	}

	built, err := w.buildScene(sf.Objects)
	if err != nil {
		return err
	}
	for _, g := range built {
		if g.Parent == nil {
			w.Scene.AddHierarchy(g)
		}
	}
	return nil
}

func (w *World) buildScene(defs []ObjectDef) ([]*engine.GameObject, error) {
	byName := make(map[string]*engine.GameObject, len(defs))
	out := make([]*engine.GameObject, 0, len(defs))
	for _, def := range defs {
		var parent *engine.GameObject
		if def.Parent != "" {
			parent = byName[def.Parent]
			if parent == nil {
				return nil, fmt.Errorf("object %q: unknown parent %q", def.Name, def.Parent)
			}
		}

		var g *engine.GameObject
		if def.Prefab != "" {
			inst, err := w.Instantiate(def.Prefab, parent, vec(def.Position))
			if err != nil {
				return nil, fmt.Errorf("object %q: %w", def.Name, err)
			}
			g = inst
			if def.Name != "" {
				g.Name = def.Name
			}
			g.Tags = append(g.Tags, def.Tags...)
			g.Transform.Rotation = vec(def.Rotation)
			g.Transform.Scale = scale(def.Scale)
			g.Active = !def.Inactive
		} else {
			g = newObject(def)
			if parent != nil {
				parent.AddChild(g)
			}
		}
		byName[g.Name] = g
		out = append(out, g)
	}
	return out, nil
}

// buildObjects creates the objects of a prefab. Objects without a parent
// hang from root.
func buildObjects(defs []ObjectDef, root *engine.GameObject) ([]*engine.GameObject, error) {
	byName := make(map[string]*engine.GameObject, len(defs))
	out := make([]*engine.GameObject, 0, len(defs))
	for _, def := range defs {
		parent := root
		if def.Parent != "" {
			parent = byName[def.Parent]
			if parent == nil {
				return nil, fmt.Errorf("object %q: unknown parent %q", def.Name, def.Parent)
			}
		}
		g := newObject(def)
		parent.AddChild(g)
		byName[g.Name] = g
		out = append(out, g)
	}
	return out, nil
}

func newObject(def ObjectDef) *engine.GameObject {
	g := engine.NewGameObject(def.Name)
	g.Tags = append([]string(nil), def.Tags...)
	g.Active = !def.Inactive
	g.Transform.Position = vec(def.Position)
	g.Transform.Rotation = vec(def.Rotation)
	g.Transform.Scale = scale(def.Scale)

	for _, raw := range def.Components {
		if c := createComponent(def.Name, raw); c != nil {
			g.AddComponent(c)
		}
	}
	return g
}

// createComponent builds a built-in component or a registered script.
// Unknown types are logged and skipped.
func createComponent(owner string, raw map[string]any) engine.Component {
	typ, _ := raw["type"].(string)
	if typ == "Script" {
		name, _ := raw["name"].(string)
		props, _ := raw["props"].(map[string]any)
		if c := engine.CreateScript(name, props); c != nil {
			return c
		}
		log.Printf("World: %s: unknown script %q, skipping", owner, name)
		return nil
	}
	if c := engine.CreateComponent(typ, raw); c != nil {
		return c
	}
	log.Printf("World: %s: unknown component type %q, skipping", owner, typ)
	return nil
}

func vec(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// Default scale to 1 if zero
func scale(v [3]float32) rl.Vector3 {
	if v == [3]float32{} {
		return rl.Vector3{X: 1, Y: 1, Z: 1}
	}
	return vec(v)
}

// --- Saving ---

// SaveScene writes the scene hierarchy and the prefab definitions to path.
// Prefab instances are written as references, not expanded.
func (w *World) SaveScene(path string) error {
	var sf SceneFile
	for _, g := range w.Scene.GameObjects {
		if g.Parent == nil {
			w.appendObject(&sf, g, "")
		}
	}
	for _, id := range w.PrefabIDs("") {
		sf.Prefabs = append(sf.Prefabs, w.prefabs[id])
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

func (w *World) appendObject(sf *SceneFile, g *engine.GameObject, parent string) {
	def := ObjectDef{
		Name:     g.Name,
		Parent:   parent,
		Tags:     g.Tags,
		Inactive: !g.Active,
		Position: [3]float32{g.Transform.Position.X, g.Transform.Position.Y, g.Transform.Position.Z},
		Rotation: [3]float32{g.Transform.Rotation.X, g.Transform.Rotation.Y, g.Transform.Rotation.Z},
		Scale:    [3]float32{g.Transform.Scale.X, g.Transform.Scale.Y, g.Transform.Scale.Z},
	}
	if id, ok := w.PrefabOf(g); ok {
		def.Prefab = id
		def.Tags = withoutTags(g.Tags, w.prefabs[id].Tags)
		sf.Objects = append(sf.Objects, def)
		return
	}

	for _, c := range g.Components() {
		if raw := serializeComponent(c); raw != nil {
			def.Components = append(def.Components, raw)
		}
	}
	sf.Objects = append(sf.Objects, def)

	for _, child := range g.Children {
		w.appendObject(sf, child, g.Name)
	}
}

func serializeComponent(c engine.Component) map[string]any {
	if s, ok := c.(engine.Serializable); ok {
		return s.Serialize()
	}
	// Try script registry
	if name, props, ok := engine.SerializeScript(c); ok {
		return map[string]any{"type": "Script", "name": name, "props": props}
	}
	return nil
}

func withoutTags(tags, drop []string) []string {
	var out []string
	for _, t := range tags {
		if !hasTag(drop, t) {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
