package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ascent/internal/climb"
	"ascent/internal/components"
	"ascent/internal/engine"
	"ascent/internal/platform/logger"
	_ "ascent/internal/scripts"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const testScene = `{
  "objects": [
    {"name": "WorldRoot"},
    {"name": "Wall_0", "parent": "WorldRoot", "prefab": "wall_a", "position": [0, 0, 0]},
    {"name": "Wall_1", "parent": "WorldRoot", "prefab": "wall_b", "position": [0, 5, 0], "tags": ["start"]},
    {"name": "Player", "tags": ["Player"], "position": [0, 1.5, 0]},
    {"name": "Sign", "components": [{"type": "Teleporter"}, {"type": "Script", "name": "Nope"}]}
  ],
  "prefabs": [
    {"id": "wall_a", "tags": ["wall"], "objects": [
      {"name": "Hold", "position": [0.4, 1, 0], "components": [
        {"type": "BoxCollider", "size": [0.3, 0.3, 0.3]},
        {"type": "Script", "name": "GrabbableAnchor", "props": {"enabled": true}}
      ]}
    ]},
    {"id": "wall_b", "tags": ["wall"], "objects": [
      {"name": "Rock", "position": [0, 2, 0], "components": [
        {"type": "BoxCollider", "size": [0.3, 0.3, 0.3]},
        {"type": "MeshRenderer", "mesh": "cube", "color": [10, 20, 30, 255]},
        {"type": "Script", "name": "BreakableWobble", "props": {"break_duration": 4}}
      ]},
      {"name": "Shard", "parent": "Rock", "position": [0, -0.1, 0], "components": [
        {"type": "Rigidbody", "isKinematic": true, "useGravity": false}
      ]}
    ]},
    {"id": "pickup", "objects": [
      {"name": "Orb", "components": [{"type": "SphereCollider", "radius": 0.2}]}
    ]}
  ]
}`

func loadTestWorld(t *testing.T) *World {
	t.Helper()
	w := New("Test")
	if err := w.ParseScene([]byte(testScene)); err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	return w
}

func TestParseSceneBuildsHierarchy(t *testing.T) {
	w := loadTestWorld(t)

	root, err := w.WorldRoot()
	if err != nil {
		t.Fatalf("WorldRoot: %v", err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("Expected 2 walls under the world root, got %d", len(root.Children))
	}
	wall := w.Scene.FindByName("Wall_1")
	if wall == nil {
		t.Fatal("Expected Wall_1 in the scene")
	}
	if wall.Parent != root {
		t.Error("Wall_1 should hang from the world root")
	}
	if !wall.HasTag(WallTag) || !wall.HasTag("start") {
		t.Errorf("Expected prefab and instance tags, got %v", wall.Tags)
	}
	if id, ok := w.PrefabOf(wall); !ok || id != "wall_b" {
		t.Errorf("Expected prefab wall_b, got %q", id)
	}
	if wall.Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected unit scale, got %v", wall.Transform.Scale)
	}

	rock := w.Scene.FindByName("Rock")
	if rock == nil || rock.Parent != wall {
		t.Fatal("Expected Rock under Wall_1")
	}
	if got := rock.WorldPosition(); got.Y != 7 {
		t.Errorf("Expected Rock at world Y 7, got %f", got.Y)
	}
	if engine.GetComponent[*climb.BreakableWobble](rock) == nil {
		t.Error("Expected the wobble script on Rock")
	}
	shard := w.Scene.FindByName("Shard")
	if shard == nil || shard.Parent != rock {
		t.Fatal("Expected Shard under Rock")
	}
	rb := engine.GetComponent[*components.Rigidbody](shard)
	if rb == nil || !rb.IsKinematic || rb.UseGravity {
		t.Errorf("Expected a kinematic shard without gravity, got %+v", rb)
	}
}

func TestUnknownComponentsAreSkipped(t *testing.T) {
	w := loadTestWorld(t)
	sign := w.Scene.FindByName("Sign")
	if sign == nil {
		t.Fatal("Expected Sign in the scene")
	}
	if n := len(sign.Components()); n != 0 {
		t.Errorf("Expected unknown components to be skipped, got %d", n)
	}
}

func TestPrefabIDs(t *testing.T) {
	w := loadTestWorld(t)
	walls := w.PrefabIDs(WallTag)
	if len(walls) != 2 || walls[0] != "wall_a" || walls[1] != "wall_b" {
		t.Errorf("Expected [wall_a wall_b], got %v", walls)
	}
	if all := w.PrefabIDs(""); len(all) != 3 {
		t.Errorf("Expected 3 prefabs, got %v", all)
	}
}

func TestInstantiate(t *testing.T) {
	w := loadTestWorld(t)
	root, _ := w.WorldRoot()
	before := len(w.Scene.GameObjects)

	g, err := w.Instantiate("wall_a", root, rl.Vector3{Y: 10})
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if g.Name != "wall_a" || g.Parent != root {
		t.Errorf("Expected wall_a under the world root, got %q", g.Name)
	}
	if g.Transform.Position.Y != 10 {
		t.Errorf("Expected local Y 10, got %f", g.Transform.Position.Y)
	}
	if len(g.Children) != 1 || g.Children[0].Name != "Hold" {
		t.Errorf("Expected one Hold child, got %d", len(g.Children))
	}
	if len(w.Scene.GameObjects) != before {
		t.Error("Instantiate should not add objects to the scene")
	}

	if _, err := w.Instantiate("missing", root, rl.Vector3{}); !errors.Is(err, ErrUnknownPrefab) {
		t.Errorf("Expected ErrUnknownPrefab, got %v", err)
	}
}

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"objects": [`},
		{"unknown parent", `{"objects": [{"name": "A", "parent": "B"}]}`},
		{"unknown prefab", `{"objects": [{"name": "A", "prefab": "nope"}]}`},
		{"prefab without id", `{"objects": [], "prefabs": [{"objects": []}]}`},
		{"nested prefab", `{"objects": [], "prefabs": [{"id": "a", "objects": [{"name": "x", "prefab": "b"}]}]}`},
		{"unknown parent in prefab", `{"objects": [{"name": "A", "prefab": "p"}], "prefabs": [{"id": "p", "objects": [{"name": "x", "parent": "y"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := New("Test").ParseScene([]byte(tt.data)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestFirstWallIsHighest(t *testing.T) {
	w := loadTestWorld(t)
	first, err := w.FirstWall()
	if err != nil {
		t.Fatalf("FirstWall: %v", err)
	}
	if first.Object.Name != "Wall_1" || first.PrefabID != "wall_b" {
		t.Errorf("Expected Wall_1 (wall_b), got %s (%s)", first.Object.Name, first.PrefabID)
	}

	empty := New("Empty")
	if _, err := empty.FirstWall(); !errors.Is(err, ErrNoWalls) {
		t.Errorf("Expected ErrNoWalls, got %v", err)
	}
	if _, err := empty.WorldRoot(); !errors.Is(err, ErrNoWorldRoot) {
		t.Errorf("Expected ErrNoWorldRoot, got %v", err)
	}
}

func TestBindAndProgression(t *testing.T) {
	w := loadTestWorld(t)
	ctx := climb.NewContext(climb.DefaultTuning(), nil, logger.Discard())
	if err := w.Bind(ctx); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if ctx.Scene != w.Scene || ctx.WorldRoot == nil || ctx.Player == nil {
		t.Fatal("Expected scene, world root and player on the context")
	}

	p, err := w.NewProgression(ctx)
	if err != nil {
		t.Fatalf("NewProgression: %v", err)
	}
	if p.Current == nil || p.Current.Object.Name != "Wall_1" {
		t.Fatal("Expected Wall_1 as the current wall")
	}
	if p.Spawner == nil {
		t.Fatal("Expected the world as spawner")
	}

	if err := p.AdvanceWall(); err != nil {
		t.Fatalf("AdvanceWall: %v", err)
	}
	next := p.Current.Object
	if next.Parent != ctx.WorldRoot {
		t.Error("Spawned wall should hang from the world root")
	}
	if next.Transform.Position.Y != 5+climb.DefaultWallSpacing {
		t.Errorf("Expected the new wall one spacing up, got %f", next.Transform.Position.Y)
	}
	if w.Scene.FindByUID(next.UID) == nil {
		t.Error("Spawned wall should join the scene")
	}
}

func TestBindWithoutWorldRoot(t *testing.T) {
	w := New("Empty")
	ctx := climb.NewContext(climb.DefaultTuning(), nil, logger.Discard())
	if err := w.Bind(ctx); !errors.Is(err, ErrNoWorldRoot) {
		t.Errorf("Expected ErrNoWorldRoot, got %v", err)
	}
}

func TestSaveSceneRoundTrip(t *testing.T) {
	w := loadTestWorld(t)
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := w.SaveScene(path); err != nil {
		t.Fatalf("SaveScene: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected the scene file: %v", err)
	}

	loaded := New("Loaded")
	if err := loaded.LoadScene(path); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if got, want := len(loaded.Scene.GameObjects), len(w.Scene.GameObjects); got != want {
		t.Errorf("Expected %d objects after reload, got %d", want, got)
	}
	wall := loaded.Scene.FindByName("Wall_1")
	if wall == nil {
		t.Fatal("Expected Wall_1 after reload")
	}
	if id, ok := loaded.PrefabOf(wall); !ok || id != "wall_b" {
		t.Errorf("Expected Wall_1 to stay a wall_b instance, got %q", id)
	}
	if wall.Transform.Position.Y != 5 {
		t.Errorf("Expected Wall_1 at local Y 5, got %f", wall.Transform.Position.Y)
	}
	if !wall.HasTag("start") {
		t.Errorf("Expected instance tag to survive, got %v", wall.Tags)
	}
	rock := loaded.Scene.FindByName("Rock")
	if rock == nil {
		t.Fatal("Expected Rock after reload")
	}
	wobble := engine.GetComponent[*climb.BreakableWobble](rock)
	if wobble == nil || wobble.BreakDuration != 4 {
		t.Errorf("Expected the wobble with break duration 4, got %+v", wobble)
	}
	mr := engine.GetComponent[*components.MeshRenderer](rock)
	if mr == nil || mr.Color != rl.NewColor(10, 20, 30, 255) {
		t.Errorf("Expected the renderer color to survive, got %+v", mr)
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	if err := New("Test").LoadScene(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
