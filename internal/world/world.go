package world

import (
	"errors"
	"fmt"
	"sort"

	"ascent/internal/climb"
	_ "ascent/internal/components"
	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Names and tags the session looks for in a loaded scene.
const (
	WorldRootName = "WorldRoot"
	PlayerName    = "Player"
	WallTag       = "wall"
)

var (
	ErrUnknownPrefab = errors.New("world: unknown prefab")
	ErrNoWorldRoot   = errors.New("world: scene has no " + WorldRootName)
	ErrNoWalls       = errors.New("world: scene has no wall")
)

// World holds a loaded scene and the prefabs it can instantiate.
type World struct {
	Scene *engine.Scene

	prefabs  map[string]PrefabDef
	prefabOf map[uint64]string // instance root UID -> prefab ID
}

func New(name string) *World {
	return &World{
		Scene:    engine.NewScene(name),
		prefabs:  make(map[string]PrefabDef),
		prefabOf: make(map[uint64]string),
	}
}

// AddPrefab registers or replaces a prefab definition.
func (w *World) AddPrefab(def PrefabDef) {
	w.prefabs[def.ID] = def
}

// PrefabIDs returns the sorted IDs of every prefab carrying tag, or of all
// prefabs when tag is empty.
func (w *World) PrefabIDs(tag string) []string {
	var ids []string
	for id, def := range w.prefabs {
		if tag == "" || hasTag(def.Tags, tag) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// PrefabOf returns the prefab an instance root was built from.
func (w *World) PrefabOf(g *engine.GameObject) (string, bool) {
	id, ok := w.prefabOf[g.UID]
	return id, ok
}

// Instantiate builds the prefab hierarchy under parent at the given local
// position. The new objects are not added to the scene; the session attaches
// them once they are in place.
func (w *World) Instantiate(prefabID string, parent *engine.GameObject, position rl.Vector3) (*engine.GameObject, error) {
	def, ok := w.prefabs[prefabID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrefab, prefabID)
	}

	root := engine.NewGameObject(prefabID)
	root.Tags = append([]string(nil), def.Tags...)
	if _, err := buildObjects(def.Objects, root); err != nil {
		return nil, fmt.Errorf("prefab %q: %w", prefabID, err)
	}
	root.Transform.Position = position
	if parent != nil {
		parent.AddChild(root)
	}
	w.prefabOf[root.UID] = prefabID
	return root, nil
}

// WorldRoot returns the object walls and anchors hang from.
func (w *World) WorldRoot() (*engine.GameObject, error) {
	if g := w.Scene.FindByName(WorldRootName); g != nil {
		return g, nil
	}
	return nil, ErrNoWorldRoot
}

// Player returns the player object, or nil when the scene has none.
func (w *World) Player() *engine.GameObject {
	return w.Scene.FindByName(PlayerName)
}

// FirstWall returns the highest wall placed in the scene as the starting
// segment for world progression.
func (w *World) FirstWall() (*climb.WallSegment, error) {
	var best *engine.GameObject
	for _, g := range w.Scene.FindByTag(WallTag) {
		if best == nil || g.WorldPosition().Y > best.WorldPosition().Y {
			best = g
		}
	}
	if best == nil {
		return nil, ErrNoWalls
	}
	id, _ := w.PrefabOf(best)
	return &climb.WallSegment{PrefabID: id, Object: best}, nil
}

// Bind fills the session context with the scene, its world root and player.
func (w *World) Bind(ctx *climb.Context) error {
	root, err := w.WorldRoot()
	if err != nil {
		return err
	}
	ctx.Scene = w.Scene
	ctx.WorldRoot = root
	ctx.Player = w.Player()
	return nil
}

// NewProgression wires a WorldProgression to this world: its first wall, a
// pool of every wall prefab and the world itself as spawner.
func (w *World) NewProgression(ctx *climb.Context) (*climb.WorldProgression, error) {
	first, err := w.FirstWall()
	if err != nil {
		return nil, err
	}
	pool := climb.NewWallPool(w.PrefabIDs(WallTag), ctx.Rand)
	return climb.NewWorldProgression(ctx, ctx.WorldRoot, first, pool, w), nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
