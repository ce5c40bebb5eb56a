package climb

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"ascent/internal/components"
	"ascent/internal/engine"
	"ascent/internal/platform/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func vecNear(a, b rl.Vector3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

// scriptedHands is a HandProvider whose samples are set directly by tests.
type scriptedHands struct {
	samples [2]HandSample
}

func (s *scriptedHands) Sample(side Side) HandSample {
	return s.samples[side]
}

func (s *scriptedHands) set(side Side, pos rl.Vector3, gripping bool) {
	s.samples[side] = HandSample{Position: pos, Gripping: gripping}
}

// fakeSpawner builds empty walls, optionally with an anchor, under parent.
type fakeSpawner struct {
	calls      []string
	err        error
	withAnchor bool
}

func (f *fakeSpawner) Instantiate(prefabID string, parent *engine.GameObject, position rl.Vector3) (*engine.GameObject, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, prefabID)
	g := engine.NewGameObject(prefabID)
	g.Transform.Position = position
	if f.withAnchor {
		rock := engine.NewGameObject(prefabID + "_Rock")
		rock.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
		rock.AddComponent(NewGrabbableAnchor())
		g.AddChild(rock)
	}
	if parent != nil {
		parent.AddChild(g)
	}
	return g, nil
}

var errSpawn = errors.New("prefab missing")

// newTestContext returns a context with a scene, a world root at the origin
// and a player at the origin.
func newTestContext() *Context {
	ctx := NewContext(DefaultTuning(), rand.New(rand.NewPCG(1, 2)), logger.Discard())
	ctx.Scene = engine.NewScene("Test")
	ctx.WorldRoot = engine.NewGameObject("WorldRoot")
	ctx.Player = engine.NewGameObject("Player")
	ctx.Scene.AddGameObject(ctx.WorldRoot)
	ctx.Scene.AddGameObject(ctx.Player)
	ctx.Stamina = NewStaminaPool(ctx)
	return ctx
}

// addAnchor creates an anchor with a unit box collider under the world root
// and attaches it to the session.
func addAnchor(ctx *Context, name string, pos rl.Vector3) (*engine.GameObject, *GrabbableAnchor) {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	a := NewGrabbableAnchor()
	g.AddComponent(a)
	ctx.WorldRoot.AddChild(g)
	ctx.Attach(g)
	return g, a
}

// advanceUntil advances the task runner until cond holds, failing after max ticks.
func advanceUntil(t *testing.T, ctx *Context, dt float32, limit int, cond func() bool) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if cond() {
			return
		}
		ctx.Tasks.Advance(dt)
	}
	if !cond() {
		t.Fatalf("Condition not reached after %d ticks", limit)
	}
}
