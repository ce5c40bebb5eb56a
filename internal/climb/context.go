package climb

import (
	"math/rand/v2"
	"slices"

	"ascent/internal/engine"
	"ascent/internal/physics"
	"ascent/internal/platform/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// detachedLog reports components that start outside a session.
var detachedLog = logger.NewLogger()

// Context is the shared state of one climbing session. It is built once per
// session and handed to every component that needs the hands, the world root
// or the task runner.
type Context struct {
	Hands     [2]*HandState
	WorldRoot *engine.GameObject
	Player    *engine.GameObject
	Scene     *engine.Scene
	Physics   *physics.PhysicsWorld
	Tasks     *engine.TaskRunner
	Rand      *rand.Rand
	Log       *logger.Logger
	Tuning    Tuning

	Stamina  *StaminaPool
	Progress *WorldProgression

	grabbables []Grabbable
}

// ContextBinder is implemented by components that need the session context.
type ContextBinder interface {
	Bind(ctx *Context)
}

// NewContext creates a context with fresh hands and an empty task runner.
// Scene, world root and player are filled in by the caller.
func NewContext(tuning Tuning, rng *rand.Rand, log *logger.Logger) *Context {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Context{
		Hands: [2]*HandState{
			NewHandState(Left, tuning.MaxStamina),
			NewHandState(Right, tuning.MaxStamina),
		},
		Physics: physics.NewPhysicsWorld(),
		Tasks:   engine.NewTaskRunner(),
		Rand:    rng,
		Log:     log,
		Tuning:  tuning,
	}
}

// Hand returns the state of the given hand.
func (c *Context) Hand(side Side) *HandState {
	return c.Hands[side]
}

// AnyPulling reports whether either hand is driving the world.
func (c *Context) AnyPulling() bool {
	for _, h := range c.Hands {
		if h != nil && h.Pulling {
			return true
		}
	}
	return false
}

// PlayerPosition returns the player's world position, or the origin when
// there is no player object.
func (c *Context) PlayerPosition() rl.Vector3 {
	if c.Player == nil {
		return rl.Vector3{}
	}
	return c.Player.WorldPosition()
}

// Register makes g available to hands.
func (c *Context) Register(g Grabbable) {
	for _, existing := range c.grabbables {
		if existing == g {
			return
		}
	}
	c.grabbables = append(c.grabbables, g)
}

// Unregister removes g and releases any hand holding it.
func (c *Context) Unregister(g Grabbable) {
	for i, existing := range c.grabbables {
		if existing == g {
			c.grabbables = append(c.grabbables[:i], c.grabbables[i+1:]...)
			break
		}
	}
	for _, h := range c.Hands {
		if h != nil && h.IsHolding(g) {
			h.Release()
		}
	}
}

// Grabbables returns the registered grab targets.
func (c *Context) Grabbables() []Grabbable {
	return c.grabbables
}

// FindGrabbable returns the first registered target whose collider, grown by
// the grab radius, contains point. Only objects in the physics world count.
func (c *Context) FindGrabbable(point rl.Vector3) Grabbable {
	if c.Physics == nil {
		return nil
	}
	hits := c.Physics.OverlapPoint(point, c.Tuning.GrabRadius)
	if len(hits) == 0 {
		return nil
	}
	for _, g := range c.grabbables {
		if g.CanGrab() && slices.Contains(hits, g.Object()) {
			return g
		}
	}
	return nil
}

// Attach wires a freshly created hierarchy into the running session: every
// ContextBinder is bound, colliders and bodies join the physics world, the
// objects join the scene and are started.
func (c *Context) Attach(root *engine.GameObject) {
	root.Walk(func(g *engine.GameObject) {
		for _, comp := range g.Components() {
			if b, ok := comp.(ContextBinder); ok {
				b.Bind(c)
			}
		}
	})
	if c.Physics != nil {
		c.Physics.AddHierarchy(root)
	}
	if c.Scene != nil {
		c.Scene.AddHierarchy(root)
	}
	root.Walk(func(g *engine.GameObject) {
		g.Start()
	})
}

// Destroy removes a hierarchy from the session.
func (c *Context) Destroy(root *engine.GameObject) {
	root.Walk(func(g *engine.GameObject) {
		for _, comp := range g.Components() {
			if gr, ok := comp.(Grabbable); ok {
				c.Unregister(gr)
			}
		}
	})
	if c.Physics != nil {
		c.Physics.RemoveHierarchy(root)
	}
	if c.Scene != nil {
		c.Scene.Destroy(root)
	} else {
		if root.Parent != nil {
			root.Parent.RemoveChild(root)
		}
		root.Active = false
	}
}
