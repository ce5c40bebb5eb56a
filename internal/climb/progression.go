package climb

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrNoPrefabs = errors.New("climb: wall pool has no prefabs")
	ErrNoWall    = errors.New("climb: no current wall segment")
	ErrNoSpawner = errors.New("climb: no wall spawner")
)

// Indicator gates world progression: a reading at or below zero pauses it.
type Indicator interface {
	GetPercent() float32
}

// Spawner builds a prefab hierarchy under parent at the given local position.
type Spawner interface {
	Instantiate(prefabID string, parent *engine.GameObject, position rl.Vector3) (*engine.GameObject, error)
}

// WallSegment is one instantiated wall. A segment is superseded once the next
// one has been spawned above it.
type WallSegment struct {
	PrefabID   string
	Object     *engine.GameObject
	Superseded bool
}

// WallPool hands out wall prefabs without repeats until every prefab has
// been used once.
type WallPool struct {
	prefabs []string
	used    map[string]bool
	rng     *rand.Rand
}

func NewWallPool(prefabs []string, rng *rand.Rand) *WallPool {
	return &WallPool{
		prefabs: append([]string(nil), prefabs...),
		used:    make(map[string]bool),
		rng:     rng,
	}
}

// Available returns the prefabs not used in the current rotation.
func (p *WallPool) Available() []string {
	var out []string
	for _, id := range p.prefabs {
		if !p.used[id] {
			out = append(out, id)
		}
	}
	return out
}

// Next picks a prefab uniformly from the unused ones, starting a new rotation
// first when all have been used. It does not mark the pick as used.
func (p *WallPool) Next() (string, error) {
	if len(p.prefabs) == 0 {
		return "", ErrNoPrefabs
	}
	available := p.Available()
	if len(available) == 0 {
		clear(p.used)
		available = p.Available()
	}
	return available[p.rng.IntN(len(available))], nil
}

func (p *WallPool) MarkUsed(id string) {
	p.used[id] = true
}

// Used reports whether id was handed out in the current rotation.
func (p *WallPool) Used(id string) bool {
	return p.used[id]
}

// WorldProgression scrolls the world root: it falls back while no hand pulls
// and spawns the next wall once the player climbs past the current one.
type WorldProgression struct {
	ctx     *Context
	Root    *engine.GameObject
	Enabled bool

	FallSpeed      float32
	FallSpeedFloor float32
	Acceleration   float32
	MaxFallSpeed   float32 // 0 = unbounded
	WallSpacing    float32
	TriggerOffset  float32

	// Started turns on with the first grip that drags the world.
	Started bool

	Indicator Indicator
	Pool      *WallPool
	Spawner   Spawner
	Current   *WallSegment

	OnWallAdvanced engine.EventWithArg[*WallSegment]

	walls  []*WallSegment
	startY float32
}

// NewWorldProgression creates the progression for root with first as the
// current wall. A missing root disables it.
func NewWorldProgression(ctx *Context, root *engine.GameObject, first *WallSegment, pool *WallPool, spawner Spawner) *WorldProgression {
	p := &WorldProgression{
		ctx:            ctx,
		Root:           root,
		Enabled:        true,
		FallSpeedFloor: ctx.Tuning.FallSpeedFloor,
		Acceleration:   ctx.Tuning.FallAccel,
		MaxFallSpeed:   ctx.Tuning.MaxFallSpeed,
		WallSpacing:    ctx.Tuning.WallSpacing,
		TriggerOffset:  ctx.Tuning.WallTrigger,
		Pool:           pool,
		Spawner:        spawner,
		Current:        first,
	}
	if root == nil {
		ctx.Log.Error("WorldProgression: no world root assigned, disabling")
		p.Enabled = false
		return p
	}
	p.startY = root.Transform.Position.Y
	if first != nil {
		p.walls = append(p.walls, first)
	}
	return p
}

// Tick runs one progression step.
func (p *WorldProgression) Tick(deltaTime float32) {
	if !p.Enabled {
		return
	}
	if p.Indicator != nil && p.Indicator.GetPercent() <= 0 {
		p.FallSpeed = 0
		return
	}

	if p.Started {
		if !p.ctx.AnyPulling() {
			p.FallSpeed += p.Acceleration * deltaTime
			if p.MaxFallSpeed > 0 && p.FallSpeed > p.MaxFallSpeed {
				p.FallSpeed = p.MaxFallSpeed
			}
			p.Root.Transform.Position.Y += p.FallSpeed * deltaTime
		} else {
			p.FallSpeed = p.FallSpeedFloor
		}
	}

	if p.crossedCurrentWall() {
		if err := p.AdvanceWall(); err != nil {
			p.ctx.Log.Errorf("WorldProgression: %v, wall spawning stopped", err)
			p.Spawner = nil
		}
	}
}

func (p *WorldProgression) crossedCurrentWall() bool {
	if p.Current == nil || p.Current.Superseded || p.Current.Object == nil || p.Spawner == nil {
		return false
	}
	wallY := p.Current.Object.WorldPosition().Y
	return wallY+p.TriggerOffset <= p.ctx.PlayerPosition().Y
}

// AdvanceWall spawns the next wall one spacing above the current one and
// makes it current.
func (p *WorldProgression) AdvanceWall() error {
	if p.Current == nil || p.Current.Object == nil {
		return ErrNoWall
	}
	if p.Spawner == nil {
		return ErrNoSpawner
	}
	if p.Pool == nil {
		return ErrNoPrefabs
	}

	pos := rl.Vector3Add(p.Current.Object.Transform.Position, rl.Vector3{Y: p.WallSpacing})
	id, err := p.Pool.Next()
	if err != nil {
		return err
	}
	obj, err := p.Spawner.Instantiate(id, p.Root, pos)
	if err != nil {
		return fmt.Errorf("spawn wall %q: %w", id, err)
	}

	p.Pool.MarkUsed(id)
	p.Current.Superseded = true
	next := &WallSegment{PrefabID: id, Object: obj}
	p.Current = next
	p.walls = append(p.walls, next)

	p.ctx.Attach(obj)
	p.ctx.Log.Event("WALL_SPAWNED", id, fmt.Sprintf("local y %.1f", pos.Y))
	p.OnWallAdvanced.Invoke(next)
	return nil
}

// Walls returns every segment spawned this session, oldest first.
func (p *WorldProgression) Walls() []*WallSegment {
	return p.walls
}

// ClimbedHeight is how far the world root has been pulled down since the
// session started.
func (p *WorldProgression) ClimbedHeight() float32 {
	if p.Root == nil {
		return 0
	}
	return p.startY - p.Root.Transform.Position.Y
}
