package climb

import (
	"fmt"
	"math"

	"ascent/internal/components"
	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type WobbleState int

const (
	WobbleIdle WobbleState = iota
	Wobbling
	Breaking
)

func (s WobbleState) String() string {
	switch s {
	case WobbleIdle:
		return "idle"
	case Wobbling:
		return "wobbling"
	case Breaking:
		return "breaking"
	}
	return fmt.Sprintf("WobbleState(%d)", int(s))
}

// ForceRelease configures what happens to a hand that grabs a wobbling anchor.
type ForceRelease struct {
	Enabled bool
	Delay   float32 // seconds; 0 releases on the same tick
}

// BodySnapshot is the rest state of one detachable piece, captured once when
// the anchor starts and copied back after every break.
type BodySnapshot struct {
	Body        *components.Rigidbody
	Parent      *engine.GameObject
	Local       engine.Transform
	IsKinematic bool
	UseGravity  bool
}

func captureBody(rb *components.Rigidbody) BodySnapshot {
	g := rb.GetGameObject()
	return BodySnapshot{
		Body:        rb,
		Parent:      g.Parent,
		Local:       g.Transform,
		IsKinematic: rb.IsKinematic,
		UseGravity:  rb.UseGravity,
	}
}

// BreakableWobble makes an anchor unstable. It idles for a random interval,
// wobbles around Z, and breaks apart after a cycle in which a hand that
// latched onto it opened its grip. Broken pieces fall under physics and snap
// back after BreakDuration.
type BreakableWobble struct {
	engine.BaseComponent

	MaxAngle       float32 // degrees
	Speed          float32 // radians per second
	IntervalMin    float32
	IntervalMax    float32
	WobbleDuration float32
	BreakDuration  float32
	ForceRelease   [2]ForceRelease // indexed by Side

	// Fired when pieces detach and when they are restored.
	OnBreak   engine.Event
	OnRestore engine.Event

	ctx          *Context
	state        WobbleState
	pendingBreak bool
	task         *engine.Task

	rest          rl.Vector3
	initialParent *engine.GameObject
	initialLocal  engine.Transform
	colliders     []engine.Toggleable
	renderers     []engine.Toggleable
	bodies        []BodySnapshot

	// latched marks hands that took hold of the anchor this cycle and have
	// not opened their tracked grip since. A forced release keeps the latch.
	latched          [2]bool
	releaseScheduled [2]bool

	cycles int
	breaks int
}

func NewBreakableWobble() *BreakableWobble {
	return &BreakableWobble{
		MaxAngle:       DefaultWobbleMaxAngle,
		Speed:          DefaultWobbleSpeed,
		IntervalMin:    DefaultWobbleIntervalA,
		IntervalMax:    DefaultWobbleIntervalB,
		WobbleDuration: DefaultWobbleDuration,
		BreakDuration:  DefaultBreakDuration,
		ForceRelease: [2]ForceRelease{
			Left:  {Enabled: true},
			Right: {Enabled: true},
		},
	}
}

func (w *BreakableWobble) Bind(ctx *Context) {
	w.ctx = ctx
}

// Start captures the rest pose and every rigidbody below the anchor, then
// begins the first idle wait.
func (w *BreakableWobble) Start() {
	g := w.GetGameObject()
	if w.ctx == nil || w.ctx.Tasks == nil {
		detachedLog.Warnf("BreakableWobble: %s has no session context, staying still", g.Name)
		return
	}

	w.rest = g.Transform.Rotation
	w.initialParent = g.Parent
	w.initialLocal = g.Transform
	w.colliders = colliders(g)
	w.renderers = renderers(g)

	for _, rb := range engine.GetComponentsInChildren[*components.Rigidbody](g) {
		w.bodies = append(w.bodies, captureBody(rb))
	}

	w.scheduleIdle()
}

func (w *BreakableWobble) State() WobbleState { return w.state }

func (w *BreakableWobble) PendingBreak() bool { return w.pendingBreak }

// Bodies returns the captured rest states.
func (w *BreakableWobble) Bodies() []BodySnapshot {
	return append([]BodySnapshot(nil), w.bodies...)
}

// Cycles is the number of completed wobbles.
func (w *BreakableWobble) Cycles() int { return w.cycles }

// Breaks is the number of completed break-and-restore cycles.
func (w *BreakableWobble) Breaks() int { return w.breaks }

// Break detaches the pieces right away when idle. While wobbling the break is
// deferred to the end of the cycle; while already breaking nothing happens.
// It reports whether a break started.
func (w *BreakableWobble) Break() bool {
	if w.ctx == nil {
		return false
	}
	switch w.state {
	case Breaking:
		return false
	case Wobbling:
		w.pendingBreak = true
		return false
	}
	if w.task != nil {
		w.task.Cancel()
	}
	w.pendingBreak = true
	w.beginBreak()
	return true
}

func (w *BreakableWobble) scheduleIdle() {
	w.state = WobbleIdle
	lo, hi := w.IntervalMin, w.IntervalMax
	if hi < lo {
		lo, hi = hi, lo
	}
	wait := lo + w.ctx.Rand.Float32()*(hi-lo)
	w.task = w.ctx.Tasks.After("wobble-wait", wait, w.beginWobble)
}

func (w *BreakableWobble) beginWobble() {
	w.state = Wobbling
	w.releaseScheduled = [2]bool{}
	for i, h := range w.ctx.Hands {
		w.latched[i] = w.holdsThis(h)
	}
	w.task = w.ctx.Tasks.Start(&engine.Task{
		Name:     "wobble",
		Duration: w.WobbleDuration,
		Tick:     w.wobbleTick,
		Done:     w.endWobble,
	})
}

func (w *BreakableWobble) wobbleTick(elapsed, _ float32) {
	g := w.GetGameObject()
	angle := float32(math.Sin(float64(elapsed*w.Speed))) * w.MaxAngle
	g.Transform.Rotation = w.rest
	g.Transform.Rotation.Z += angle

	for i, h := range w.ctx.Hands {
		if h == nil {
			continue
		}
		if !w.latched[i] && w.holdsThis(h) {
			w.latched[i] = true
			if w.ForceRelease[i].Enabled && !w.releaseScheduled[i] {
				w.releaseScheduled[i] = true
				w.scheduleRelease(h, w.ForceRelease[i].Delay)
			}
		}
		if w.latched[i] && !h.Tracked() {
			w.latched[i] = false
			w.pendingBreak = true
		}
	}
}

func (w *BreakableWobble) endWobble() {
	w.GetGameObject().Transform.Rotation = w.rest
	w.cycles++
	if w.pendingBreak && w.state != Breaking {
		w.beginBreak()
		return
	}
	w.scheduleIdle()
}

func (w *BreakableWobble) scheduleRelease(h *HandState, delay float32) {
	if delay <= 0 {
		w.forceRelease(h)
		return
	}
	w.ctx.Tasks.After("force-release", delay, func() {
		w.forceRelease(h)
	})
}

// forceRelease shakes the hand loose by dropping its grip-driving state, the
// same way exhaustion does. The tracked grip is untouched, so the hand has to
// open and close again to hold anything.
func (w *BreakableWobble) forceRelease(h *HandState) {
	h.Gripping = false
	h.Release()
	w.ctx.Log.Infof("BreakableWobble: %s shook the %s hand loose", w.GetGameObject().Name, h.Side)
}

func (w *BreakableWobble) beginBreak() {
	w.state = Breaking
	g := w.GetGameObject()

	for _, h := range w.ctx.Hands {
		if w.holdsThis(h) {
			h.Release()
		}
	}
	setEnabled(w.colliders, false)
	setEnabled(w.renderers, false)

	for _, snap := range w.bodies {
		body := snap.Body.GetGameObject()
		body.SetParent(nil, true)
		snap.Body.IsKinematic = false
		snap.Body.UseGravity = true
	}

	w.ctx.Log.Event("ANCHOR_BREAK", g.Name, fmt.Sprintf("%d pieces detached", len(w.bodies)))
	w.OnBreak.Invoke()
	w.task = w.ctx.Tasks.After("break", w.BreakDuration, w.restore)
}

func (w *BreakableWobble) restore() {
	g := w.GetGameObject()
	if w.initialParent != nil {
		g.SetParent(w.initialParent, false)
	}
	g.Transform = w.initialLocal

	setEnabled(w.colliders, true)
	setEnabled(w.renderers, true)

	for _, snap := range w.bodies {
		rb := snap.Body
		rb.Stop()

		body := rb.GetGameObject()
		parent := snap.Parent
		if parent == nil {
			parent = g
		}
		body.SetParent(parent, false)
		body.Transform = snap.Local

		rb.IsKinematic = snap.IsKinematic
		rb.UseGravity = snap.UseGravity
	}

	w.pendingBreak = false
	w.breaks++
	w.ctx.Log.Event("ANCHOR_RESTORE", g.Name, fmt.Sprintf("%d pieces restored", len(w.bodies)))
	w.OnRestore.Invoke()
	w.scheduleIdle()
}

func (w *BreakableWobble) holdsThis(h *HandState) bool {
	return h != nil && h.Holding != nil && h.Holding.Object() == w.GetGameObject()
}

func setEnabled(list []engine.Toggleable, enabled bool) {
	for _, t := range list {
		t.SetEnabled(enabled)
	}
}
