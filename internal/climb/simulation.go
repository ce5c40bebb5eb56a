package climb

import (
	"fmt"

	"ascent/internal/engine"
)

// Phase is one stage of a simulation step. Phases run in declaration order.
type Phase int

const (
	PhaseInput Phase = iota
	PhaseStamina
	PhaseProgression
	PhaseDrag
	PhaseWobble
	PhasePhysics
	PhaseSystems
)

var phaseNames = [...]string{"input", "stamina", "progression", "drag", "wobble", "physics", "systems"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// System is a per-tick rule that runs after the core phases, such as the
// rising water or the HUD.
type System interface {
	Tick(deltaTime float32)
}

// SystemFunc adapts a function to System.
type SystemFunc func(deltaTime float32)

func (f SystemFunc) Tick(deltaTime float32) { f(deltaTime) }

// Simulation drives one climbing session with a fixed phase order.
type Simulation struct {
	Ctx   *Context
	Input HandProvider

	systems []System
	elapsed float64
	ticks   uint64

	// Optional hook invoked after each phase; used by tests and tracing.
	AfterPhase func(Phase)
}

// NewSimulation builds the stamina pool and binds everything already in the
// scene. progress may be nil for sessions without a scrolling world.
func NewSimulation(ctx *Context, input HandProvider, progress *WorldProgression) *Simulation {
	if ctx.Stamina == nil {
		ctx.Stamina = NewStaminaPool(ctx)
	}
	ctx.Progress = progress
	return &Simulation{Ctx: ctx, Input: input}
}

// AddSystem appends a system to the systems phase.
func (s *Simulation) AddSystem(sys System) {
	s.systems = append(s.systems, sys)
}

// Begin binds, registers and starts every object already in the scene.
func (s *Simulation) Begin() {
	if s.Ctx.Scene == nil {
		return
	}
	for _, g := range append([]*engine.GameObject(nil), s.Ctx.Scene.GameObjects...) {
		if g.Parent == nil {
			s.Ctx.Attach(g)
		}
	}
}

// Step advances the session by deltaTime.
func (s *Simulation) Step(deltaTime float32) {
	s.run(PhaseInput, deltaTime, s.sampleHands)
	s.run(PhaseStamina, deltaTime, s.Ctx.Stamina.Tick)
	s.run(PhaseProgression, deltaTime, func(dt float32) {
		if s.Ctx.Progress != nil {
			s.Ctx.Progress.Tick(dt)
		}
	})
	s.run(PhaseDrag, deltaTime, s.drag)
	s.run(PhaseWobble, deltaTime, s.Ctx.Tasks.Advance)
	s.run(PhasePhysics, deltaTime, func(dt float32) {
		if s.Ctx.Physics != nil {
			s.Ctx.Physics.Update(dt)
		}
	})
	s.run(PhaseSystems, deltaTime, func(dt float32) {
		for _, sys := range s.systems {
			sys.Tick(dt)
		}
	})

	s.elapsed += float64(deltaTime)
	s.ticks++
}

func (s *Simulation) run(p Phase, deltaTime float32, fn func(float32)) {
	fn(deltaTime)
	if s.AfterPhase != nil {
		s.AfterPhase(p)
	}
}

// Elapsed returns the simulated time in seconds.
func (s *Simulation) Elapsed() float64 { return s.elapsed }

// Ticks returns the number of completed steps.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// sampleHands reads the tracker and latches a hand onto whatever it reaches
// when its grip starts.
func (s *Simulation) sampleHands(float32) {
	if s.Input == nil {
		return
	}
	for _, h := range s.Ctx.Hands {
		if h == nil {
			continue
		}
		if !h.apply(s.Input.Sample(h.Side)) {
			continue
		}
		if target := s.Ctx.FindGrabbable(h.Position); target != nil {
			target.OnGrab(h)
		}
	}
}

// drag lets every gripping hand pull on the anchor it holds.
func (s *Simulation) drag(float32) {
	for _, h := range s.Ctx.Hands {
		if h == nil || !h.Gripping || h.Holding == nil {
			continue
		}
		if d, ok := h.Holding.(Dragger); ok {
			d.ApplyGrip(h)
		}
	}
}
