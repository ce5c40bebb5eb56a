package session

import (
	"ascent/internal/climb"
	"ascent/internal/components"
	"ascent/internal/engine"
)

const DefaultTargetDistance = 15

// ProgressTracker is the finish-line mode: progress is how far the target
// has moved down, relative to TargetDistance. The bar it fills doubles as the
// indicator that pauses world progression at zero.
type ProgressTracker struct {
	Enabled        bool
	TargetDistance float32
	Target         *engine.GameObject
	Bar            *components.UIProgressBar

	ctx      *climb.Context
	outcome  *Outcome
	initialY float32
	progress float32
}

// NewProgressTracker tracks target, or the world root when target is nil.
func NewProgressTracker(ctx *climb.Context, target *engine.GameObject, bar *components.UIProgressBar, outcome *Outcome) *ProgressTracker {
	p := &ProgressTracker{
		TargetDistance: DefaultTargetDistance,
		Target:         target,
		Bar:            bar,
		ctx:            ctx,
		outcome:        outcome,
	}
	if p.Target == nil {
		p.Target = ctx.WorldRoot
	}
	if p.Target == nil {
		ctx.Log.Error("ProgressTracker: no target assigned and no world root")
		return p
	}
	if bar == nil {
		ctx.Log.Warn("ProgressTracker: progress bar is not assigned")
	} else {
		bar.MaxValue = 1
		bar.Value = 0
	}

	p.initialY = p.Target.WorldPosition().Y
	p.Enabled = true
	return p
}

func (p *ProgressTracker) Tick(float32) {
	if !p.Enabled || p.Target == nil || p.Bar == nil {
		return
	}
	if p.TargetDistance <= 0 {
		p.ctx.Log.Errorf("ProgressTracker: target distance %.1f must be positive", p.TargetDistance)
		p.Enabled = false
		return
	}

	moved := p.initialY - p.Target.WorldPosition().Y
	p.progress = min(max(moved/p.TargetDistance, 0), 1)
	p.Bar.SetPercent(p.progress)

	if p.outcome != nil {
		p.outcome.Observe(max(moved, 0))
	}

	if p.progress >= 1 {
		p.Enabled = false
		p.ctx.Log.Infof("ProgressTracker: reached %.1f m", p.TargetDistance)
		if p.outcome != nil {
			p.outcome.End("finished")
		}
	}
}

// Progress returns the last computed progress in [0, 1].
func (p *ProgressTracker) Progress() float32 { return p.progress }
