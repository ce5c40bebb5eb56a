package climb

import (
	"ascent/internal/engine"
)

// StaminaPowerUp is a one-shot pickup: grabbing it tops up both hands and
// removes it from the world.
type StaminaPowerUp struct {
	engine.BaseComponent
	RestoreAmount float32

	ctx  *Context
	used bool
}

func NewStaminaPowerUp() *StaminaPowerUp {
	return &StaminaPowerUp{RestoreAmount: DefaultPowerUpRestore}
}

func (p *StaminaPowerUp) Bind(ctx *Context) {
	p.ctx = ctx
	ctx.Register(p)
}

func (p *StaminaPowerUp) Object() *engine.GameObject {
	return p.GetGameObject()
}

func (p *StaminaPowerUp) CanGrab() bool {
	g := p.GetGameObject()
	return !p.used && g != nil && g.ActiveInHierarchy() && anyColliderEnabled(g)
}

// OnGrab restores stamina when the grabbing hand is gripping. The hand does
// not stay latched to the pickup.
func (p *StaminaPowerUp) OnGrab(hand *HandState) {
	if p.used || !hand.Gripping || p.ctx == nil {
		return
	}
	p.used = true
	if p.ctx.Stamina != nil {
		p.ctx.Stamina.Restore(p.RestoreAmount)
	}
	if hand.Holding == Grabbable(p) {
		hand.Holding = nil
	}
	p.ctx.Log.Infof("StaminaPowerUp: used by %s hand, both hands restored by %.0f", hand.Side, p.RestoreAmount)
	p.ctx.Destroy(p.GetGameObject())
}
