package climb

// StaminaPool drains the stamina of gripping hands and regenerates released ones.
type StaminaPool struct {
	ctx       *Context
	LossRate  float32 // per second while gripping
	RegenRate float32 // per second while not gripping
}

func NewStaminaPool(ctx *Context) *StaminaPool {
	return &StaminaPool{
		ctx:       ctx,
		LossRate:  ctx.Tuning.StaminaLoss,
		RegenRate: ctx.Tuning.StaminaRegen,
	}
}

// Tick advances both hands by deltaTime. A gripping hand that runs dry is
// released in the same tick.
func (p *StaminaPool) Tick(deltaTime float32) {
	for _, h := range p.ctx.Hands {
		if h == nil {
			continue
		}
		p.tickHand(h, deltaTime)
	}
}

func (p *StaminaPool) tickHand(h *HandState, deltaTime float32) {
	if h.Gripping {
		if h.Stamina > 0 {
			h.Stamina -= p.LossRate * deltaTime
		}
		if h.Stamina <= 0 {
			h.Stamina = 0
			h.Gripping = false
			h.Release()
			p.ctx.Log.Infof("Stamina: %s hand exhausted, grip released", h.Side)
		}
		return
	}

	if h.Stamina < h.MaxStamina {
		h.Stamina += p.RegenRate * deltaTime
		if h.Stamina > h.MaxStamina {
			h.Stamina = h.MaxStamina
		}
	}
	h.Pulling = false
}

// Restore adds amount to both hands, clamped to their maximum.
func (p *StaminaPool) Restore(amount float32) {
	for _, h := range p.ctx.Hands {
		if h == nil {
			continue
		}
		h.Stamina += amount
		if h.Stamina > h.MaxStamina {
			h.Stamina = h.MaxStamina
		}
		if h.Stamina < 0 {
			h.Stamina = 0
		}
	}
}
