package scripts

import (
	"ascent/internal/climb"
	"ascent/internal/engine"
)

func init() {
	engine.RegisterScriptWithApplier("GrabbableAnchor", anchorFactory, anchorSerializer, anchorApplier)
	engine.RegisterScriptWithApplier("StaminaPowerUp", powerUpFactory, powerUpSerializer, powerUpApplier)
}

func anchorFactory(props map[string]any) engine.Component {
	a := climb.NewGrabbableAnchor()
	a.Enabled = engine.PropBool(props, "enabled", true)
	return a
}

func anchorSerializer(c engine.Component) map[string]any {
	a, ok := c.(*climb.GrabbableAnchor)
	if !ok {
		return nil
	}
	return map[string]any{
		"enabled": a.Enabled,
	}
}

func anchorApplier(c engine.Component, propName string, value any) bool {
	a, ok := c.(*climb.GrabbableAnchor)
	if !ok {
		return false
	}
	switch propName {
	case "enabled":
		if v, ok := value.(bool); ok {
			a.Enabled = v
			return true
		}
	}
	return false
}

func powerUpFactory(props map[string]any) engine.Component {
	p := climb.NewStaminaPowerUp()
	p.RestoreAmount = engine.PropFloat(props, "restore_amount", p.RestoreAmount)
	return p
}

func powerUpSerializer(c engine.Component) map[string]any {
	p, ok := c.(*climb.StaminaPowerUp)
	if !ok {
		return nil
	}
	return map[string]any{
		"restore_amount": p.RestoreAmount,
	}
}

func powerUpApplier(c engine.Component, propName string, value any) bool {
	p, ok := c.(*climb.StaminaPowerUp)
	if !ok {
		return false
	}
	switch propName {
	case "restore_amount":
		if v, ok := value.(float64); ok {
			p.RestoreAmount = float32(v)
			return true
		}
	}
	return false
}
