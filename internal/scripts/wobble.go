package scripts

import (
	"ascent/internal/climb"
	"ascent/internal/engine"
)

func init() {
	engine.RegisterScriptWithApplier("BreakableWobble", wobbleFactory, wobbleSerializer, wobbleApplier)
}

func wobbleFactory(props map[string]any) engine.Component {
	w := climb.NewBreakableWobble()
	w.MaxAngle = engine.PropFloat(props, "max_angle", w.MaxAngle)
	w.Speed = engine.PropFloat(props, "wobble_speed", w.Speed)
	w.IntervalMin = engine.PropFloat(props, "interval_min", w.IntervalMin)
	w.IntervalMax = engine.PropFloat(props, "interval_max", w.IntervalMax)
	w.WobbleDuration = engine.PropFloat(props, "wobble_duration", w.WobbleDuration)
	w.BreakDuration = engine.PropFloat(props, "break_duration", w.BreakDuration)
	w.ForceRelease[climb.Left].Enabled = engine.PropBool(props, "force_release_left", true)
	w.ForceRelease[climb.Right].Enabled = engine.PropBool(props, "force_release_right", true)
	w.ForceRelease[climb.Left].Delay = engine.PropFloat(props, "force_release_delay_left", 0)
	w.ForceRelease[climb.Right].Delay = engine.PropFloat(props, "force_release_delay_right", 0)
	return w
}

func wobbleSerializer(c engine.Component) map[string]any {
	w, ok := c.(*climb.BreakableWobble)
	if !ok {
		return nil
	}
	return map[string]any{
		"max_angle":                 w.MaxAngle,
		"wobble_speed":              w.Speed,
		"interval_min":              w.IntervalMin,
		"interval_max":              w.IntervalMax,
		"wobble_duration":           w.WobbleDuration,
		"break_duration":            w.BreakDuration,
		"force_release_left":        w.ForceRelease[climb.Left].Enabled,
		"force_release_right":       w.ForceRelease[climb.Right].Enabled,
		"force_release_delay_left":  w.ForceRelease[climb.Left].Delay,
		"force_release_delay_right": w.ForceRelease[climb.Right].Delay,
	}
}

func wobbleApplier(c engine.Component, propName string, value any) bool {
	w, ok := c.(*climb.BreakableWobble)
	if !ok {
		return false
	}
	if b, ok := value.(bool); ok {
		switch propName {
		case "force_release_left":
			w.ForceRelease[climb.Left].Enabled = b
			return true
		case "force_release_right":
			w.ForceRelease[climb.Right].Enabled = b
			return true
		}
		return false
	}
	v, ok := value.(float64)
	if !ok {
		return false
	}
	f := float32(v)
	switch propName {
	case "max_angle":
		w.MaxAngle = f
	case "wobble_speed":
		w.Speed = f
	case "interval_min":
		w.IntervalMin = f
	case "interval_max":
		w.IntervalMax = f
	case "wobble_duration":
		w.WobbleDuration = f
	case "break_duration":
		w.BreakDuration = f
	case "force_release_delay_left":
		w.ForceRelease[climb.Left].Delay = f
	case "force_release_delay_right":
		w.ForceRelease[climb.Right].Delay = f
	default:
		return false
	}
	return true
}
