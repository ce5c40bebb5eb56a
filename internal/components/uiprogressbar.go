package components

import (
	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("UIProgressBar", func() engine.Serializable {
		return NewUIProgressBar()
	})
}

// UIProgressBar is a fill-based indicator (level progress, stamina, etc.)
type UIProgressBar struct {
	engine.BaseComponent

	// Current value (0 to MaxValue)
	Value    float32
	MaxValue float32

	FillColor     rl.Color
	FillFromRight bool
}

func NewUIProgressBar() *UIProgressBar {
	return &UIProgressBar{
		Value:     100,
		MaxValue:  100,
		FillColor: rl.NewColor(80, 200, 80, 255), // Green
	}
}

// GetPercent returns the fill percentage (0-1)
func (pb *UIProgressBar) GetPercent() float32 {
	if pb.MaxValue <= 0 {
		return 0
	}
	p := pb.Value / pb.MaxValue
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// SetPercent sets value based on percentage (0-1)
func (pb *UIProgressBar) SetPercent(percent float32) {
	pb.Value = percent * pb.MaxValue
}

func (pb *UIProgressBar) TypeName() string { return "UIProgressBar" }

func (pb *UIProgressBar) Serialize() map[string]any {
	return map[string]any{
		"type":          "UIProgressBar",
		"value":         pb.Value,
		"maxValue":      pb.MaxValue,
		"fillColor":     colorArray(pb.FillColor),
		"fillFromRight": pb.FillFromRight,
	}
}

func (pb *UIProgressBar) Deserialize(data map[string]any) {
	if v, ok := data["value"].(float64); ok {
		pb.Value = float32(v)
	}
	if v, ok := data["maxValue"].(float64); ok {
		pb.MaxValue = float32(v)
	}
	if c, ok := color(data["fillColor"]); ok {
		pb.FillColor = c
	}
	if v, ok := data["fillFromRight"].(bool); ok {
		pb.FillFromRight = v
	}
}
