package components

import (
	"ascent/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("UIText", func() engine.Serializable {
		return NewUIText()
	})
}

type TextAlignment int

const (
	TextAlignLeft TextAlignment = iota
	TextAlignCenter
	TextAlignRight
)

// UIText holds a label's content for the presentation layer.
type UIText struct {
	engine.BaseComponent

	Text      string
	FontSize  int32
	Color     rl.Color
	Alignment TextAlignment
}

func NewUIText() *UIText {
	return &UIText{
		Text:      "Text",
		FontSize:  20,
		Color:     rl.White,
		Alignment: TextAlignLeft,
	}
}

// SetText replaces the label content and reports whether it changed.
func (t *UIText) SetText(text string) bool {
	if t.Text == text {
		return false
	}
	t.Text = text
	return true
}

func (t *UIText) TypeName() string { return "UIText" }

func (t *UIText) Serialize() map[string]any {
	return map[string]any{
		"type":      "UIText",
		"text":      t.Text,
		"fontSize":  t.FontSize,
		"color":     colorArray(t.Color),
		"alignment": int(t.Alignment),
	}
}

func (t *UIText) Deserialize(data map[string]any) {
	if v, ok := data["text"].(string); ok {
		t.Text = v
	}
	if v, ok := data["fontSize"].(float64); ok {
		t.FontSize = int32(v)
	}
	if c, ok := color(data["color"]); ok {
		t.Color = c
	}
	if v, ok := data["alignment"].(float64); ok {
		t.Alignment = TextAlignment(int(v))
	}
}
