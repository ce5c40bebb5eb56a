package engine

// Component is behaviour attached to a GameObject. Components have no
// per-frame hook; the simulation drives them in explicit phases.
type Component interface {
	Start()
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// Toggleable is implemented by components that can be switched off without
// being removed, such as colliders and renderers.
type Toggleable interface {
	Component
	SetEnabled(enabled bool)
	IsEnabled() bool
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
